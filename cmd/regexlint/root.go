package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "regexlint",
	Short: "Check the syntax of ECMAScript regular expressions",
	Long: `regexlint provides two features:
- Finds regular expressions in JavaScript files and reports syntax errors.
- Parses a single pattern and prints its syntax tree.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
