package main

import (
	"errors"
	"fmt"
	"unicode/utf16"

	"github.com/auvred/resyntax"
	"github.com/auvred/resyntax/internal/source"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	utf16 *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <pattern> [flags]",
		Short: "Parse a pattern and print its syntax tree",
		Example: `  regexlint parse '(?<year>\d{4})-\k<year>' u
  regexlint parse '[\p{L}--[a-z]]' v`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runParse,
	}
	parseFlags.utf16 = cmd.Flags().Bool("utf16", false, "count span offsets in UTF-16 code units")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	var flags string
	if len(args) > 1 {
		flags = args[1]
	}

	if *parseFlags.utf16 {
		f, err := resyntax.ParseFlags(flags, resyntax.FlagsOptions{})
		if err != nil {
			return err
		}
		p, err := resyntax.ParsePatternUtf16(utf16.Encode([]rune(args[0])), resyntax.Options{
			UnicodeMode:     f.Has(resyntax.FlagUnicode),
			UnicodeSetsMode: f.Has(resyntax.FlagUnicodeSets),
		})
		if err != nil {
			return err
		}
		return resyntax.Fprint(cmd.OutOrStdout(), p)
	}

	literal := "/" + args[0] + "/" + flags
	lit, err := resyntax.ParseLiteral(literal, 0)
	if err != nil {
		var se *resyntax.SyntaxError
		if errors.As(err, &se) {
			if err := source.NewFile("<pattern>", []byte(literal)).Render(cmd.ErrOrStderr(), "error", se); err != nil {
				return err
			}
			return fmt.Errorf("invalid regular expression")
		}
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "mode: %s\n", lit.Flags.Mode()); err != nil {
		return err
	}
	return resyntax.Fprint(cmd.OutOrStdout(), lit.Pattern)
}
