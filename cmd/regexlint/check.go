package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/auvred/resyntax"
	"github.com/auvred/resyntax/internal/config"
	"github.com/auvred/resyntax/internal/discover"
	"github.com/auvred/resyntax/internal/source"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var checkFlags = struct {
	config   *string
	format   *string
	ast      *bool
	failFast *bool
	verbose  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report syntax errors in the regular expressions of JavaScript files",
		Example: `  regexlint check src
  regexlint check --format json app.js lib`,
		RunE: runCheck,
	}
	checkFlags.config = cmd.Flags().StringP("config", "c", "", "config file path (default "+config.DefaultFile+" if present)")
	checkFlags.format = cmd.Flags().StringP("format", "f", config.FormatText, "output format: text, json or yaml")
	checkFlags.ast = cmd.Flags().Bool("ast", false, "print the syntax tree of every valid pattern")
	checkFlags.failFast = cmd.Flags().Bool("fail-fast", false, "stop at the first file with a problem")
	checkFlags.verbose = cmd.Flags().BoolP("verbose", "v", false, "log every visited file")
	rootCmd.AddCommand(cmd)
}

type diagnostic struct {
	File        string `json:"file" yaml:"file"`
	Line        int    `json:"line" yaml:"line"`
	Column      int    `json:"column" yaml:"column"`
	Offset      int    `json:"offset" yaml:"offset"`
	Kind        string `json:"kind" yaml:"kind"`
	Message     string `json:"message" yaml:"message"`
	Approximate bool   `json:"approximate,omitempty" yaml:"approximate,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(*checkFlags.config)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = *checkFlags.format
	}
	if cmd.Flags().Changed("fail-fast") {
		cfg.FailFast = *checkFlags.failFast
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if *checkFlags.verbose {
		logger = log.New(cmd.ErrOrStderr(), "regexlint: ", 0)
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := collectFiles(cfg, args)
	if err != nil {
		return err
	}

	c := &checker{
		cfg:    cfg,
		out:    cmd.OutOrStdout(),
		warn:   cmd.ErrOrStderr(),
		logger: logger,
		ast:    *checkFlags.ast,
	}
	for _, path := range paths {
		found, err := c.checkFile(path)
		if err != nil {
			return err
		}
		if found > 0 && cfg.FailFast {
			break
		}
	}

	if err := c.flush(); err != nil {
		return err
	}
	if len(c.diagnostics) > 0 {
		return fmt.Errorf("%d problem(s) found", len(c.diagnostics))
	}
	return nil
}

func collectFiles(cfg *config.Config, args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.Matches(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

type checker struct {
	cfg         *config.Config
	out         io.Writer
	warn        io.Writer
	logger      *log.Logger
	ast         bool
	diagnostics []diagnostic
}

// checkFile reports the diagnostics of one file and returns their number.
func (c *checker) checkFile(path string) (int, error) {
	c.logger.Printf("checking %s", path)
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	file := source.NewFile(path, content)

	candidates, err := discover.Find(path, content)
	if err != nil {
		// goja parses scripts only, so ES modules end up here too
		_, werr := fmt.Fprintf(c.warn, "%s: warning: skipped: %v\n", path, err)
		return 0, werr
	}

	found := 0
	for _, cand := range candidates {
		if cand.Kind == discover.KindConstructor && c.cfg.SkipConstructorCalls {
			continue
		}
		p, err := parseCandidate(cand)
		if err != nil {
			var se *resyntax.SyntaxError
			if !errors.As(err, &se) {
				return found, err
			}
			found++
			if err := c.report(file, se, cand.Approximate); err != nil {
				return found, err
			}
			continue
		}
		if c.ast {
			line, col := file.Position(cand.PatternOffset)
			if _, err := fmt.Fprintf(c.out, "%s:%d:%d: %s\n", path, line, col, cand.Kind); err != nil {
				return found, err
			}
			if err := resyntax.Fprint(c.out, p); err != nil {
				return found, err
			}
		}
	}
	c.logger.Printf("%s: %d candidate(s), %d problem(s)", path, len(candidates), found)
	return found, nil
}

func parseCandidate(cand discover.Candidate) (*resyntax.Pattern, error) {
	flags, err := resyntax.ParseFlags(cand.Flags, resyntax.FlagsOptions{SpanOffset: cand.FlagsOffset})
	if err != nil {
		return nil, err
	}
	return resyntax.ParsePattern(cand.Pattern, resyntax.Options{
		SpanOffset:      cand.PatternOffset,
		UnicodeMode:     flags.Has(resyntax.FlagUnicode),
		UnicodeSetsMode: flags.Has(resyntax.FlagUnicodeSets),
	})
}

func (c *checker) report(file *source.File, se *resyntax.SyntaxError, approximate bool) error {
	line, col := file.Position(se.Offset())
	c.diagnostics = append(c.diagnostics, diagnostic{
		File:        file.Name(),
		Line:        line,
		Column:      col,
		Offset:      se.Offset(),
		Kind:        se.Kind.String(),
		Message:     se.Message,
		Approximate: approximate,
	})
	if c.cfg.Format != config.FormatText {
		return nil
	}
	return file.Render(c.out, "error", se)
}

// flush writes the collected diagnostics for the structured formats. Text
// diagnostics are written as they are found.
func (c *checker) flush() error {
	diagnostics := c.diagnostics
	if diagnostics == nil {
		diagnostics = []diagnostic{}
	}
	switch c.cfg.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(diagnostics)
	case config.FormatYAML:
		b, err := yaml.Marshal(diagnostics)
		if err != nil {
			return err
		}
		_, err = c.out.Write(b)
		return err
	}
	return nil
}
