package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/rex/internal/configloader"
	"github.com/coregx/rex/internal/logging"
	"github.com/coregx/rex/internal/ui/pretty"
	"github.com/coregx/rex/scan"
)

type searchFlags struct {
	expressions []string
	lineNumbers bool
	countOnly   bool
	maxCount    int
}

func newSearchCommand(opts *rootOptions) *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search [flags] PATTERN [PATH...]",
		Short: "Search lines matching a pattern",
		Long: `Search inputs line by line and print the lines matching the pattern.

Paths may be files, directories (searched recursively), or - for
standard input; with no path, standard input is read. With -e the
positional pattern is omitted and a line matches when any of the given
patterns matches it.

Examples:
  rex search 'f(oo|aa)' notes.txt      # one file
  rex search -n 'error{1,3}$' logs/    # a directory, with line numbers
  rex search -e 'foo' -e 'bar' -      # two patterns against stdin
  rex search -c 'TODO' a.txt b.txt    # per-file match counts`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts, flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.expressions, "regexp", "e", nil,
		"pattern to search for (repeatable, replaces the positional pattern)")
	cmd.Flags().BoolVarP(&flags.lineNumbers, "line-number", "n", false,
		"prefix matching lines with their line number")
	cmd.Flags().BoolVarP(&flags.countOnly, "count", "c", false,
		"print only a count of matching lines per input")
	cmd.Flags().IntVar(&flags.maxCount, "max-count", 0,
		"stop each input after this many matching lines (0 = unlimited)")

	return cmd
}

// splitArgs resolves the pattern list and path list from positional
// arguments and repeated -e flags.
func splitArgs(args, expressions []string) (patterns, paths []string, err error) {
	if len(expressions) > 0 {
		return expressions, args, nil
	}
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("a pattern is required (positional or -e)")
	}
	return args[:1], args[1:], nil
}

func runSearch(cmd *cobra.Command, args []string, opts *rootOptions, flags *searchFlags) error {
	logger := logging.Default()

	cfg, err := configloader.Load(opts.configPath)
	if err != nil {
		return err
	}
	// The --debug flag wins over the config file's log_level.
	if !opts.debug && cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}

	patterns, paths, err := splitArgs(args, flags.expressions)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = []string{scan.Stdin}
	}

	set, err := scan.CompileSet(patterns)
	if err != nil {
		return err
	}
	logger.Debug("compiled pattern set",
		logging.FieldPatterns, len(patterns), logging.FieldPaths, paths)

	files, err := scan.Walk(paths)
	if err != nil {
		return err
	}

	colorMode := opts.color
	if colorMode == "" {
		colorMode = cfg.Color
	}
	out := cmd.OutOrStdout()
	printer := pretty.NewPrinter(out, pretty.NewStyles(pretty.ColorEnabled(colorMode, out)))
	printer.ShowPath = len(files) > 1
	printer.ShowLineNum = flags.lineNumbers || cfg.LineNumbers

	scanner := scan.NewScanner(set)
	scanner.MaxCount = flags.maxCount

	emit := printer.Line
	if flags.countOnly {
		emit = nil
	}

	ctx := cmd.Context()
	total := 0
	var scanErr error
	for _, path := range files {
		var n int
		var err error
		if path == scan.Stdin {
			n, err = scanner.ScanReader(ctx, cmd.InOrStdin(), path, emit)
		} else {
			n, err = scanner.ScanFile(ctx, path, emit)
		}
		if err != nil {
			logger.Error("scan failed", logging.FieldPath, path, logging.FieldError, err)
			scanErr = err
			continue
		}
		total += n
		if flags.countOnly {
			if err := printer.Count(path, n); err != nil {
				return err
			}
		}
	}

	if scanErr != nil {
		return fmt.Errorf("one or more inputs failed: %w", scanErr)
	}
	if total == 0 {
		return ErrNoMatch
	}
	return nil
}
