package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/rex"
	"github.com/coregx/rex/internal/logging"
	"github.com/coregx/rex/replace"
	"github.com/coregx/rex/scan"
)

func newReplaceCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace PATTERN TEMPLATE [PATH...]",
		Short: "Rewrite matches in each line with a template",
		Long: `Rewrite every match of PATTERN in each input line using TEMPLATE and
print all lines, modified or not.

Templates reference capture groups with $1..$n or $name; $$ is a literal
dollar sign. References to groups the pattern does not define are kept
as written.

Examples:
  rex replace '(?<code>E[0123456789]{3})' 'error $code' build.log
  rex replace 'teh' 'the' - < draft.txt`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(cmd, args, opts)
		},
	}
	return cmd
}

func runReplace(cmd *cobra.Command, args []string, opts *rootOptions) error {
	logger := logging.Default()

	re, err := rex.Compile(args[0])
	if err != nil {
		return err
	}
	spec := replace.Parse(args[1])

	paths := args[2:]
	if len(paths) == 0 {
		paths = []string{scan.Stdin}
	}
	files, err := scan.Walk(paths)
	if err != nil {
		return err
	}
	logger.Debug("replacing",
		logging.FieldPattern, re.String(),
		logging.FieldTemplate, spec.String(),
		logging.FieldFiles, len(files))

	out := cmd.OutOrStdout()
	for _, path := range files {
		if path == scan.Stdin {
			err = rewriteLines(cmd.Context(), cmd.InOrStdin(), out, re, spec)
		} else {
			err = rewriteFile(cmd.Context(), path, out, re, spec)
		}
		if err != nil {
			return fmt.Errorf("replace %s: %w", path, err)
		}
	}
	return nil
}

func rewriteFile(ctx context.Context, path string, out io.Writer, re *rex.Regex, spec *replace.Spec) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return rewriteLines(ctx, f, out, re, spec)
}

func rewriteLines(ctx context.Context, in io.Reader, out io.Writer, re *rex.Regex, spec *replace.Spec) error {
	br := bufio.NewScanner(in)
	br.Buffer(make([]byte, 0, 64*1024), 1<<20)
	bw := bufio.NewWriter(out)

	for br.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := bw.Write(spec.ReplaceAll(re, br.Bytes())); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := br.Err(); err != nil {
		return err
	}
	return bw.Flush()
}
