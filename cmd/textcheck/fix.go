package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/textcheck/internal/app"
	"github.com/heartmarshall/textcheck/internal/report"
	"github.com/heartmarshall/textcheck/internal/service/fix"
)

type fixOptions struct {
	output string
	dryRun bool
}

func newFixCmd(c *cli) *cobra.Command {
	opts := &fixOptions{}

	cmd := &cobra.Command{
		Use:   "fix [flags] <file>",
		Short: "Apply the first suggestion of every error",
		Long: "Check a file and replace every flagged span with its first suggestion. " +
			"The file is rewritten in place unless --output or --dry-run is given. " +
			"A UTF-8 byte order mark and the file's line endings are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFix(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the fixed text here instead of the input file (\"-\" for stdout)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the fixed text to stdout and leave the file untouched")
	return cmd
}

func (c *cli) runFix(cmd *cobra.Command, path string, opts *fixOptions) error {
	inputs, err := readInputs(cmd.InOrStdin(), []string{path}, "")
	if err != nil {
		return err
	}
	in := inputs[0]

	output := opts.output
	if opts.dryRun {
		output = "-"
	}
	if output == "" {
		if path == "-" {
			output = "-"
		} else {
			output = path
		}
	}

	logger := c.cliLogger(cmd)
	speller := app.NewSpeller(c.cfg.Speller, logger)

	records, err := c.checkOne(cmd.Context(), speller, in, logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", in.name, describeFailure(err))
		return errChecksFailed
	}

	res := fix.ApplyAll(in.text, records)
	fixed := in.restore(res.Text)

	// The summary goes to stderr when the fixed text itself goes to stdout.
	summaryOut := cmd.OutOrStdout()
	if output == "-" {
		summaryOut = cmd.ErrOrStderr()
		if _, err := io.WriteString(cmd.OutOrStdout(), fixed); err != nil {
			return err
		}
	} else if len(res.Applied) > 0 || output != path {
		if err := writeFile(output, path, fixed); err != nil {
			return err
		}
	}

	return report.WriteFix(summaryOut, res, report.Options{Color: c.useColor(cmd)})
}

// writeFile writes text to dst, keeping the permissions of src when possible.
func writeFile(dst, src, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(src); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(dst, []byte(text), mode); err != nil {
		return fmt.Errorf("fix: write %s: %w", dst, err)
	}
	return nil
}
