package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/textcheck/internal/app"
	"github.com/heartmarshall/textcheck/internal/domain"
	"github.com/heartmarshall/textcheck/internal/report"
	"github.com/heartmarshall/textcheck/internal/service/checker"
	"github.com/heartmarshall/textcheck/internal/ui"
)

// errChecksFailed signals that at least one input could not be checked.
// Details have already been printed.
var errChecksFailed = errors.New("one or more checks failed")

type checkOptions struct {
	text      string
	highlight bool
	context   bool
	spinner   string
}

func newCheckCmd(c *cli) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [flags] [file...]",
		Short: "Check text for spelling and punctuation errors",
		Long: "Check one or more files, stdin (no file or \"-\") or --text. " +
			"Multiple files are checked concurrently and reported in argument order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.text, "text", "", "check this text instead of files or stdin")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "print the text with flagged spans highlighted")
	cmd.Flags().BoolVar(&opts.context, "context", true, "show the offending line with a caret under each error")
	cmd.Flags().StringVar(&opts.spinner, "ui", "auto", "show a progress spinner (auto|on|off)")
	return cmd
}

type input struct {
	name string
	text string
	// bom and eol describe the raw file so fixed text can be written back
	// in the same shape.
	bom bool
	eol string
}

const utf8BOM = "\xef\xbb\xbf"

// restore converts normalized text back to the input's BOM and line endings.
func (in input) restore(text string) string {
	if in.eol != "" && in.eol != "\n" {
		text = strings.ReplaceAll(text, "\n", in.eol)
	}
	if in.bom {
		text = utf8BOM + text
	}
	return text
}

// lineEnding reports the line ending used by raw, defaulting to LF.
func lineEnding(raw string) string {
	switch {
	case strings.Contains(raw, "\r\n"):
		return "\r\n"
	case strings.Contains(raw, "\r"):
		return "\r"
	default:
		return "\n"
	}
}

type checkResult struct {
	input
	records []domain.ErrorRecord
	err     error
}

func (c *cli) runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	if opts.text != "" && len(args) > 0 {
		return fmt.Errorf("check: --text cannot be combined with files")
	}
	switch opts.spinner {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("check: invalid --ui value %q (expected auto|on|off)", opts.spinner)
	}

	inputs, err := readInputs(cmd.InOrStdin(), args, opts.text)
	if err != nil {
		return err
	}

	logger := c.cliLogger(cmd)
	speller := app.NewSpeller(c.cfg.Speller, logger)

	var results []checkResult
	if len(inputs) == 1 && c.showSpinner(cmd, opts.spinner) {
		results = []checkResult{c.checkWithSpinner(cmd, speller, inputs[0], logger)}
	} else {
		results = c.checkAll(cmd.Context(), speller, inputs, logger)
	}

	return c.printResults(cmd, results, opts)
}

func (c *cli) showSpinner(cmd *cobra.Command, mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(cmd.OutOrStdout())
	}
}

// checkAll checks inputs concurrently, bounded by checker.concurrency.
// One failed input does not cancel the others.
func (c *cli) checkAll(ctx context.Context, speller checker.Speller, inputs []input, logger *slog.Logger) []checkResult {
	results := make([]checkResult, len(inputs))

	var g errgroup.Group
	g.SetLimit(max(c.cfg.Checker.Concurrency, 1))

	for i, in := range inputs {
		g.Go(func() error {
			records, err := c.checkOne(ctx, speller, in, logger)
			results[i] = checkResult{input: in, records: records, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *cli) checkOne(ctx context.Context, speller checker.Speller, in input, logger *slog.Logger) ([]domain.ErrorRecord, error) {
	if err := domain.ValidateText(in.text, c.cfg.Checker.MaxTextLength); err != nil {
		return nil, err
	}

	ctx, cancel := c.checkContext(ctx)
	defer cancel()

	return checker.New(in.text, speller, logger.With("input", in.name)).Run(ctx)
}

func (c *cli) checkWithSpinner(cmd *cobra.Command, speller checker.Speller, in input, logger *slog.Logger) checkResult {
	res := checkResult{input: in}
	if err := domain.ValidateText(in.text, c.cfg.Checker.MaxTextLength); err != nil {
		res.err = err
		return res
	}

	ctx, cancel := c.checkContext(cmd.Context())
	defer cancel()

	outcomes, err := checker.New(in.text, speller, logger).Check(ctx)
	if err != nil {
		res.err = err
		return res
	}

	outcome, err := ui.WaitWithSpinner("Checking "+in.name+"...", outcomes, cancel, cmd.ErrOrStderr())
	if err != nil {
		res.err = err
		return res
	}
	res.records, res.err = outcome.Errors, outcome.Err
	return res
}

func (c *cli) checkContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Checker.CheckTimeout > 0 {
		return context.WithTimeout(ctx, c.cfg.Checker.CheckTimeout)
	}
	return context.WithCancel(ctx)
}

func (c *cli) printResults(cmd *cobra.Command, results []checkResult, opts *checkOptions) error {
	out := cmd.OutOrStdout()
	colored := c.useColor(cmd)
	failed := false

	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		name := ""
		if len(results) > 1 {
			name = res.name
		}

		if res.err != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", res.name, describeFailure(res.err))
			continue
		}

		if opts.highlight {
			fmt.Fprintln(out, report.Highlight(res.text, res.records, colored))
			fmt.Fprintln(out)
		}
		if err := report.Write(out, res.text, res.records, report.Options{
			Color:   colored,
			Context: opts.context,
			Name:    name,
		}); err != nil {
			return err
		}
	}

	if failed {
		return errChecksFailed
	}
	return nil
}

// describeFailure turns check errors into short user-facing messages.
func describeFailure(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "nothing to check: text is empty"
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "spelling service unavailable: " + err.Error()
	case errors.Is(err, domain.ErrInvalidResponse):
		return "spelling service returned an invalid response: " + err.Error()
	default:
		return err.Error()
	}
}

func readInputs(stdin io.Reader, args []string, text string) ([]input, error) {
	if text != "" {
		return []input{{name: "<text>", text: domain.NormalizeText(text)}}, nil
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	inputs := make([]input, 0, len(args))
	stdinUsed := false
	for _, path := range args {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			if stdinUsed {
				return nil, fmt.Errorf("check: stdin given more than once")
			}
			stdinUsed = true
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("check: read %s: %w", trimmedName(path), err)
		}
		raw, bom := strings.CutPrefix(string(data), utf8BOM)
		inputs = append(inputs, input{
			name: trimmedName(path),
			text: domain.NormalizeText(raw),
			bom:  bom,
			eol:  lineEnding(raw),
		})
	}
	return inputs, nil
}
