// Package progress gives long-running dataset operations (extraction,
// uploads) terminal feedback, falling back to plain line output on CI.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback for a multi-step operation.
type Reporter interface {
	Start(total int, description string)
	Step(message string)
	Finish()
}

// New returns a TerminalReporter, or a CIReporter when running under CI.
func New() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	return &TerminalReporter{}
}

// Discard returns a Reporter that produces no output.
func Discard() Reporter {
	return discard{}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int, description string) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Step(message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	total   int
	current int
}

func (r *CIReporter) Start(total int, description string) {
	r.total = total
	r.current = 0
	fmt.Fprintf(os.Stderr, "%s: %d steps\n", description, total)
}

func (r *CIReporter) Step(message string) {
	r.current++
	fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", r.current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintln(os.Stderr, "done")
}

type discard struct{}

func (discard) Start(int, string) {}
func (discard) Step(string)       {}
func (discard) Finish()           {}
