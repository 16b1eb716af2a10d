package binary

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// logger prints step logs for a single registry or installer.
// stdout may be owned by the language server protocol, so the default is stderr.
type logger struct {
	out io.Writer
}

func newlogger(w io.Writer) logger {
	if w == nil {
		w = io.Discard
	}
	return logger{out: w}
}

func (l logger) step(text string) {
	fmt.Fprintln(
		l.out,
		color.BlueString(" •"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func (l logger) detail(text string) {
	fmt.Fprintln(
		l.out,
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func (l logger) warn(text string) {
	fmt.Fprintln(
		l.out,
		color.YellowString("   !"),
		color.New(color.FgYellow).Sprint(text),
	)
}

// elapsed prints the ✔/✘ timing line for an operation started at start.
func (l logger) elapsed(start time.Time, err error) {
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		color.New(color.FgRed).Fprintf(l.out, "     ✘ %s\n", elapsed)
		return
	}
	color.New(color.FgGreen).Fprintf(l.out, "     ✔ %s\n", elapsed)
}

// terminal returns the file behind the log output when it's an interactive terminal.
func (l logger) terminal() (*os.File, bool) {
	file, ok := l.out.(*os.File)
	if !ok {
		return nil, false
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return nil, false
	}
	return file, true
}
