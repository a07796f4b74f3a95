// Package console is the single output collaborator shared by every thread.
//
// A Console owns one mutex guarding both its standard output and standard
// error writers, so multi-line blocks from concurrent kernels never interleave.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/utkarsh5026/pinbench/workload"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Console serialises all diagnostic and result output.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	err     io.Writer
	printer *message.Printer

	bold   *color.Color
	red    *color.Color
	yellow *color.Color
	green  *color.Color
	blue   *color.Color
}

// Option configures a Console.
type Option func(*Console)

// WithWriters replaces the standard output and standard error writers.
func WithWriters(out, err io.Writer) Option {
	return func(c *Console) {
		if out != nil {
			c.out = out
		}
		if err != nil {
			c.err = err
		}
	}
}

// WithoutColor disables ANSI escapes regardless of the terminal.
func WithoutColor() Option {
	return func(c *Console) {
		for _, col := range c.colors() {
			col.DisableColor()
		}
	}
}

// WithLanguage sets the locale used to group digits in numbers.
func WithLanguage(tag language.Tag) Option {
	return func(c *Console) {
		c.printer = message.NewPrinter(tag)
	}
}

// New returns a Console writing to the process's stdout and stderr.
func New(opts ...Option) *Console {
	c := &Console{
		out:     color.Output,
		err:     color.Error,
		printer: message.NewPrinter(language.English),
		bold:    color.New(color.Bold),
		red:     color.New(color.FgRed),
		yellow:  color.New(color.FgYellow),
		green:   color.New(color.FgGreen),
		blue:    color.New(color.FgBlue),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discard returns a Console that drops everything, for tests and quiet runs.
func Discard() *Console {
	return New(WithWriters(io.Discard, io.Discard), WithoutColor())
}

func (c *Console) colors() []*color.Color {
	return []*color.Color{c.bold, c.red, c.yellow, c.green, c.blue}
}

// ParseLanguage turns a POSIX locale such as "pt_BR.UTF-8" into a language tag.
// Unparseable or empty locales fall back to English.
func ParseLanguage(locale string) language.Tag {
	locale, _, _ = strings.Cut(locale, ".")
	locale, _, _ = strings.Cut(locale, "@")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	return tag
}

// Report writes a kernel report as one block on standard output.
func (c *Console) Report(r workload.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cpu := "?"
	if r.CPU >= 0 {
		cpu = fmt.Sprint(r.CPU)
	}

	_, _ = c.bold.Fprintf(c.out, "%s [cpu %s]:\n", r.Name(), cpu)
	_, _ = fmt.Fprintf(c.out, "  items processed: %s\n", c.printer.Sprintf("%d", r.Items))
	_, _ = fmt.Fprintf(c.out, "  elapsed: %s ms\n", c.printer.Sprintf("%.3f", Millis(r.Elapsed)))
	_, _ = fmt.Fprintf(c.out, "  result: %g\n", r.Result)
}

// Warn writes a non-fatal diagnostic to standard error.
func (c *Console) Warn(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.yellow.Fprintf(c.err, "warning: %s\n", fmt.Sprintf(format, args...))
}

// Errorf writes an error diagnostic to standard error.
func (c *Console) Errorf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.red.Fprintf(c.err, "error: %s\n", fmt.Sprintf(format, args...))
}

// Infof writes a line to standard output, grouping digits per the locale.
func (c *Console) Infof(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, c.printer.Sprintf(format, args...))
}

// Successf writes a highlighted line to standard output.
func (c *Console) Successf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.green.Fprintln(c.out, c.printer.Sprintf(format, args...))
}

// Header writes a boxed title.
func (c *Console) Header(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.bold.Fprintln(c.out, "╔════════════════════════════════════════════════════════════╗")
	_, _ = c.bold.Fprintf(c.out, "║       %-52s ║\n", title)
	_, _ = c.bold.Fprintln(c.out, "╚════════════════════════════════════════════════════════════╝")
	_, _ = fmt.Fprintln(c.out)
}

// Section writes a title between two rules.
func (c *Console) Section(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out)
	_, _ = c.bold.Fprintln(c.out, "═══════════════════════════════════════════════════════════")
	_, _ = c.bold.Fprintln(c.out, title)
	_, _ = c.bold.Fprintln(c.out, "═══════════════════════════════════════════════════════════")
}

// Block holds the lock while fn writes to standard output.
// fn must not call back into the Console.
func (c *Console) Block(fn func(w io.Writer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.out)
}

// Number formats n with the locale's digit grouping.
func (c *Console) Number(n int) string {
	return c.printer.Sprintf("%d", n)
}

// Stderr returns a writer that takes the console lock for every write.
func (c *Console) Stderr() io.Writer {
	return &lockedWriter{c: c, w: c.err}
}

// Stdout returns a writer that takes the console lock for every write.
func (c *Console) Stdout() io.Writer {
	return &lockedWriter{c: c, w: c.out}
}

type lockedWriter struct {
	c *Console
	w io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	return l.w.Write(p)
}
