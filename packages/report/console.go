package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/taskmeter/taskmeter/packages/stats"
)

// Console prints tables and stat summaries for humans
type Console struct {
	writer  io.Writer
	noColor bool

	green *color.Color
	cyan  *color.Color
	bold  *color.Color
	dim   *color.Color
}

type ConsoleOption func(*Console)

func WithWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.writer = w
	}
}

func WithNoColor(noColor bool) ConsoleOption {
	return func(c *Console) {
		c.noColor = noColor
	}
}

func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		writer: os.Stdout,
	}

	for _, opt := range opts {
		opt(c)
	}

	color.NoColor = c.noColor
	c.green = color.New(color.FgGreen)
	c.cyan = color.New(color.FgCyan)
	c.bold = color.New(color.Bold)
	c.dim = color.New(color.Faint)

	return c
}

// Section prints a bold section header
func (c *Console) Section(title string) {
	fmt.Fprintln(c.writer)
	c.bold.Fprintln(c.writer, title)
}

// Table prints a pre-rendered table verbatim
func (c *Console) Table(table string) {
	fmt.Fprint(c.writer, table)
}

// StatsLine prints one labelled stats summary
func (c *Console) StatsLine(label string, s stats.Stats) {
	c.cyan.Fprintf(c.writer, "%s: ", label)
	fmt.Fprintf(c.writer, "samples=%d min=%.3f max=%.3f mean=%.3f stdev=%.3f\n",
		s.Samples, s.Min, s.Max, s.Mean, s.StdDev)
}

// LatencySummary prints a latency distribution snapshot
func (c *Console) LatencySummary(label string, s stats.LatencySummary) {
	c.cyan.Fprintf(c.writer, "%s: ", label)
	fmt.Fprintf(c.writer, "count=%d min=%s mean=%s p50=%s p95=%s p99=%s max=%s\n",
		s.Count, s.Min, s.Mean, s.P50, s.P95, s.P99, s.Max)
}

// Timeouts notes how many tasks never reached a terminal state
func (c *Console) Timeouts(n int) {
	if n == 0 {
		c.green.Fprintln(c.writer, "All tasks reached a terminal state")
		return
	}
	c.dim.Fprintf(c.writer, "%d task(s) timed out while polling\n", n)
}
