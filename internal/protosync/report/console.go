package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type ConsoleOptions struct {
	NoColor bool
	Verbose bool // show Debug lines
}

type theme struct {
	levels map[Level]lipgloss.Style
	header lipgloss.Style
	table  lipgloss.Style
	border lipgloss.Style
}

func newTheme(noColor bool) theme {
	if noColor {
		plain := lipgloss.NewStyle()
		return theme{
			levels: map[Level]lipgloss.Style{},
			header: plain,
			table:  plain,
			border: plain,
		}
	}
	return theme{
		levels: map[Level]lipgloss.Style{
			Debug:   lipgloss.NewStyle().Faint(true),
			Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
			Step:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		},
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		table:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		border: lipgloss.NewStyle().Faint(true),
	}
}

var icons = map[Level]string{
	Debug:   "·",
	Info:    "i",
	Success: "✓",
	Warning: "!",
	Error:   "✗",
	Step:    "▶",
}

// Console writes styled lines to a terminal.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	theme   theme
	verbose bool
}

func NewConsole(out io.Writer, opts ConsoleOptions) *Console {
	return &Console{
		out:     out,
		theme:   newTheme(opts.NoColor),
		verbose: opts.Verbose,
	}
}

func (c *Console) Emit(level Level, msg string) {
	if level == Debug && !c.verbose {
		return
	}

	line := c.style(level).Render(msg)
	c.mu.Lock()
	defer c.mu.Unlock()
	if level == Step {
		fmt.Fprintf(c.out, "\n%s %s\n", c.style(level).Render(icons[level]), line)
		return
	}
	fmt.Fprintf(c.out, "%s %s\n", icons[level], line)
}

func (c *Console) style(level Level) lipgloss.Style {
	if s, ok := c.theme.levels[level]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Header prints a section banner.
func (c *Console) Header(title string) {
	border := strings.Repeat("=", 60)

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.theme.header.Render(border))
	fmt.Fprintln(c.out, c.theme.header.Render("  "+title))
	fmt.Fprintln(c.out, c.theme.header.Render(border))
	fmt.Fprintln(c.out)
}

// Table prints rows under headers. Nothing is printed for zero rows.
func (c *Console) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.theme.border).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.theme.table.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, t.Render())
}
