package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ardnew/glass/lang"
)

type reportStyle struct {
	plain   bool
	summary lipgloss.Style
	caret   lipgloss.Style
	locator lipgloss.Style
}

func newReportStyle(w io.Writer, color bool) reportStyle {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	red := lipgloss.Color("1")

	return reportStyle{
		plain:   r.ColorProfile() == termenv.Ascii,
		summary: r.NewStyle().Bold(true).Foreground(red),
		caret:   r.NewStyle().Foreground(red),
		locator: r.NewStyle().Faint(true),
	}
}

func (s reportStyle) paint(style lipgloss.Style, text string) string {
	if s.plain || text == "" {
		return text
	}

	return style.Render(text)
}

// Report writes err to w. A [lang.Diagnostic] is laid out against its source
// with a caret underline and styled when w is a terminal and color is true;
// any other error is written as its message.
func Report(w io.Writer, err error, color bool) error {
	if err == nil {
		return nil
	}

	var d *lang.Diagnostic
	if !errors.As(err, &d) {
		_, werr := fmt.Fprintln(w, err)

		return werr
	}

	r := d.Report()
	s := newReportStyle(w, color)

	lines := []string{s.paint(s.summary, r.Summary)}
	if r.Locator != "" {
		lines = append(lines,
			r.Line,
			s.paint(s.caret, r.Marker),
			s.paint(s.locator, r.Locator))
	}

	_, werr := fmt.Fprintln(w, strings.Join(lines, "\n"))

	return werr
}
