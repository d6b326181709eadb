package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/bodgit/bin2art"
	"github.com/bodgit/bin2art/gallery"
	"github.com/bodgit/bin2art/palette"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	heading  lipgloss.Style
	rendered lipgloss.Style
	skipped  lipgloss.Style
	err      lipgloss.Style
	detail   lipgloss.Style
}

func newStyles() styles {
	return styles{
		heading:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		rendered: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		skipped:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		err:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
	}
}

func (s styles) result(r bin2art.Result) string {
	if r.Skipped {
		return s.skipped.Render("SKIPPED ")
	}
	return s.rendered.Render("RENDERED")
}

func (s styles) summary(stats bin2art.Stats) string {
	parts := []string{
		s.rendered.Render(fmt.Sprintf("%d rendered", stats.Rendered)),
		s.skipped.Render(fmt.Sprintf("%d skipped", stats.Skipped)),
	}
	if stats.Failed > 0 {
		parts = append(parts, s.err.Render(fmt.Sprintf("%d failed", stats.Failed)))
	}
	return strings.Join(parts, ", ")
}

// swatches draws each palette entry as a coloured block.
func (s styles) swatches(p palette.Palette) string {
	var b strings.Builder
	for _, c := range p {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(palette.Hex(c))).Render("  "))
	}
	return b.String()
}

func (s styles) history(r gallery.Render) string {
	return fmt.Sprintf("%s %s %s %s",
		s.detail.Render(r.Created.Format(time.DateTime)),
		s.heading.Render(r.Name),
		r.Path,
		s.detail.Render(fmt.Sprintf("[%dx%d] %s", r.Side, r.Side, r.Settings)))
}
