package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/agenthands/eventlens/internal/core/model"
)

var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

var severityColor = map[model.Severity]*color.Color{
	model.SeverityHigh:   Bad,
	model.SeverityMedium: Warn,
	model.SeverityLow:    Good,
}

func severityText(s model.Severity) string {
	if c, ok := severityColor[s]; ok {
		return c.Sprint(string(s))
	}
	return string(s)
}

// table prints aligned columns. Widths ignore colour escapes, so coloured
// cells go last.
func table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header, sep := "  ", "  "
	for i, h := range headers {
		header += fmt.Sprintf("%-*s  ", widths[i], h)
		sep += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Println(header)
	Subtle.Println(sep)
	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println(line)
	}
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// cliNotifier prints dashboard notifications to the terminal.
type cliNotifier struct{}

func (cliNotifier) Info(msg string)  { fmt.Println(Good.Sprint("✓ ") + msg) }
func (cliNotifier) Error(msg string) { fmt.Println(Bad.Sprint("✗ ") + msg) }
