package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// fatih/color turns these into plain text when stdout is not a terminal.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
)

// printer renders command output to one writer, as coloured text or JSON.
type printer struct {
	w        io.Writer
	jsonMode bool
}

func (p *printer) section(title string) {
	fmt.Fprintln(p.w)
	_, _ = headerColor.Fprintf(p.w, "▸ %s\n", title)
	fmt.Fprintln(p.w)
}

func (p *printer) success(format string, args ...any) {
	_, _ = successColor.Fprintf(p.w, "✓ %s\n", fmt.Sprintf(format, args...))
}

func (p *printer) warning(format string, args ...any) {
	_, _ = warningColor.Fprintf(p.w, "⚠ %s\n", fmt.Sprintf(format, args...))
}

func (p *printer) labelValue(label string, value any) {
	_, _ = labelColor.Fprintf(p.w, "  %s: ", label)
	_, _ = valueColor.Fprintln(p.w, value)
}

func (p *printer) list(items []string) {
	for _, item := range items {
		_, _ = infoColor.Fprintf(p.w, "  • %s\n", item)
	}
}

func (p *printer) empty(msg string) {
	_, _ = valueColor.Fprintf(p.w, "  %s\n", msg)
}

// table prints left-aligned columns sized to their widest cell.
func (p *printer) table(headers []string, rows [][]string) {
	if len(headers) == 0 {
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

	fmt.Fprint(p.w, "  ")
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(p.w, "  ")
		}
		_, _ = headerColor.Fprintf(p.w, "%-*s", widths[i], h)
	}
	fmt.Fprintln(p.w)

	fmt.Fprint(p.w, "  ")
	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(p.w, "  ")
		}
		fmt.Fprint(p.w, strings.Repeat("-", width))
	}
	fmt.Fprintln(p.w)

	for _, row := range rows {
		fmt.Fprint(p.w, "  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				fmt.Fprint(p.w, "  ")
			}
			fmt.Fprintf(p.w, "%-*s", widths[i], cell)
		}
		fmt.Fprintln(p.w)
	}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError writes a failed command's error to w.
func printError(w io.Writer, err error) {
	_, _ = errorColor.Fprintf(w, "✗ %s\n", err)
}

func plural(count int, one, many string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, one)
	}
	return fmt.Sprintf("%d %s", count, many)
}
