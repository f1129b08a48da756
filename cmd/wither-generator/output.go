package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/term"

	"wither-generator/internal/diagnostic"
)

// printer writes user-facing output, colored when enabled.
type printer struct {
	w io.Writer

	errColor  *color.Color
	warnColor *color.Color
	infoColor *color.Color
	okColor   *color.Color
	bold      *color.Color
	faint     *color.Color
}

// newPrinter creates a printer; mode is auto, on or off.
func newPrinter(w io.Writer, mode string) (*printer, error) {
	var enabled bool

	switch strings.ToLower(mode) {
	case "auto", "":
		enabled = isTerminal(w)
	case "on", "always":
		enabled = true
	case "off", "never":
		enabled = false
	default:
		return nil, fmt.Errorf("invalid --color value %q (want auto, on or off)", mode)
	}

	p := &printer{
		w:         w,
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow, color.Bold),
		infoColor: color.New(color.FgCyan),
		okColor:   color.New(color.FgGreen),
		bold:      color.New(color.Bold),
		faint:     color.New(color.Faint),
	}

	for _, c := range []*color.Color{p.errColor, p.warnColor, p.infoColor, p.okColor, p.bold, p.faint} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Diagnostics prints every diagnostic, errors first.
func (p *printer) Diagnostics(diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		var label string

		switch d.Severity {
		case diagnostic.DiagnosticError:
			label = p.errColor.Sprint("error")
		case diagnostic.DiagnosticWarning:
			label = p.warnColor.Sprint("warning")
		default:
			label = p.infoColor.Sprint("info")
		}

		fmt.Fprintf(p.w, "%s: %s\n", label, d.String())

		for _, s := range d.Suggestions {
			fmt.Fprintf(p.w, "  %s %s\n", p.faint.Sprint("hint:"), s)
		}
	}
}

// File prints a generated file for --dry-run.
func (p *printer) File(path string, content []byte) {
	fmt.Fprintf(p.w, "%s\n%s\n", p.bold.Sprintf("// ==> %s <==", path), content)
}

// Written reports a file written to disk.
func (p *printer) Written(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.okColor.Sprint("wrote"), path)
}

// Stale reports a generated file that differs from disk.
func (p *printer) Stale(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.warnColor.Sprint("stale"), path)
}

// OK prints a success line.
func (p *printer) OK(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.okColor.Sprint("ok"), msg)
}

// Title starts a section, with an optional faint location.
func (p *printer) Title(title, location string) {
	if location != "" && location != title {
		fmt.Fprintf(p.w, "%s  %s\n", p.bold.Sprint(title), p.faint.Sprint(location))
		return
	}

	fmt.Fprintln(p.w, p.bold.Sprint(title))
}

// Item prints an indented line.
func (p *printer) Item(text string) {
	fmt.Fprintf(p.w, "  %s\n", text)
}

// Table prints indented, aligned two-column rows.
func (p *printer) Table(rows [][2]string) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)

	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%s\n", r[0], p.faint.Sprint(r[1]))
	}

	_ = tw.Flush()
}

// Version prints version information.
func (p *printer) Version(v, goVersion string) {
	fmt.Fprintf(p.w, "%s %s\n", p.bold.Sprint(v), p.faint.Sprintf("(%s)", goVersion))
}
