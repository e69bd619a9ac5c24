package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
)

var colorEnabled = true

// DisableColors turns off ANSI escapes in Format.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI escapes back on.
func EnableColors() { colorEnabled = true }

func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Format returns a multi-line rendering for terminals:
//
//	ERROR E202: Duplicate key in sibling group [validation]
//
//	  at root > ul > li
//
//	  key "3" is used twice
//
//	  Hint: derive keys from a stable identifier
func (e *Error) Format() string {
	var b strings.Builder

	head := e.Message
	if e.Code != "" {
		head = e.Code + ": " + head
	}
	fmt.Fprintf(&b, "\n%s %s", paint("ERROR", ansiRed, ansiBold), paint(head, ansiBold))
	if e.Category != "" {
		fmt.Fprintf(&b, " %s", paint("["+string(e.Category)+"]", ansiGray))
	}
	b.WriteString("\n\n")

	section := func(lines ...string) {
		for _, line := range lines {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	if e.Path != "" {
		section(paint("at ", ansiGray) + paint(e.Path, ansiCyan))
	}
	if e.Detail != "" {
		section(wrapText(e.Detail, 70)...)
	}
	if e.Suggestion != "" {
		section(paint("Hint: ", ansiCyan) + e.Suggestion)
	}
	if e.Wrapped != nil {
		section(paint("Caused by: ", ansiGray) + e.Wrapped.Error())
	}
	return b.String()
}

// FormatCompact returns "path: code: message (detail)", omitting empty
// parts.
func (e *Error) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	out := strings.Join(parts, ": ")
	if e.Detail != "" {
		out += " (" + e.Detail + ")"
	}
	return out
}

// wrapText greedily breaks text into lines of at most width bytes. A
// single word longer than width gets its own line.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := []string{words[0]}
	for _, w := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(w) > width {
			lines = append(lines, w)
			continue
		}
		*last += " " + w
	}
	return lines
}

// Fprint writes err to w, using Format for *Error values.
func Fprint(w io.Writer, err error) {
	var e *Error
	if stderrors.As(err, &e) {
		fmt.Fprint(w, e.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", ansiRed, ansiBold), err.Error())
}
