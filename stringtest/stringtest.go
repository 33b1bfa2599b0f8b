// Package stringtest has helpers for comparing terminal output in tests.
package stringtest

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"[INFO]  [API] - started",
//		"[WARN]  [API] - slow",
//	) // -> "[INFO]  [API] - started\n[WARN]  [API] - slow"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Strip removes every ANSI escape sequence from s, leaving the text a user
// would see.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Lines strips s and splits it into lines, dropping a single trailing empty
// line left by a final newline.
func Lines(s string) []string {
	s = strings.TrimSuffix(Strip(s), "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}

// Input dedents a raw string literal so fixtures can be indented with the
// test code. One leading and one trailing newline are removed, then the
// longest whitespace prefix shared by all non-blank lines is cut from every
// line. Whitespace-only lines become empty.
//
// Example:
//
//	scenario := stringtest.Input(`
//		processes:
//		  - name: API
//	`)
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false

			continue
		}

		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}
