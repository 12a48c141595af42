// Package content generates and normalizes practice text.
package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const tabWidth = 4

// replacer rewrites Unicode characters to their keyboard-typable
// equivalents before decomposition.
var replacer = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "‛", "'",
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
	"′", "'", "″", `"`,
	"‐", "-", "‑", "-", "‒", "-", "–", "-",
	"—", "--", "―", "--", "⁓", "~",
	"…", "...",
	" ", " ", " ", " ", " ", " ", " ", " ", " ", " ",
	"​", "", "‌", "", "‍", "",
	"×", "x", "÷", "/", "±", "+/-",
	"≠", "!=", "≤", "<=", "≥", ">=", "−", "-", "∗", "*",
	"€", "EUR", "£", "GBP", "¥", "JPY",
	"©", "(c)", "®", "(r)", "™", "TM",
	"¼", "1/4", "½", "1/2", "¾", "3/4", "⁄", "/",
	"°", "deg", "µ", "u",
	"•", "*", "·", "*",
	"←", "<-", "→", "->", "↑", "^", "↓", "v", "↔", "<->",
	"«", "<<", "»", ">>", "¡", "!", "¿", "?",
)

// Normalize rewrites raw provider output into typable practice text:
// Unicode replaced or stripped to its ASCII-typable form, line endings
// unified, tabs expanded, repeated interior whitespace collapsed, and
// trailing whitespace and blank lines trimmed. Leading indentation is kept
// so code snippets survive intact.
func Normalize(text string) string {
	text = replacer.Replace(text)
	text = stripCombining(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(collapseInterior(line), " ")
	}
	out := strings.Join(lines, "\n")
	return strings.Trim(out, "\n")
}

// stripCombining decomposes the text and drops combining marks, turning
// accented characters into their base form.
func stripCombining(text string) string {
	decomposed := norm.NFKD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// collapseInterior squeezes runs of spaces after the indentation.
func collapseInterior(line string) string {
	indent := 0
	for indent < len(line) && line[indent] == ' ' {
		indent++
	}
	rest := line[indent:]
	for strings.Contains(rest, "  ") {
		rest = strings.ReplaceAll(rest, "  ", " ")
	}
	return line[:indent] + rest
}
