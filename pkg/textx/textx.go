// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
	"unicode"
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	// strip control chars outside tab/newline/carriage return
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Normalize lowercases s and replaces punctuation with spaces, collapsing
// runs of whitespace to a single space. Digits and letters survive; '+' and
// '#' survive too so tokens like "c++" and "c#" keep their identity.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the normalized words of s.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// statement separators seen in parsed resume descriptions
var statementSeps = []string{"\n", "•", "●", "▪", "|", ";"}

// SplitStatements splits a description blob into bullet-style statements.
// Leading list markers ("- ", "* ") are stripped; empty fragments dropped.
func SplitStatements(s string) []string {
	parts := []string{s}
	for _, sep := range statementSeps {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "- ")
		p = strings.TrimPrefix(p, "* ")
		p = strings.TrimSpace(strings.TrimPrefix(p, "-"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FirstWord returns the first normalized word of s, or "".
func FirstWord(s string) string {
	toks := Tokens(s)
	if len(toks) == 0 {
		return ""
	}
	return toks[0]
}

// ContainsAny reports whether any needle occurs in the normalized form of s.
// Needles are expected to be pre-normalized (lowercase, no punctuation).
func ContainsAny(s string, needles []string) (string, bool) {
	norm := " " + Normalize(s) + " "
	for _, n := range needles {
		if strings.Contains(norm, " "+n+" ") {
			return n, true
		}
	}
	return "", false
}
