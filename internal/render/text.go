// Package render provides text fitting for fixed-size character displays and
// the frame renderer that pushes menu screens to the device.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sanitize removes ANSI escapes and control characters and replaces invalid
// UTF-8 bytes. Player metadata and command output end up on the display
// verbatim otherwise.
func Sanitize(s string) string {
	if strings.IndexByte(s, '\x1b') >= 0 {
		s = ansi.Strip(s)
	}
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			// Drop invalid bytes.
			i++
			continue
		}
		if r == '\t' {
			b.WriteByte(' ')
			i += size
			continue
		}
		if unicode.IsControl(r) {
			i += size
			continue
		}
		// Replace non-breaking space with regular space
		if r == '\u00a0' {
			b.WriteByte(' ')
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// needsSanitize returns true if the string contains bytes that need sanitizing.
func needsSanitize(s string) bool {
	for i := range len(s) {
		b := s[i]
		if b < 0x20 || b == 0x7f { // ASCII control chars, tab included
			return true
		}
		if b >= 0x80 && b <= 0x9f { // C1 control range / invalid lead bytes
			return true
		}
		if b == 0xc2 { // Potential 2-byte sequence for U+00A0 (NBSP) or C1 controls
			if i+1 < len(s) && s[i+1] == 0xa0 {
				return true
			}
		}
	}
	return !utf8.ValidString(s)
}

// Fit truncates s to width display cells and pads it with spaces so the
// result is exactly width cells wide.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(Sanitize(s), width, ""), width)
}

// Width returns the number of display cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ASCII folds s onto the printable ASCII range the HD44780 character ROM
// shares with every other display: accents are dropped and anything left
// outside the range becomes '?'.
func ASCII(s string) string {
	s = Sanitize(s)
	folded, _, err := transform.String(stripMarks, s)
	if err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		case r == 'ß':
			b.WriteString("ss")
		case r == '’' || r == '‘':
			b.WriteByte('\'')
		case r == '“' || r == '”':
			b.WriteByte('"')
		case r == '–' || r == '—':
			b.WriteByte('-')
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

// Len returns the number of grapheme clusters in s.
func Len(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Scroll drops the first offset grapheme clusters of s.
func Scroll(s string, offset int) string {
	if offset <= 0 {
		return s
	}
	g := uniseg.NewGraphemes(s)
	for n := 0; g.Next(); n++ {
		if n == offset {
			from, _ := g.Positions()
			return s[from:]
		}
	}
	return ""
}

// EmptyLine creates an empty line (spaces) of the specified width.
func EmptyLine(width int) string {
	return strings.Repeat(" ", width)
}
