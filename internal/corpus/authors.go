package corpus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrAuthorSyntax marks malformed author list literals.
var ErrAuthorSyntax = errors.New("malformed author list")

// ParseAuthorList parses a bracketed, comma-separated list of quoted strings
// or bare integers, e.g. ['A. Smith', "B. O'Neil", 42]. A trailing comma is
// accepted. The result is deduplicated, keeping the first occurrence of every
// author, and each identifier is trimmed and NFC-normalized. Blank
// identifiers are dropped.
func ParseAuthorList(input string) ([]string, error) {
	p := listParser{src: input}
	items, err := p.parse()
	if err != nil {
		return nil, err
	}
	return dedupeAuthors(items), nil
}

type listParser struct {
	src string
	pos int
}

func (p *listParser) parse() ([]string, error) {
	p.skipSpace()
	if !p.consume('[') {
		return nil, p.fail("expected '['")
	}
	var items []string
	for {
		p.skipSpace()
		if p.consume(']') {
			break
		}
		item, err := p.item()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, p.fail("expected ',' or ']'")
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.fail("unexpected trailing input")
	}
	return items, nil
}

func (p *listParser) item() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.fail("unterminated list")
	}
	switch c := p.src[p.pos]; {
	case c == '\'' || c == '"':
		return p.quoted(c)
	case c == '-' || (c >= '0' && c <= '9'):
		return p.integer()
	default:
		return "", p.fail(fmt.Sprintf("unexpected character %q", c))
	}
}

func (p *listParser) quoted(quote byte) (string, error) {
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.fail("unterminated string")
}

func (p *listParser) integer() (string, error) {
	start := p.pos
	if p.src[p.pos] == '-' {
		p.pos++
	}
	digits := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == digits {
		return "", p.fail("expected digits")
	}
	return p.src[start:p.pos], nil
}

var simpleEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// hexEscapeWidths maps an escape letter to its number of hex digits.
var hexEscapeWidths = map[byte]int{'x': 2, 'u': 4, 'U': 8}

// escape decodes the backslash sequence at p.pos into b. Unknown letters
// keep the backslash, matching how the lists were written.
func (p *listParser) escape(b *strings.Builder) error {
	if p.pos+1 >= len(p.src) {
		return p.fail("dangling escape")
	}
	c := p.src[p.pos+1]
	if r, ok := simpleEscapes[c]; ok {
		b.WriteByte(r)
		p.pos += 2
		return nil
	}
	if c >= '0' && c <= '7' {
		p.octal(b)
		return nil
	}
	width, ok := hexEscapeWidths[c]
	if !ok {
		b.WriteByte('\\')
		b.WriteByte(c)
		p.pos += 2
		return nil
	}
	start := p.pos + 2
	if start+width > len(p.src) {
		return p.fail(fmt.Sprintf("truncated \\%c escape", c))
	}
	code, err := strconv.ParseUint(p.src[start:start+width], 16, 32)
	if err != nil {
		return p.fail(fmt.Sprintf("invalid \\%c escape %q", c, p.src[start:start+width]))
	}
	r := rune(code)
	if !utf8.ValidRune(r) {
		return p.fail(fmt.Sprintf("escape \\%c%s is not a valid code point", c, p.src[start:start+width]))
	}
	b.WriteRune(r)
	p.pos = start + width
	return nil
}

// octal decodes one to three octal digits following the backslash.
func (p *listParser) octal(b *strings.Builder) {
	p.pos++
	var code rune
	for n := 0; n < 3 && p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '7'; n++ {
		code = code*8 + rune(p.src[p.pos]-'0')
		p.pos++
	}
	b.WriteRune(code)
}

func (p *listParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *listParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *listParser) fail(reason string) error {
	return fmt.Errorf("%w: %s at offset %d", ErrAuthorSyntax, reason, p.pos)
}

func dedupeAuthors(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		normalized := norm.NFC.String(strings.TrimSpace(item))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
