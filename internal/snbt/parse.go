package snbt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?$`)
)

// SyntaxError describes malformed input and where it was found.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("snbt: %s at offset %d", e.Msg, e.Offset)
}

// Parse reads a single tag from s. Whitespace between tokens is ignored, so
// both the compact and the pretty-printed forms are accepted.
func Parse(s string) (Tag, error) {
	p := &parser{src: s}
	p.skipSpace()
	t, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing data")
	}
	return t, nil
}

// ParseCompound reads s and requires the top-level tag to be a compound.
func ParseCompound(s string) (Compound, error) {
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	c, ok := t.(Compound)
	if !ok {
		return nil, &SyntaxError{Offset: 0, Msg: "top-level tag is not a compound"}
	}
	return c, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) expect(c byte) error {
	got, ok := p.peek()
	if !ok {
		return p.errorf("expected %q, got end of input", c)
	}
	if got != c {
		return p.errorf("expected %q, got %q", c, got)
	}
	p.pos++
	return nil
}

func (p *parser) value() (Tag, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of input")
	}

	switch c {
	case '{':
		return p.compound()
	case '[':
		if p.pos+2 < len(p.src) && p.src[p.pos+2] == ';' {
			switch p.src[p.pos+1] {
			case 'B', 'I', 'L':
				return p.array()
			}
		}
		return p.list()
	case '"', '\'':
		s, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	}

	start := p.pos
	tok := p.token()
	if tok == "" {
		return nil, p.errorf("unexpected character %q", c)
	}
	return scalar(tok, start)
}

func (p *parser) compound() (Tag, error) {
	p.pos++ // {
	c := Compound{}

	p.skipSpace()
	if next, ok := p.peek(); ok && next == '}' {
		p.pos++
		return c, nil
	}

	for {
		p.skipSpace()
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)

		p.skipSpace()
		next, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated compound")
		}
		p.pos++
		switch next {
		case ',':
			continue
		case '}':
			return c, nil
		default:
			p.pos--
			return nil, p.errorf("expected ',' or '}', got %q", next)
		}
	}
}

func (p *parser) list() (Tag, error) {
	p.pos++ // [
	l := List{}

	p.skipSpace()
	if next, ok := p.peek(); ok && next == ']' {
		p.pos++
		return l, nil
	}

	for {
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		l = append(l, v)

		p.skipSpace()
		next, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated list")
		}
		p.pos++
		switch next {
		case ',':
			continue
		case ']':
			return l, nil
		default:
			p.pos--
			return nil, p.errorf("expected ',' or ']', got %q", next)
		}
	}
}

func (p *parser) array() (Tag, error) {
	kind := p.src[p.pos+1]
	p.pos += 3 // [X;

	var (
		bytes ByteArray
		ints  IntArray
		longs LongArray
	)

	p.skipSpace()
	if next, ok := p.peek(); ok && next == ']' {
		p.pos++
	} else {
		for {
			p.skipSpace()
			start := p.pos
			t, err := scalar(p.token(), start)
			if err != nil {
				return nil, err
			}
			n, ok := AsInt(t)
			if !ok {
				return nil, &SyntaxError{Offset: start, Msg: "typed array element is not an integer"}
			}
			switch kind {
			case 'B':
				if n < math.MinInt8 || n > math.MaxInt8 {
					return nil, &SyntaxError{Offset: start, Msg: "byte array element out of range"}
				}
				bytes = append(bytes, int8(n))
			case 'I':
				if n < math.MinInt32 || n > math.MaxInt32 {
					return nil, &SyntaxError{Offset: start, Msg: "int array element out of range"}
				}
				ints = append(ints, int32(n))
			case 'L':
				longs = append(longs, int64(n))
			}

			p.skipSpace()
			next, ok := p.peek()
			if !ok {
				return nil, p.errorf("unterminated array")
			}
			p.pos++
			if next == ']' {
				break
			}
			if next != ',' {
				p.pos--
				return nil, p.errorf("expected ',' or ']', got %q", next)
			}
		}
	}

	switch kind {
	case 'B':
		if bytes == nil {
			bytes = ByteArray{}
		}
		return bytes, nil
	case 'I':
		if ints == nil {
			ints = IntArray{}
		}
		return ints, nil
	default:
		if longs == nil {
			longs = LongArray{}
		}
		return longs, nil
	}
}

func (p *parser) key() (string, error) {
	c, ok := p.peek()
	if !ok {
		return "", p.errorf("expected key, got end of input")
	}
	if c == '"' || c == '\'' {
		return p.quoted()
	}
	k := p.token()
	if k == "" {
		return "", p.errorf("expected key, got %q", c)
	}
	return k, nil
}

func (p *parser) quoted() (string, error) {
	start := p.pos
	q := p.src[p.pos]
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++
		switch {
		case c == '\\':
			if p.pos >= len(p.src) {
				return "", &SyntaxError{Offset: start, Msg: "unterminated string"}
			}
			b.WriteByte(p.src[p.pos])
			p.pos++
		case c == q:
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", &SyntaxError{Offset: start, Msg: "unterminated string"}
}

func (p *parser) token() string {
	start := p.pos
	for p.pos < len(p.src) && isBare(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isBare(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == '+', c == '-':
		return true
	}
	return false
}

// scalar interprets a bare token. Tokens that are not numbers or booleans
// are unquoted strings.
func scalar(tok string, offset int) (Tag, error) {
	if tok == "" {
		return nil, &SyntaxError{Offset: offset, Msg: "expected value"}
	}

	switch tok {
	case "true":
		return Byte(1), nil
	case "false":
		return Byte(0), nil
	}

	if intPattern.MatchString(tok) {
		if n, err := strconv.ParseInt(tok, 10, 32); err == nil {
			return Int(n), nil
		}
		return String(tok), nil
	}
	if floatPattern.MatchString(tok) {
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return Double(f), nil
		}
		return String(tok), nil
	}

	body, suffix := tok[:len(tok)-1], tok[len(tok)-1]
	switch suffix {
	case 'b', 'B':
		if intPattern.MatchString(body) {
			if n, err := strconv.ParseInt(body, 10, 8); err == nil {
				return Byte(n), nil
			}
		}
	case 's', 'S':
		if intPattern.MatchString(body) {
			if n, err := strconv.ParseInt(body, 10, 16); err == nil {
				return Short(n), nil
			}
		}
	case 'l', 'L':
		if intPattern.MatchString(body) {
			if n, err := strconv.ParseInt(body, 10, 64); err == nil {
				return Long(n), nil
			}
		}
	case 'f', 'F':
		if floatPattern.MatchString(body) {
			if f, err := strconv.ParseFloat(body, 32); err == nil {
				return Float(f), nil
			}
		}
	case 'd', 'D':
		if floatPattern.MatchString(body) {
			if f, err := strconv.ParseFloat(body, 64); err == nil {
				return Double(f), nil
			}
		}
	}

	return String(tok), nil
}
