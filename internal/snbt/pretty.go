package snbt

import "strings"

const indentUnit = "  "

type PrettyOpt func(*printer)

// WithCompactEmpty renders empty compounds and lists as {} and [] instead of
// an open line, a blank indented line and a close line.
func WithCompactEmpty() PrettyOpt {
	return func(p *printer) {
		p.compactEmpty = true
	}
}

// Pretty reformats the output of Marshal into an indented form. Compounds
// nested inside lists and typed arrays stay on a single line. The result
// parses back to the same tree.
func Pretty(s string, opts ...PrettyOpt) string {
	p := &printer{src: s}
	for _, opt := range opts {
		opt(p)
	}

	p.out.Grow(len(s) * 2)
	for p.pos < len(p.src) {
		p.step()
	}
	return p.out.String()
}

type printer struct {
	src string
	pos int
	out strings.Builder

	indent  int
	lists   int
	compact int
	quoted  bool
	escaped bool

	compactEmpty bool
}

func (p *printer) step() {
	c := p.src[p.pos]
	p.pos++

	if p.quoted {
		p.out.WriteByte(c)
		switch {
		case p.escaped:
			p.escaped = false
		case c == '\\':
			p.escaped = true
		case c == '"':
			p.quoted = false
		}
		return
	}

	if c == '"' {
		p.quoted = true
		p.out.WriteByte(c)
		return
	}

	if p.compact > 0 {
		p.stepCompact(c)
		return
	}

	switch c {
	case '{':
		if p.lists > 0 {
			p.compact = 1
			p.out.WriteByte(c)
			return
		}
		if p.emptyBody('}') {
			return
		}
		p.out.WriteString("{\n")
		p.indent++
		p.writeIndent()
	case '[':
		if p.pos+1 < len(p.src) && p.src[p.pos+1] == ';' {
			p.compact = 1
			p.out.WriteByte(c)
			return
		}
		if p.emptyBody(']') {
			return
		}
		p.out.WriteString("[\n")
		p.indent++
		p.lists++
		p.writeIndent()
	case '}':
		p.out.WriteByte('\n')
		p.indent--
		p.writeIndent()
		p.out.WriteByte(c)
	case ']':
		p.out.WriteByte('\n')
		p.indent--
		p.lists--
		p.writeIndent()
		p.out.WriteByte(c)
	case ',':
		p.out.WriteString(",\n")
		p.writeIndent()
	case ':':
		p.out.WriteString(": ")
	default:
		p.out.WriteByte(c)
	}
}

func (p *printer) stepCompact(c byte) {
	switch c {
	case '{', '[':
		p.compact++
		p.out.WriteByte(c)
	case '}', ']':
		p.compact--
		p.out.WriteByte(c)
	case ',':
		p.out.WriteString(", ")
	case ':':
		p.out.WriteString(": ")
	default:
		p.out.WriteByte(c)
	}
}

// emptyBody writes an empty collection on one line when compactEmpty is set
// and the next byte closes the collection just opened.
func (p *printer) emptyBody(closer byte) bool {
	if !p.compactEmpty || p.pos >= len(p.src) || p.src[p.pos] != closer {
		return false
	}
	p.out.WriteByte(p.src[p.pos-1])
	p.out.WriteByte(closer)
	p.pos++
	return true
}

func (p *printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.out.WriteString(indentUnit)
	}
}
