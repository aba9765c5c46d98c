package snbt

import (
	"regexp"
	"strconv"
	"strings"
)

var bareKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._+-]+$`)

// Marshal renders t in its minimal textual form: no whitespace, bare keys
// where possible, and every string double-quoted.
func Marshal(t Tag) string {
	var b strings.Builder
	writeTag(&b, t)
	return b.String()
}

func writeTag(b *strings.Builder, t Tag) {
	switch v := t.(type) {
	case Compound:
		b.WriteByte('{')
		for i, f := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			writeKey(b, f.Name)
			b.WriteByte(':')
			writeTag(b, f.Value)
		}
		b.WriteByte('}')
	case List:
		b.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			writeTag(b, e)
		}
		b.WriteByte(']')
	case ByteArray:
		writeArray(b, 'B', v, func(n int8) string { return strconv.Itoa(int(n)) + "b" })
	case IntArray:
		writeArray(b, 'I', v, func(n int32) string { return strconv.Itoa(int(n)) })
	case LongArray:
		writeArray(b, 'L', v, func(n int64) string { return strconv.FormatInt(n, 10) + "L" })
	case String:
		writeQuoted(b, string(v))
	case Byte:
		b.WriteString(strconv.Itoa(int(v)))
		b.WriteByte('b')
	case Short:
		b.WriteString(strconv.Itoa(int(v)))
		b.WriteByte('s')
	case Int:
		b.WriteString(strconv.Itoa(int(v)))
	case Long:
		b.WriteString(strconv.FormatInt(int64(v), 10))
		b.WriteByte('L')
	case Float:
		b.WriteString(formatFloat(float64(v), 32))
		b.WriteByte('f')
	case Double:
		b.WriteString(formatFloat(float64(v), 64))
		b.WriteByte('d')
	}
}

func writeArray[T any](b *strings.Builder, kind byte, vals []T, format func(T) string) {
	b.WriteByte('[')
	b.WriteByte(kind)
	b.WriteByte(';')
	for i, n := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(format(n))
	}
	b.WriteByte(']')
}

func writeKey(b *strings.Builder, k string) {
	if bareKeyPattern.MatchString(k) {
		b.WriteString(k)
		return
	}
	writeQuoted(b, k)
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
}

// formatFloat always keeps a decimal point or exponent so the value reads
// back as a floating point number.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
