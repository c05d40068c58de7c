package ingest

import (
	"strings"
)

// RawRow holds the trimmed, unquoted fields of one line. Position carries
// meaning in the fixed layouts, so empty fields are kept.
type RawRow []string

// at returns the field at i, or "" when the row is shorter.
func (r RawRow) at(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}

	return r[i]
}

// populated counts the non-empty fields.
func (r RawRow) populated() int {
	n := 0

	for _, f := range r {
		if f != "" {
			n++
		}
	}

	return n
}

// Delimiter picks the field separator for a line: ';' when the line has one
// and no quoted-comma sequence, ',' otherwise.
func Delimiter(line string) rune {
	if strings.Contains(line, ";") && !strings.Contains(line, `",`) {
		return ';'
	}

	return ','
}

// Tokenize splits one line into fields. Delimiters inside double quotes do not
// split.
func Tokenize(line string) RawRow {
	delim := Delimiter(line)

	var (
		fields   RawRow
		field    strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes

			field.WriteRune(r)
		case r == delim && !inQuotes:
			fields = append(fields, cleanField(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}

	return append(fields, cleanField(field.String()))
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	return strings.TrimSpace(s)
}
