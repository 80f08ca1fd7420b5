package csvutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is one CSV record keyed by normalized header name.
type Row map[string]string

// ParseLine splits a single CSV line with quote awareness. A double quote
// toggles the in-quotes state, a comma is a separator only outside quotes
// and a doubled quote inside a quoted field yields a literal quote.
func ParseLine(line string) []string {
	fields := make([]string, 0, 8)
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// SplitNaive splits a line on every comma with no quote handling. Only safe
// for legacy fixtures whose fields never contain commas.
func SplitNaive(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Decode parses full CSV text into rows keyed by normalized headers.
// Tolerates a UTF-8 BOM, CRLF line endings and ragged rows (short rows are
// padded with empty strings, long rows are truncated to the header width).
func Decode(data []byte) ([]string, []Row, error) {
	text := strings.TrimPrefix(string(data), "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("csv: empty input")
	}

	rawHeaders := ParseLine(lines[0])
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = NormalizeHeader(h, i)
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := ParseLine(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = strings.TrimSpace(values[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// Encode serializes rows under the given header order. Every field is quoted
// and embedded quotes are doubled, so Decode(Encode(rows)) reproduces the
// rows exactly even when values contain commas, quotes or newlines inside a
// single line.
func Encode(headers []string, rows []Row) string {
	var b strings.Builder
	writeLine := func(values []string) {
		for i, v := range values {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(v, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	writeLine(headers)
	line := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			line[i] = row[h]
		}
		writeLine(line)
	}
	return b.String()
}

// HasValues reports whether the row carries a non-empty value for every
// required key. Import targets use this to drop filler rows.
func HasValues(row Row, keys ...string) bool {
	for _, k := range keys {
		if strings.TrimSpace(row[k]) == "" {
			return false
		}
	}
	return true
}

// ParseCount coerces spreadsheet cell text into a non-negative stock count.
// Accepts plain integers and float renderings like "12.0"; anything else,
// including empty text, counts as zero.
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return 0
		}
		return int(f)
	}
	return 0
}

// ParseNumber is ParseCount's float companion for columns such as
// coordinates and experience years. Invalid text maps to zero.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
