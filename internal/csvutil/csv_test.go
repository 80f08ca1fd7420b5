package csvutil

import (
	"reflect"
	"testing"
)

func TestParseLineQuotedComma(t *testing.T) {
	fields := ParseLine(`IDF001,"Jakarta, DKI",active`)
	want := []string{"IDF001", "Jakarta, DKI", "active"}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("unexpected fields %#v", fields)
	}
}

func TestParseLineEscapedQuote(t *testing.T) {
	fields := ParseLine(`"say ""hello""",plain`)
	if len(fields) != 2 || fields[0] != `say "hello"` || fields[1] != "plain" {
		t.Fatalf("unexpected fields %#v", fields)
	}
}

func TestParseLineEmptyFields(t *testing.T) {
	fields := ParseLine(`a,,c,`)
	want := []string{"a", "", "c", ""}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("unexpected fields %#v", fields)
	}
}

func TestSplitNaive(t *testing.T) {
	fields := SplitNaive(` a , b ,"c,d"`)
	// naive split cuts straight through the quoted comma
	want := []string{"a", "b", `"c`, `d"`}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("unexpected fields %#v", fields)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	headers := []string{"part_number", "part_name", "note"}
	rows := []Row{
		{"part_number": "PN-001", "part_name": "Roller, feed", "note": "plain"},
		{"part_number": "PN 002 (B)", "part_name": `disc "spare"`, "note": ""},
	}

	encoded := Encode(headers, rows)
	gotHeaders, gotRows, err := Decode([]byte(encoded))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(gotHeaders, headers) {
		t.Fatalf("headers changed: %#v", gotHeaders)
	}
	if !reflect.DeepEqual(gotRows, rows) {
		t.Fatalf("rows changed: %#v", gotRows)
	}
}

func TestDecodeTolerance(t *testing.T) {
	data := "\uFEFFid,name,region\r\nIDH00001,Budi,Jabo 1\r\n\r\nIDH00002,Sari\r\nIDH00003,Andi,Jatim,extra\r\n"
	headers, rows, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(headers, []string{"id", "name", "region"}) {
		t.Fatalf("unexpected headers %#v", headers)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1]["region"] != "" {
		t.Fatalf("short row should pad region, got %q", rows[1]["region"])
	}
	if _, ok := rows[2]["extra"]; ok {
		t.Fatalf("long row should be truncated to header width")
	}
	if rows[2]["region"] != "Jatim" {
		t.Fatalf("unexpected region %q", rows[2]["region"])
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	if _, _, err := Decode([]byte("\n\n")); err == nil {
		t.Fatalf("expected error on empty input")
	}
}

func TestHasValues(t *testing.T) {
	row := Row{"id": "IDH00001", "name": "Budi", "vendor": "  "}
	if !HasValues(row, "id", "name") {
		t.Fatalf("expected row to satisfy id+name")
	}
	if HasValues(row, "id", "vendor") {
		t.Fatalf("blank vendor should fail the check")
	}
	if HasValues(row, "missing") {
		t.Fatalf("absent key should fail the check")
	}
}

func TestParseCount(t *testing.T) {
	cases := map[string]int{
		"12":   12,
		" 7 ":  7,
		"12.0": 12,
		"3.9":  3,
		"":     0,
		"n/a":  0,
		"-4":   0,
		"-1.5": 0,
	}
	for in, want := range cases {
		if got := ParseCount(in); got != want {
			t.Fatalf("ParseCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	if got := ParseNumber("-6.2215"); got != -6.2215 {
		t.Fatalf("ParseNumber latitude = %v", got)
	}
	if got := ParseNumber("junk"); got != 0 {
		t.Fatalf("ParseNumber junk = %v", got)
	}
}
