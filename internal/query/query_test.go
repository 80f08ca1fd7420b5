package query

import "testing"

func TestMatches(t *testing.T) {
	if !Matches("", "anything") {
		t.Fatalf("empty search must match everything")
	}
	if !Matches("jakar", "FSL Jakarta Timur", "WS001") {
		t.Fatalf("expected case-insensitive substring match")
	}
	if Matches("bandung", "FSL Jakarta Timur", "WS001") {
		t.Fatalf("expected no match")
	}
}

func TestWindowClamps(t *testing.T) {
	p := Params{Page: 2, PerPage: 10}

	lo, hi := p.Window(25)
	if lo != 10 || hi != 20 {
		t.Fatalf("window = [%d, %d), want [10, 20)", lo, hi)
	}

	lo, hi = p.Window(12)
	if lo != 10 || hi != 12 {
		t.Fatalf("window = [%d, %d), want [10, 12)", lo, hi)
	}

	p.Page = 9
	lo, hi = p.Window(12)
	if lo != 12 || hi != 12 {
		t.Fatalf("past-the-end page should be empty, got [%d, %d)", lo, hi)
	}
}

func TestTotalPages(t *testing.T) {
	p := Params{Page: 1, PerPage: 10}
	if got := p.TotalPages(25); got != 3 {
		t.Fatalf("TotalPages(25) = %d, want 3", got)
	}
	if got := p.TotalPages(30); got != 3 {
		t.Fatalf("TotalPages(30) = %d, want 3", got)
	}
	if got := p.TotalPages(0); got != 1 {
		t.Fatalf("TotalPages(0) = %d, want 1", got)
	}
}
