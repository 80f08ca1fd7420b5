package geo

import "testing"

func TestLookupCity(t *testing.T) {
	c, ok := LookupCity("Jakarta")
	if !ok {
		t.Fatalf("expected Jakarta to resolve")
	}
	if c.Province != "DKI Jakarta" || c.Lat == 0 || c.Lon == 0 {
		t.Fatalf("unexpected city %+v", c)
	}
}

func TestLookupCityPrefixes(t *testing.T) {
	for _, name := range []string{"KOTA BANDUNG", "  bandung ", "Kab. Bandung"} {
		if _, ok := LookupCity(name); !ok {
			t.Fatalf("expected %q to resolve", name)
		}
	}
}

func TestLookupCityUnknown(t *testing.T) {
	if _, ok := LookupCity("Atlantis"); ok {
		t.Fatalf("unknown city must not resolve")
	}
	if _, ok := LookupCity("   "); ok {
		t.Fatalf("blank city must not resolve")
	}
}

func TestLookupCityAlias(t *testing.T) {
	solo, _ := LookupCity("Solo")
	surakarta, _ := LookupCity("Surakarta")
	if solo != surakarta {
		t.Fatalf("Solo and Surakarta should map to the same entry")
	}
}
