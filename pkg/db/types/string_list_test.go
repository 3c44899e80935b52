package dbtypes

import "testing"

func TestStringListScanAcceptsStringAndBytes(t *testing.T) {
	var fromString StringList
	if err := fromString.Scan(`["a.pdf","b.pdf"]`); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if len(fromString) != 2 || fromString[0] != "a.pdf" || fromString[1] != "b.pdf" {
		t.Fatalf("unexpected list %v", fromString)
	}

	var fromBytes StringList
	if err := fromBytes.Scan([]byte(`["c.png"]`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if len(fromBytes) != 1 || fromBytes[0] != "c.png" {
		t.Fatalf("unexpected list %v", fromBytes)
	}
}

func TestStringListScanEmptyValues(t *testing.T) {
	for _, src := range []any{nil, "", []byte("null"), "[]"} {
		var l StringList
		if err := l.Scan(src); err != nil {
			t.Fatalf("scan %v: %v", src, err)
		}
		if l == nil || len(l) != 0 {
			t.Fatalf("expected empty non-nil list for %v, got %#v", src, l)
		}
	}
}

func TestStringListScanRejectsUnknownTypes(t *testing.T) {
	var l StringList
	if err := l.Scan(42); err == nil {
		t.Fatal("expected error for int source")
	}
	if err := l.Scan("not json"); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	if err != nil || v != "[]" {
		t.Fatalf("expected [] for nil list, got %v (%v)", v, err)
	}

	v, err = StringList{"x", "y"}.Value()
	if err != nil || v != `["x","y"]` {
		t.Fatalf("unexpected value %v (%v)", v, err)
	}
}

func TestStringListHelpers(t *testing.T) {
	l := StringList{"a", "b", "a"}
	if !l.Contains("b") || l.Contains("z") {
		t.Fatalf("unexpected Contains results")
	}
	out := l.Without("a")
	if len(out) != 1 || out[0] != "b" {
		t.Fatalf("unexpected Without result %v", out)
	}
	if len(l) != 3 {
		t.Fatalf("Without must not mutate the receiver")
	}
}
