package pagination

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in       Params
		def      int
		expected Params
	}{
		{Params{}, 0, Params{Limit: DefaultLimit}},
		{Params{}, 50, Params{Limit: 50}},
		{Params{Limit: 500, Offset: 10}, 20, Params{Limit: MaxLimit, Offset: 10}},
		{Params{Limit: 5, Offset: -3}, 20, Params{Limit: 5}},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in, tc.def); got != tc.expected {
			t.Fatalf("Normalize(%+v, %d) = %+v, want %+v", tc.in, tc.def, got, tc.expected)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	if NormalizeLimit(0) != DefaultLimit {
		t.Fatal("expected default limit")
	}
	if NormalizeLimit(1000) != MaxLimit {
		t.Fatal("expected max limit")
	}
	if NormalizeLimit(7) != 7 {
		t.Fatal("expected limit passthrough")
	}
}
