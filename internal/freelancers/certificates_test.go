package freelancers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileCertificates(t *testing.T) {
	stored := []string{"s1", "s2"}
	cases := []struct {
		name     string
		declared []string
		added    []string
		replace  bool
		want     []string
	}{
		{"declared subset then new", []string{"s2"}, []string{"n1"}, false, []string{"s2", "n1"}},
		{"declared order wins", []string{"s2", "s1"}, nil, false, []string{"s2", "s1"}},
		{"preserve stored by default", nil, []string{"n1"}, false, []string{"s1", "s2", "n1"}},
		{"replace wipes stored", nil, []string{"n1"}, true, []string{"n1"}},
		{"declaration wins over replace", []string{"s1"}, nil, true, []string{"s1"}},
		{"unknown declarations ignored", []string{"https://other.example.com/x.pdf", "s1"}, nil, false, []string{"s1"}},
		{"only unknown declarations", []string{"d1"}, []string{"n1"}, false, []string{"n1"}},
		{"duplicates keep first", []string{"s1", "s1"}, []string{"n1", "n1", "s1"}, false, []string{"s1", "n1"}},
		{"blank entries dropped", []string{" ", " s1 "}, []string{""}, false, []string{"s1"}},
		{"nothing left", nil, nil, true, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReconcileCertificates(stored, tc.declared, tc.added, tc.replace))
		})
	}
}

func TestReconcileCertificatesIsIdempotent(t *testing.T) {
	first := ReconcileCertificates([]string{"a", "b"}, []string{"b", "a"}, []string{"c"}, false)
	second := ReconcileCertificates(first, first, nil, false)
	assert.Equal(t, []string{"b", "a", "c"}, second)
}

func TestRemoveCertificate(t *testing.T) {
	out, ok := RemoveCertificate([]string{"a", "b", "c"}, "b")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, out)

	out, ok = RemoveCertificate([]string{"a"}, "z")
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, out)
}
