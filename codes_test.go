package huff

import (
	"math/rand"
	"testing"
)

func TestParseCodeString(t *testing.T) {
	for _, s := range []string{"", "0", "1", "0110", "111111110"} {
		code, err := ParseCode(s)
		if err != nil {
			t.Fatalf("ParseCode(%q): %v", s, err)
		}
		if len(code) != len(s) {
			t.Fatalf("ParseCode(%q): got %d bits", s, len(code))
		}
		if got := code.String(); got != s {
			t.Fatalf("String: got %q want %q", got, s)
		}
	}
	if _, err := ParseCode("012"); err == nil {
		t.Fatalf("expected error for invalid digit")
	}
}

func TestCodeHasPrefix(t *testing.T) {
	c, _ := ParseCode("1011")
	for _, tc := range []struct {
		prefix string
		want   bool
	}{
		{"", true},
		{"1", true},
		{"101", true},
		{"1011", true},
		{"0", false},
		{"10110", false},
	} {
		p, _ := ParseCode(tc.prefix)
		if got := c.HasPrefix(p); got != tc.want {
			t.Fatalf("HasPrefix(%q): got %v want %v", tc.prefix, got, tc.want)
		}
	}
}

func TestCodeTableSetReplaces(t *testing.T) {
	var table CodeTable
	one, _ := ParseCode("1")
	zero, _ := ParseCode("0")
	table.Set('a', one)
	table.Set('a', zero)
	if table.Len() != 1 {
		t.Fatalf("Len: got %d want 1", table.Len())
	}
	code, ok := table.Lookup('a')
	if !ok || code.String() != "0" {
		t.Fatalf("Lookup: got %q, %v", code.String(), ok)
	}
	if _, ok := table.Lookup('b'); ok {
		t.Fatalf("Lookup of absent symbol reported present")
	}
}

func TestCodesPrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 50; round++ {
		data := make([]byte, 1+rng.Intn(4096))
		alphabet := 1 + rng.Intn(256)
		for i := range data {
			data[i] = byte(rng.Intn(alphabet))
		}
		h := CountSymbols(data)
		table := BuildTree(h).Codes()
		if table.Len() != h.Distinct() {
			t.Fatalf("round %d: %d codes for %d symbols", round, table.Len(), h.Distinct())
		}
		if !table.PrefixFree() {
			t.Fatalf("round %d: code table is not prefix-free", round)
		}
		for _, sym := range h.Symbols() {
			code, ok := table.Lookup(sym)
			if !ok {
				t.Fatalf("round %d: missing code for %#02x", round, sym)
			}
			if h.Distinct() > 1 && len(code) == 0 {
				t.Fatalf("round %d: zero-length code for %#02x", round, sym)
			}
		}
	}
}

func TestPrefixFreeDetectsConflict(t *testing.T) {
	var table CodeTable
	a, _ := ParseCode("01")
	b, _ := ParseCode("011")
	table.Set('a', a)
	table.Set('b', b)
	if table.PrefixFree() {
		t.Fatalf("expected conflict between 01 and 011")
	}
}

func TestCodeTableTreeRoundTrip(t *testing.T) {
	table := BuildTree(CountSymbols([]byte("mississippi river"))).Codes()
	tree, err := table.tree()
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	again := tree.Codes()
	for _, sym := range table.Symbols() {
		want, _ := table.Lookup(sym)
		got, ok := again.Lookup(sym)
		if !ok || got.String() != want.String() {
			t.Fatalf("symbol %q: got %q want %q", sym, got.String(), want.String())
		}
	}
}
