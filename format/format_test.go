package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Format
	}{
		{"l", LiveFormat},
		{"live", LiveFormat},
		{"y", YAMLFormat},
		{"json", JSONFormat},
	} {
		got, err := ParseFormat(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("%q: got %v %v", tc.in, got, err)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("got %v", err)
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil || g != f {
			t.Errorf("%s: got %v %v", d, g, err)
		}
		if s, ok := FromSuffix(f.Suffix()); !ok || s != f {
			t.Errorf("suffix %s: got %v", f.Suffix(), s)
		}
	}
}
