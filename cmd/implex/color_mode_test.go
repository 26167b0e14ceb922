package main

import "testing"

func TestReadColorMode(t *testing.T) {
	cases := []struct {
		in      string
		want    colorMode
		wantErr bool
	}{
		{"", colorModeAuto, false},
		{"auto", colorModeAuto, false},
		{"AUTO", colorModeAuto, false},
		{" on ", colorModeOn, false},
		{"off", colorModeOff, false},
		{"always", "", true},
	}
	for _, tc := range cases {
		got, err := readColorMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readColorMode(%q) accepted invalid input", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("readColorMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readColorMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestShouldColorExplicitModes(t *testing.T) {
	if !shouldColor(colorModeOn) {
		t.Error("colorModeOn must force color")
	}
	if shouldColor(colorModeOff) {
		t.Error("colorModeOff must disable color")
	}
}
