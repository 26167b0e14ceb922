package descriptor

import (
	"errors"
	"sort"
	"testing"
)

func TestPath(t *testing.T) {
	d := Descriptor{TypePath: []string{"matrix", "room", "Timeline"}}
	if got := d.Path(); got != "matrix::room::Timeline" {
		t.Fatalf("Path() = %q", got)
	}
}

func TestModulesAndCount(t *testing.T) {
	m := Map{
		"alpha": {{Fragment: "a", TypePath: []string{"alpha", "A"}}},
		"beta": {
			{Fragment: "b1", TypePath: []string{"beta", "B1"}},
			{Fragment: "b2", TypePath: []string{"beta", "B2"}},
		},
	}
	names := m.Modules()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Fatalf("Modules() = %v", names)
	}
	if got := m.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		m    Map
		want error
	}{
		{
			name: "well formed",
			m: Map{"m": {
				{Fragment: "impl Eq for X", TypePath: []string{"m", "X"}},
				{Fragment: "", Synthetic: true, TypePath: []string{"m", "Y"}},
			}},
			want: nil,
		},
		{
			name: "empty map",
			m:    Map{},
			want: nil,
		},
		{
			name: "empty module name",
			m:    Map{"": {{Fragment: "f", TypePath: []string{"X"}}}},
			want: ErrEmptyModuleName,
		},
		{
			name: "nil type path",
			m:    Map{"m": {{Fragment: "f"}}},
			want: ErrEmptyTypePath,
		},
		{
			name: "blank segment",
			m:    Map{"m": {{Fragment: "f", TypePath: []string{"m", ""}}}},
			want: ErrEmptyTypePathSegment,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.m)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}
