package validate_test

import (
	"testing"

	"github.com/acervolab/catalogagent/validate"
)

func TestUsableString(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Os Maias", true},
		{"  Os Maias  ", true},
		{"0", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"n/a", false},
		{"N/A", false},
		{" n/a ", false},
		{"não se aplica", false},
		{"Não", false},
		{"nao", false},
		{"-", false},
		{"none", false},
		{"NULL", false},
		{"--", true},
		{"nada", true},
	}
	for _, tc := range cases {
		if got := validate.UsableString(tc.in); got != tc.want {
			t.Errorf("UsableString(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestUsable(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"string", "por", true},
		{"refusal string", "não", false},
		{"empty string map", map[string]string{}, false},
		{"string map all refusals", map[string]string{"a": "n/a", "c": ""}, false},
		{"string map one usable", map[string]string{"a": "por", "c": "n/a"}, true},
		{"any map nested usable", map[string]any{"a": map[string]any{"x": "v"}}, true},
		{"any map unusable", map[string]any{"a": nil, "b": "-"}, false},
		{"string slice", []string{"", "texto"}, true},
		{"string slice empty", []string{}, false},
		{"any slice", []any{nil, "texto"}, true},
		{"number", 42, false},
		{"bool", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validate.Usable(tc.in); got != tc.want {
				t.Errorf("Usable(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
