package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("EXPAND_SET", "value")
	t.Setenv("EXPAND_EMPTY", "")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "set var", input: "x: ${EXPAND_SET}", want: "x: value"},
		{name: "unset var", input: "x: ${EXPAND_UNSET}", want: "x: "},
		{name: "unset with default", input: "x: ${EXPAND_UNSET:-fallback}", want: "x: fallback"},
		{name: "set ignores default", input: "x: ${EXPAND_SET:-fallback}", want: "x: value"},
		{name: "empty uses default", input: "x: ${EXPAND_EMPTY:-fallback}", want: "x: fallback"},
		{name: "no pattern", input: "plain text $HOME", want: "plain text $HOME"},
		{name: "multiple", input: "${EXPAND_SET}/${EXPAND_UNSET:-d}", want: "value/d"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExpandEnv(tc.input); got != tc.want {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
