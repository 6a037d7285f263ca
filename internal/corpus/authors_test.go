package corpus_test

import (
	"errors"
	"reflect"
	"testing"

	"collabtopo/internal/corpus"
)

func TestParseAuthorList(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single quotes", input: "['A. Smith', 'B. Jones']", want: []string{"A. Smith", "B. Jones"}},
		{name: "double quotes with apostrophe", input: `["B. O'Neil", 'C. Wu']`, want: []string{"B. O'Neil", "C. Wu"}},
		{name: "escaped quote", input: `['D\'Arcy']`, want: []string{"D'Arcy"}},
		{name: "integers", input: "[1, 20, 3]", want: []string{"1", "20", "3"}},
		{name: "trailing comma", input: "['x', ]", want: []string{"x"}},
		{name: "empty", input: " [ ] ", want: []string{}},
		{name: "dedupe keeps first", input: "['b', 'a', 'b', ' a ']", want: []string{"b", "a"}},
		{name: "blank dropped", input: "['', 'a']", want: []string{"a"}},
		{name: "nfc normalization", input: "['José', 'José']", want: []string{"José"}},
		{name: "hex escape", input: `['Andr\xe9']`, want: []string{"André"}},
		{name: "unicode escapes", input: `['Andr\u00e9', 'Z\U0001F600']`, want: []string{"André", "Z\U0001F600"}},
		{name: "octal escape", input: `['Line\012Break']`, want: []string{"Line\nBreak"}},
		{name: "backslash escape", input: `['a\\b']`, want: []string{`a\b`}},
		{name: "unknown escape kept", input: `['a\qb']`, want: []string{`a\qb`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := corpus.ParseAuthorList(tc.input)
			if err != nil {
				t.Fatalf("ParseAuthorList(%q) error: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseAuthorList(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseAuthorListRejectsMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"'a', 'b'",
		"['a'",
		"['a' 'b']",
		"['unterminated]",
		"[__import__('os').system('id')]",
		"['a'] + ['b']",
		"[-]",
		`['a\`,
		`['\xZZ']`,
		`['\u00e']`,
		`['\U00110000']`,
	}
	for _, input := range inputs {
		if _, err := corpus.ParseAuthorList(input); !errors.Is(err, corpus.ErrAuthorSyntax) {
			t.Fatalf("ParseAuthorList(%q) expected ErrAuthorSyntax, got %v", input, err)
		}
	}
}
