package typo

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNormalizeRussian(t *testing.T) {
	n := New(language.Russian)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"quotes dash ellipsis", `Он сказал: "Привет" - и ушёл...`, "Он\u00a0сказал: «Привет»\u00a0— и\u00a0ушёл…"},
		{"double hyphen dash", "туда -- сюда", "туда\u00a0— сюда"},
		{"dialogue", "- Кто там?", "—\u00a0Кто там?"},
		{"consecutive short words", "он и я в доме", "он\u00a0и\u00a0я\u00a0в\u00a0доме"},
		{"thousands", "стоит 1000000 рублей", "стоит 1\u202f000\u202f000 рублей"},
		{"five digits", "12345", "12\u202f345"},
		{"four digits untouched", "1234", "1234"},
		{"decimal", "12345,75 и 3.14159", "12\u202f345,75 и\u00a03.14159"},
		{"numero", "дом № 5", "дом №\u00a05"},
		{"signs", "(c) 2024 Acme(TM) (R)", "\u00a9 2024 Acme\u2122 \u00ae"},
		{"collapse spaces", "слово    слово", "слово слово"},
		{"multiline quotes", "\"раз\"\n\"два\"", "«раз»\n«два»"},
		{"crlf kept", "первое\r\nвторое", "первое\r\nвторое"},
		{"nfc", "e\u0301", "\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q)\n got %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEnglish(t *testing.T) {
	n := New(language.English)
	tests := []struct {
		in   string
		want string
	}{
		{`He said "hi" - then left...`, "He said \u201chi\u201d \u2014 then left\u2026"},
		{"a cat is on it", "a cat is on it"},
		{"100000 people", "100\u202f000 people"},
		{"-- Who?", "\u2014 Who?"},
	}
	for _, tt := range tests {
		if got := n.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q)\n got %q\nwant %q", tt.in, got, tt.want)
		}
	}
}

func TestForLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.Russian},
		{"ru", language.Russian},
		{"ru-RU", language.Russian},
		{"en", language.English},
		{"en-GB", language.English},
		{"de", language.Russian},
		{"fr-CA", language.Russian},
		{"zh", language.Russian},
		{"en-US", language.English},
	}
	for _, tt := range tests {
		n, err := ForLanguage(tt.in)
		if err != nil {
			t.Fatalf("ForLanguage(%q) error: %v", tt.in, err)
		}
		if n.Language() != tt.want {
			t.Errorf("ForLanguage(%q) = %v, want %v", tt.in, n.Language(), tt.want)
		}
	}
	if _, err := ForLanguage("not a tag!!"); err == nil {
		t.Error("expected parse error")
	}
}

func TestNewUnmatchedUsesRussianRules(t *testing.T) {
	for _, tag := range []language.Tag{language.German, language.French, language.Ukrainian} {
		n := New(tag)
		if got, want := n.Normalize(`"x"`), "«x»"; got != want {
			t.Errorf("New(%v).Normalize = %q, want %q", tag, got, want)
		}
	}
}
