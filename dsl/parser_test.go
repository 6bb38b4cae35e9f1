package dsl_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/pagecast/dsl"
)

const sampleDSL = `
// 默认配置
profiles v1 {
  profile base {
    font: goregular
    size: M; orientation: square
    align: left
    color: #000000
    background: #fff
    typography: on
  }

  # 暖色主题
  profile warm extends base { color: #4d5d53ff; size: 48px }

  /* 自定义字体 */
  profile custom extends warm
  {
    font: "fonts/My Font.ttf"
    size: 10.5pt
  }
}
`

type setting struct{ Key, Value string }

func settings(p *dsl.Profile) []setting {
	var out []setting
	for _, s := range p.Block.Settings {
		out = append(out, setting{s.Key, s.Value.Text()})
	}
	return out
}

func TestParseFile(t *testing.T) {
	file, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if file.Version != "v1" {
		t.Fatalf("expected version v1, got %s", file.Version)
	}
	if len(file.Profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(file.Profiles))
	}

	base := file.Profiles[0]
	if base.Name != "base" || base.Extends != "" {
		t.Fatalf("unexpected base header: %+v", base)
	}
	wantBase := []setting{
		{"font", "goregular"},
		{"size", "M"},
		{"orientation", "square"},
		{"align", "left"},
		{"color", "#000000"},
		{"background", "#fff"},
		{"typography", "on"},
	}
	if diff := cmp.Diff(wantBase, settings(base)); diff != "" {
		t.Errorf("base settings mismatch (-want +got):\n%s", diff)
	}

	warm := file.Profiles[1]
	if warm.Extends != "base" {
		t.Fatalf("expected warm to extend base, got %q", warm.Extends)
	}
	if diff := cmp.Diff([]setting{{"color", "#4d5d53ff"}, {"size", "48px"}}, settings(warm)); diff != "" {
		t.Errorf("warm settings mismatch (-want +got):\n%s", diff)
	}
	if warm.Block.Settings[0].Value.Color == nil {
		t.Error("expected color token for #4d5d53ff")
	}

	custom := file.Profiles[2]
	if diff := cmp.Diff([]setting{{"font", "fonts/My Font.ttf"}, {"size", "10.5pt"}}, settings(custom)); diff != "" {
		t.Errorf("custom settings mismatch (-want +got):\n%s", diff)
	}
	if custom.Block.Settings[0].Value.String == nil {
		t.Error("expected string value for font path")
	}
	if line := custom.Block.Settings[1].Pos.Line; line != 20 {
		t.Errorf("expected size setting on line 20, got %d", line)
	}
}

func TestParseEmptyProfiles(t *testing.T) {
	file, err := dsl.Parse(strings.NewReader("profiles v1 {}"))
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Profiles) != 0 {
		t.Fatalf("expected no profiles, got %d", len(file.Profiles))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing header", "profile a { size: M }"},
		{"unclosed block", "profiles v1 { profile a { size: M }"},
		{"missing colon", "profiles v1 { profile a { size M } }"},
		{"missing value", "profiles v1 { profile a { size: } }"},
		{"bad string", `profiles v1 { profile a { font: "oops } }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := dsl.ParseNamed("test.profiles", strings.NewReader(tt.input)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
