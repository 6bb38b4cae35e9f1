package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		back := pt * PtToMm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		wantPx  float64
		unit    Unit
		wantErr bool
	}{
		{"40", 40, UnitNone, false},
		{"40px", 40, UnitPX, false},
		{" 30PT ", 40, UnitPT, false},
		{"25.4mm", 96, UnitMM, false},
		{"0.5in", 48, UnitIN, false},
		{"", 0, UnitNone, true},
		{"abc", 0, UnitNone, true},
		{"-3px", 0, UnitNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLength(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Unit != tt.unit {
				t.Errorf("unit = %v, want %v", got.Unit, tt.unit)
			}
			if diff := math.Abs(got.ToPx() - tt.wantPx); diff > 1e-9 {
				t.Errorf("ToPx() = %g, want %g", got.ToPx(), tt.wantPx)
			}
		})
	}
}

func TestLengthString(t *testing.T) {
	if got := (Length{Value: 12.5, Unit: UnitPT}).String(); got != "12.5pt" {
		t.Fatalf("String() = %q", got)
	}
	if got := (Length{Value: 40}).String(); got != "40" {
		t.Fatalf("String() = %q", got)
	}
}
