package compositor

import (
	"testing"

	"github.com/gogpu/compositor/geom"
)

func TestEdgeValueResolve(t *testing.T) {
	tests := []struct {
		name string
		v    EdgeValue
		base float32
		zoom float32
		want float32
	}{
		{"undefined", EdgeValue{}, 200, 2, 0},
		{"percent ignores zoom", EdgeValue{Kind: LengthPercent, Value: 25}, 200, 2, 50},
		{"fixed scales", EdgeValue{Kind: LengthFixed, Value: 10}, 200, 1.5, 15},
		{"calculated scales", EdgeValue{Kind: LengthCalculated, Value: 4}, 0, 2, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Resolve(tt.base, tt.zoom); got != tt.want {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tt.base, tt.zoom, got, tt.want)
			}
		})
	}
}

func TestEdgeValueString(t *testing.T) {
	tests := []struct {
		v    EdgeValue
		want string
	}{
		{EdgeValue{}, "undefined"},
		{EdgeValue{Kind: LengthPercent, Value: 12.5}, "12.5%"},
		{EdgeValue{Kind: LengthFixed, Value: 3}, "3px"},
		{EdgeValue{Kind: LengthCalculated, Value: 9}, "calc(9)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEdgeString(t *testing.T) {
	want := []string{"top", "right", "bottom", "left"}
	for i, e := range Edges {
		if got := e.String(); got != want[i] {
			t.Errorf("Edge(%d).String() = %q, want %q", i, got, want[i])
		}
	}
	if got := Edge(7).String(); got != "Edge(7)" {
		t.Errorf("Edge(7).String() = %q, want %q", got, "Edge(7)")
	}
}

func TestLengthKindString(t *testing.T) {
	if got := LengthCalculated.String(); got != "calculated" {
		t.Errorf("LengthCalculated.String() = %q", got)
	}
	if got := LengthKind(99).String(); got != "LengthKind(99)" {
		t.Errorf("LengthKind(99).String() = %q", got)
	}
}

func TestContentFlagsHas(t *testing.T) {
	f := DrawsContent | MasksToBounds
	if !f.Has(DrawsContent) {
		t.Error("Has(DrawsContent) = false, want true")
	}
	if !f.Has(DrawsContent | MasksToBounds) {
		t.Error("Has(DrawsContent|MasksToBounds) = false, want true")
	}
	if f.Has(DrawsContent | ContentsOpaque) {
		t.Error("Has(DrawsContent|ContentsOpaque) = true, want false")
	}
}

func TestAllocReasonString(t *testing.T) {
	if got := AllocLayer.String(); got != "layer" {
		t.Errorf("AllocLayer.String() = %q, want %q", got, "layer")
	}
}

func TestBackingStoreBytes(t *testing.T) {
	if got := backingStoreBytes(geom.IntSize{Width: 10, Height: 20}, 1); got != 800 {
		t.Errorf("backingStoreBytes(10x20, 1) = %d, want 800", got)
	}
	if got := backingStoreBytes(geom.IntSize{Width: 10, Height: 20}, 2.5); got != 2000 {
		t.Errorf("backingStoreBytes(10x20, 2.5) = %d, want 2000", got)
	}
}
