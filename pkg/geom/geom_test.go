package geom

import (
	"math"
	"testing"

	"github.com/drawforge/drawforge/pkg/config"
)

func TestOverlapAreaDisjoint(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(20, 20, 30, 30)
	if got := OverlapArea(a, b); got != 0 {
		t.Fatalf("expected 0 overlap, got %v", got)
	}
}

func TestOverlapAreaPartial(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(5, 5, 15, 15)
	if got := OverlapArea(a, b); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
}

func TestIoU(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	b := NewBox(0, 0, 10, 10)
	if got := IoU(a, b); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("identical boxes should have IoU 1.0, got %v", got)
	}
}

func TestExceedsBy(t *testing.T) {
	cell := NewBox(0, 0, 100, 100)
	bb := NewBox(-5, 0, 100, 100)
	left, right, top, bottom, max := ExceedsBy(cell, bb)
	if left != 5 || right != 0 || top != 0 || bottom != 0 || max != 5 {
		t.Fatalf("unexpected exceeds: %v %v %v %v %v", left, right, top, bottom, max)
	}
}

func TestExtractFloats(t *testing.T) {
	got := ExtractFloats("M 1.5,-2.25 L 10 20.0")
	want := []float64{1.5, -2.25, 10, 20.0}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestRoundFloatsInString(t *testing.T) {
	got := RoundFloatsInString("M 1.23456,2 L 3.000001 4", 2)
	want := "M 1.23,2 L 3.00 4"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCountLongFloats(t *testing.T) {
	if got := CountLongFloats("1.2345 5 6.1 7.00001", 4); got != 2 {
		t.Fatalf("expected 2 long floats, got %d", got)
	}
}

func TestEscapeXML(t *testing.T) {
	got := EscapeXML(`<a & "b">`)
	want := "&lt;a &amp; &quot;b&quot;&gt;"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestClassifyByPosition(t *testing.T) {
	c, _ := CellCenter(config.ViewFront)
	if got := ClassifyByPosition(c.X, c.Y); got != config.ViewFront {
		t.Fatalf("expected front, got %v", got)
	}
	if got := ClassifyByPosition(-1000, -1000); got != "" {
		t.Fatalf("expected empty view outside page, got %v", got)
	}
}
