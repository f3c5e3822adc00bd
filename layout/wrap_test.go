package layout

import (
	"strings"
	"testing"
)

func testCanvas() *Canvas {
	return NewCanvas(595.28, 841.89, Margins{Top: 72, Right: 54, Bottom: 72, Left: 54}, nil)
}

var wrapFont = Font{Family: "Helvetica", Size: 10}

func TestWrapRoundTrip(t *testing.T) {
	c := testCanvas()

	inputs := []string{
		"one",
		"a short line that fits",
		"The Federation of European Associations bills its members once per calendar year for the annual membership period",
		"Avenue des Arts 46 Box 12 1000 Brussels Belgium",
	}
	for _, in := range inputs {
		lines := c.Wrap(in, 180, wrapFont)
		joined := strings.Join(lines, " ")
		if joined != in {
			t.Errorf("Wrap(%q) lost content: got %q", in, joined)
		}
		for _, line := range lines {
			if c.TextWidth(wrapFont, line) > 180 && strings.Contains(line, " ") {
				t.Errorf("line %q exceeds max width and is splittable", line)
			}
		}
	}
}

func TestWrapGreedy(t *testing.T) {
	c := testCanvas()

	// Wide enough for two of these words per line, not three.
	w := c.TextWidth(wrapFont, "alpha bravo")
	lines := c.Wrap("alpha bravo alpha bravo alpha", w+1, wrapFont)
	want := []string{"alpha bravo", "alpha bravo", "alpha"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %v", len(lines), lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapOverlongWordStandsAlone(t *testing.T) {
	c := testCanvas()

	long := strings.Repeat("x", 80)
	lines := c.Wrap("start "+long+" end", 60, wrapFont)
	if len(lines) != 3 {
		t.Fatalf("got %d lines %v, want 3", len(lines), lines)
	}
	if lines[1] != long {
		t.Errorf("overlong word not alone on its line: %q", lines[1])
	}
}

func TestWrapEmpty(t *testing.T) {
	c := testCanvas()
	if lines := c.Wrap("", 100, wrapFont); lines != nil {
		t.Errorf("Wrap(\"\") = %v, want nil", lines)
	}
	if lines := c.Wrap("   ", 100, wrapFont); lines != nil {
		t.Errorf("Wrap(blank) = %v, want nil", lines)
	}
}
