package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	if s := c.String(); strings.ContainsRune(s, '⠁') {
		t.Error("fresh canvas should be empty")
	}

	c.Set(0, 0)
	if s := c.String(); !strings.ContainsRune(s, '⠁') {
		t.Errorf("expected top-left dot set, got %q", s)
	}

	c.Clear()
	if s := c.String(); strings.ContainsRune(s, '⠁') {
		t.Error("clear did not reset the canvas")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	before := c.String()

	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 0)
	c.Set(0, 100)

	if c.String() != before {
		t.Error("out-of-range set modified the canvas")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillCircle(10, 20, 3)

	lit := 0
	for _, r := range c.String() {
		if r > 0x2800 && r <= 0x28FF {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected filled circle to light cells")
	}
}
