package control

import "testing"

func TestLevelEndpoints(t *testing.T) {
	if got := Level(0); got != 0 {
		t.Errorf("Level(0) = %d, want 0", got)
	}
	if got := Level(100); got != 255 {
		t.Errorf("Level(100) = %d, want 255", got)
	}
}

func TestLevelRounding(t *testing.T) {
	cases := []struct {
		percent uint8
		want    uint8
	}{
		{10, 26},  // 25.5 rounds up
		{20, 51},  // 51.0 exact
		{30, 77},  // 76.5 rounds up
		{40, 102}, // 102.0 exact
		{50, 128}, // 127.5 rounds up
		{60, 153},
		{70, 179},
		{80, 204},
		{90, 230},
	}
	for _, c := range cases {
		if got := Level(c.percent); got != c.want {
			t.Errorf("Level(%d) = %d, want %d", c.percent, got, c.want)
		}
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := Level(0)
	for p := uint8(10); p <= 100; p += 10 {
		cur := Level(p)
		if cur <= prev {
			t.Errorf("Level(%d) = %d not above Level(%d) = %d", p, cur, p-10, prev)
		}
		prev = cur
	}
}

func TestLevelClampsAbove100(t *testing.T) {
	if got := Level(250); got != 255 {
		t.Errorf("Level(250) = %d, want 255", got)
	}
}
