package chainclock

import (
	"testing"
	"time"
)

func TestHeightAdvancesPerInterval(t *testing.T) {
	clock := New(0, 6000)
	base := time.Unix(0, 0).UTC()

	cases := []struct {
		elapsed time.Duration
		want    uint64
	}{
		{0, 0},
		{5 * time.Second, 0},
		{6 * time.Second, 1},
		{11 * time.Second, 1},
		{60 * time.Second, 10},
	}
	for _, tc := range cases {
		at := base.Add(tc.elapsed)
		clock.now = func() time.Time { return at }
		if got := clock.Now(); got != tc.want {
			t.Fatalf("height after %s: expected %d, got %d", tc.elapsed, tc.want, got)
		}
	}
}

func TestHeightBeforeGenesisIsZero(t *testing.T) {
	clock := New(1000, 6000)
	clock.now = func() time.Time { return time.Unix(500, 0).UTC() }
	if got := clock.Now(); got != 0 {
		t.Fatalf("expected height 0 before genesis, got %d", got)
	}
}
