package domain

import (
	"strings"
	"testing"
	"time"
)

func TestClockStampParses(t *testing.T) {
	c := NewClock()

	stamp := c.Stamp()
	if _, err := time.Parse("2006-01-02 15:04:05", stamp); err != nil {
		t.Fatalf("stamp %q does not parse: %v", stamp, err)
	}
}

func TestClockStampLabeled(t *testing.T) {
	c := NewClock()

	labeled := c.StampLabeled()
	if !strings.HasSuffix(labeled, " ET") && !strings.HasSuffix(labeled, " UTC") {
		t.Fatalf("labeled stamp %q missing timezone label", labeled)
	}
}

func TestSeedStatesOrderedNoOverrides(t *testing.T) {
	seed := SeedStates()

	if len(seed) != 33 {
		t.Fatalf("expected 33 seed rows, got %d", len(seed))
	}
	for i := 1; i < len(seed); i++ {
		if seed[i-1].Door >= seed[i].Door {
			t.Fatalf("seed rows not ascending at index %d: %d then %d", i, seed[i-1].Door, seed[i].Door)
		}
	}
	for _, st := range seed {
		if st.Truck != "" {
			t.Fatalf("seed row for door %d carries an override: %q", st.Door, st.Truck)
		}
	}
}
