package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBack(t *testing.T) {
	if got := Location("Not/AZone"); got == nil {
		t.Fatal("nil location")
	}
	if IsValid("") {
		t.Error("empty zone reported valid")
	}
	if !IsValid("UTC") {
		t.Error("UTC reported invalid")
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 6, 17, 9, 0, 0, 0, time.UTC)
	c := FixedClock(at)

	if !c.Now().Equal(at) {
		t.Fatalf("Now = %v, want %v", c.Now(), at)
	}
	if c.Location() != time.UTC {
		t.Fatalf("Location = %v", c.Location())
	}

	var zero Clock
	if zero.Location() != time.UTC {
		t.Fatalf("zero clock location = %v", zero.Location())
	}
}
