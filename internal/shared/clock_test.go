package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompareDatesIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, 6, 15, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 6, 15, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 0, CompareDates(a, b))
}

func TestCompareDatesUsesEachLocation(t *testing.T) {
	// 2026-06-16 02:00 UTC is still 2026-06-15 at UTC-5.
	west := time.FixedZone("UTC-5", -5*60*60)
	a := time.Date(2026, 6, 16, 2, 0, 0, 0, time.UTC).In(west)
	b := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, CompareDates(a, b))
}

func TestCompareDatesOrdering(t *testing.T) {
	early := time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC)
	late := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, -1, CompareDates(early, late))
	assert.Equal(t, 1, CompareDates(late, early))
}
