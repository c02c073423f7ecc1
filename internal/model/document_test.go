package model

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowISO(t *testing.T) {
	s := NowISO()

	parsed, err := time.Parse(TimeLayout, s)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, 5*time.Second)
	// UTC timestamps carry the Z suffix, never a numeric offset.
	assert.Equal(t, byte('Z'), s[len(s)-1])
}

func TestTimeLayoutSortsLexicographically(t *testing.T) {
	// The list ordering sorts the stored strings; the fixed-width layout must
	// make string order agree with time order.
	times := []time.Time{
		time.Date(2026, 1, 2, 9, 0, 0, 5e6, time.UTC),
		time.Date(2026, 1, 2, 9, 0, 0, 50e6, time.UTC),
		time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 11, 30, 23, 59, 59, 999e6, time.UTC),
	}

	formatted := make([]string, len(times))
	for i, ts := range times {
		formatted[i] = ts.Format(TimeLayout)
	}

	assert.True(t, sort.StringsAreSorted(formatted))
}
