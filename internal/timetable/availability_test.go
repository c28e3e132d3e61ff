package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	iv, err := ParseWindow("08:00-12:00")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 8 * 60, End: 12 * 60}, iv)

	for _, bad := range []string{"08:00", "12:00-08:00", "08:00-08:00", "a-b", ""} {
		_, err := ParseWindow(bad)
		assert.Error(t, err, bad)
	}
}

func TestAvailabilityAllows(t *testing.T) {
	slot := Interval{Start: 8 * 60, End: 10 * 60}

	t.Run("no declaration allows everything", func(t *testing.T) {
		assert.True(t, Availability{}.Allows("LUN", slot))
		assert.True(t, Availability{}.Allows("DOM", slot))
	})

	t.Run("closed declaration allows nothing", func(t *testing.T) {
		assert.False(t, Availability{Closed: true}.Allows("LUN", slot))
	})

	t.Run("declared windows gate by day", func(t *testing.T) {
		a := Availability{Windows: map[string][]Interval{
			"LUN": {{Start: 8 * 60, End: 12 * 60}},
		}}
		assert.True(t, a.Allows("LUN", slot))
		assert.False(t, a.Allows("MAR", slot))
	})

	t.Run("slot must fit entirely inside one window", func(t *testing.T) {
		a := Availability{Windows: map[string][]Interval{
			"LUN": {{Start: 8 * 60, End: 9 * 60}, {Start: 9 * 60, End: 10 * 60}},
		}}
		// Two adjacent windows do not merge.
		assert.False(t, a.Allows("LUN", slot))
		assert.True(t, a.Allows("LUN", Interval{Start: 8 * 60, End: 9 * 60}))
	})
}
