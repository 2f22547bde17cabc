package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekdays(t *testing.T) {
	set, err := ParseWeekdays([]string{"FRI", "sun", " Mon "})
	require.NoError(t, err)
	assert.True(t, set.Contains(time.Friday))
	assert.True(t, set.Contains(time.Sunday))
	assert.True(t, set.Contains(time.Monday))
	assert.False(t, set.Contains(time.Tuesday))

	_, err = ParseWeekdays([]string{"FRY"})
	assert.Error(t, err)

	set, err = ParseWeekdays(nil)
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
}

func TestWeekdaySetAllows(t *testing.T) {
	var empty WeekdaySet
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, empty.Allows(d), "empty set allows %s", d)
	}

	fridays := WeekdaySet(0).With(time.Friday)
	assert.True(t, fridays.Allows(time.Friday))
	assert.False(t, fridays.Allows(time.Saturday))
}

func TestWeekdaySetCodes(t *testing.T) {
	set := WeekdaySet(0).With(time.Saturday).With(time.Sunday).With(time.Wednesday)
	assert.Equal(t, []string{"SUN", "WED", "SAT"}, set.Codes())
	assert.Equal(t, "SUN,WED,SAT", set.String())
	assert.Equal(t, "any", WeekdaySet(0).String())
}

func TestWeekdaySetJSON(t *testing.T) {
	set := WeekdaySet(0).With(time.Friday).With(time.Monday)

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["MON","FRI"]`, string(data))

	var decoded WeekdaySet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, set, decoded)

	require.NoError(t, json.Unmarshal([]byte("null"), &decoded))
	assert.True(t, decoded.IsEmpty())

	assert.Error(t, json.Unmarshal([]byte(`["XYZ"]`), &decoded))
}
