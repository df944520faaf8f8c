package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchfinder_backend/internals/features/churches/registration/model"
)

func TestFormatClock(t *testing.T) {
	cases := map[string]string{
		"09:00": "9:00 AM",
		"9:00":  "9:00 AM",
		"13:30": "1:30 PM",
		"12:00": "12:00 PM",
		"00:15": "12:15 AM",
		"":      "",
		"nope":  "",
		"25:00": "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatClock(in), "input %q", in)
	}
}

func TestBuildServiceTimesDropsIncompleteRows(t *testing.T) {
	entries := []model.ScheduleEntry{
		{Day: "Sunday", StartTime: "09:00", EndTime: "11:00"},
		{Day: "", StartTime: "09:00"},
		{Day: "Monday", StartTime: ""},
	}
	got := BuildServiceTimes(entries)
	require.Len(t, got, 1)
	assert.Equal(t, "Sunday", got[0].Day)
	assert.Equal(t, "9:00 AM - 11:00 AM", got[0].Time)
}

func TestBuildServiceTimesDerivedDescription(t *testing.T) {
	got := BuildServiceTimes([]model.ScheduleEntry{
		{Day: "Sunday", StartTime: "09:00", Repeat: "Every Week"},
		{Day: "Saturday", StartTime: "06:00", Repeat: "Monthly"},
		{Day: "Friday", StartTime: "18:00", Description: "Evening prayer", Repeat: "Monthly"},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "Sunday Service", got[0].Description, "weekly default gets no annotation")
	assert.Equal(t, "Saturday Service (Monthly)", got[1].Description)
	assert.Equal(t, "Evening prayer", got[2].Description, "supplied description wins")
}

func TestBuildServiceTimesStartOnly(t *testing.T) {
	got := BuildServiceTimes([]model.ScheduleEntry{{Day: "Sunday", StartTime: "07:30"}})
	require.Len(t, got, 1)
	assert.Equal(t, "7:30 AM", got[0].Time)
}
