package registration

import (
	"fmt"
	"strconv"
	"strings"

	"churchfinder_backend/internals/constants"
	churchModel "churchfinder_backend/internals/features/churches/churches/model"
	"churchfinder_backend/internals/features/churches/registration/model"
)

// FormatClock converts a 24-hour "HH:MM" value into the display form used on
// church pages ("9:00 AM"). Unparseable input yields "".
func FormatClock(clock string) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ""
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, parts[1], ampm)
}

// BuildServiceTimes turns the wizard's schedule rows into the display
// schedule stored on the church. Rows missing a day or start time are
// dropped. A row without a description gets a derived one, with the repeat
// frequency noted when it differs from the weekly default.
func BuildServiceTimes(entries []model.ScheduleEntry) []churchModel.ServiceTime {
	out := make([]churchModel.ServiceTime, 0, len(entries))
	for _, e := range entries {
		if e.Day == "" || e.StartTime == "" {
			continue
		}
		timeStr := FormatClock(e.StartTime)
		if e.EndTime != "" {
			if end := FormatClock(e.EndTime); end != "" {
				timeStr = timeStr + " - " + end
			}
		}
		desc := e.Description
		if desc == "" {
			desc = e.Day + " Service"
			if e.Repeat != "" && e.Repeat != constants.DefaultRepeat {
				desc += " (" + e.Repeat + ")"
			}
		}
		out = append(out, churchModel.ServiceTime{
			Day:         e.Day,
			Time:        timeStr,
			Description: desc,
		})
	}
	return out
}
