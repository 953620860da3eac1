package weather

import "time"

// UpcomingDays is the number of forecast days shown after today.
const UpcomingDays = 4

// DateLayout renders dates like "14 October 26".
const DateLayout = "02 January 06"

var weekdayLabels = [7]string{
	time.Sunday:    "Sun",
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thurs",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
}

var conditionIcons = map[string]string{
	"Clouds": "cloud",
	"Rain":   "cloud-rain",
	"Snow":   "cloud-snow",
}

// WeekdayLabel returns the short label of a weekday.
func WeekdayLabel(d time.Weekday) string {
	return weekdayLabels[int(d)%7]
}

// Icon maps an upstream condition label to an icon name. Only Clouds, Rain and
// Snow are known; anything else is ErrUnmappedCondition.
func Icon(condition string) (string, error) {
	icon, ok := conditionIcons[condition]
	if !ok {
		return "", &UnmappedConditionError{Condition: condition}
	}
	return icon, nil
}

// NextWeekdays returns the n weekdays following day, wrapping through the week.
func NextWeekdays(day time.Weekday, n int) []time.Weekday {
	out := make([]time.Weekday, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, time.Weekday((int(day)+i)%7))
	}
	return out
}
