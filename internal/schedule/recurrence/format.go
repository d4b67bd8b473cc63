package recurrence

import (
	"fmt"

	"github.com/smartspend/SmartSpend/internal/schedule/domain"
)

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Describe renders a schedule for humans: "Daily", "Every 2 weeks on Friday",
// "Monthly on day 15", "Every 2 years".
func Describe(schedule domain.Schedule) string {
	switch schedule.Frequency {
	case domain.FrequencyDaily:
		if schedule.Interval == 1 {
			return "Daily"
		}
		return fmt.Sprintf("Every %d days", schedule.Interval)

	case domain.FrequencyWeekly:
		day := ""
		if schedule.DayOfWeek != nil && *schedule.DayOfWeek >= 0 && *schedule.DayOfWeek <= 6 {
			day = " on " + dayNames[*schedule.DayOfWeek]
		}
		if schedule.Interval == 1 {
			return "Weekly" + day
		}
		return fmt.Sprintf("Every %d weeks%s", schedule.Interval, day)

	case domain.FrequencyMonthly:
		day := 1
		if schedule.DayOfMonth != nil {
			day = *schedule.DayOfMonth
		}
		if schedule.Interval == 1 {
			return fmt.Sprintf("Monthly on day %d", day)
		}
		return fmt.Sprintf("Every %d months on day %d", schedule.Interval, day)

	case domain.FrequencyYearly:
		if schedule.Interval == 1 {
			return "Yearly"
		}
		return fmt.Sprintf("Every %d years", schedule.Interval)
	}
	return "Scheduled"
}
