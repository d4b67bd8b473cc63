// Package rrule converts transaction schedules to RFC 5545 RRULE strings so
// templates can be exported to external calendars.
package rrule

import (
	"fmt"
	"strings"
	"time"

	"github.com/smartspend/SmartSpend/internal/schedule/domain"
	"github.com/teambition/rrule-go"
)

var frequencyMap = map[domain.Frequency]rrule.Frequency{
	domain.FrequencyDaily:   rrule.DAILY,
	domain.FrequencyWeekly:  rrule.WEEKLY,
	domain.FrequencyMonthly: rrule.MONTHLY,
	domain.FrequencyYearly:  rrule.YEARLY,
}

var freqNames = map[rrule.Frequency]string{
	rrule.DAILY:   "DAILY",
	rrule.WEEKLY:  "WEEKLY",
	rrule.MONTHLY: "MONTHLY",
	rrule.YEARLY:  "YEARLY",
}

// Sunday=0 in schedules, per RFC 5545 weekday codes.
var weekdayCodes = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

var weekdayMap = [...]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// FromSchedule renders the schedule as an RRULE string. The rule is built
// through rrule-go first so invalid combinations are rejected the same way a
// calendar client would reject them.
func FromSchedule(schedule domain.Schedule) (string, error) {
	freq, ok := frequencyMap[schedule.Frequency]
	if !ok {
		return "", fmt.Errorf("cannot export frequency %q", schedule.Frequency)
	}
	dtstart, err := time.Parse(domain.DateLayout, schedule.StartDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", schedule.StartDate, err)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: schedule.Interval,
		Dtstart:  dtstart,
	}
	if schedule.Frequency == domain.FrequencyWeekly && schedule.DayOfWeek != nil {
		opt.Byweekday = []rrule.Weekday{weekdayMap[*schedule.DayOfWeek]}
	}
	if schedule.Frequency == domain.FrequencyMonthly && schedule.DayOfMonth != nil {
		opt.Bymonthday = []int{*schedule.DayOfMonth}
	}
	var until time.Time
	if schedule.EndDate != "" {
		until, err = time.Parse(domain.DateLayout, schedule.EndDate)
		if err != nil {
			return "", fmt.Errorf("invalid end date %q: %w", schedule.EndDate, err)
		}
		opt.Until = until
	}
	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("invalid recurrence rule: %w", err)
	}

	parts := []string{"FREQ=" + freqNames[freq]}
	if schedule.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", schedule.Interval))
	}
	if len(opt.Byweekday) > 0 {
		parts = append(parts, "BYDAY="+weekdayCodes[*schedule.DayOfWeek])
	}
	if len(opt.Bymonthday) > 0 {
		parts = append(parts, fmt.Sprintf("BYMONTHDAY=%d", *schedule.DayOfMonth))
	}
	if schedule.EndDate != "" {
		parts = append(parts, "UNTIL="+until.UTC().Format("20060102T150405Z"))
	}
	return strings.Join(parts, ";"), nil
}
