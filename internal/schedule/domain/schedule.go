package domain

import (
	"time"

	scheduleErrors "github.com/smartspend/SmartSpend/internal/schedule/errors"
)

// DateLayout is the wire format for all calendar dates. Dates never carry a
// time component, so lexicographic order equals chronological order.
const DateLayout = "2006-01-02"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func IsValidFrequency(frequency Frequency) bool {
	switch frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Schedule is the recurrence rule attached to a transaction template.
// StartDate is immutable once set; LastGenerated is the only field the
// engine itself advances.
type Schedule struct {
	Enabled   bool      `json:"enabled"`
	Frequency Frequency `json:"frequency"`
	Interval  int       `json:"interval"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate,omitempty"`
	// DayOfWeek anchors weekly rules, Sunday = 0. Ignored for other frequencies.
	DayOfWeek *int `json:"dayOfWeek,omitempty"`
	// DayOfMonth anchors monthly rules, clamped to the last day of short months.
	DayOfMonth    *int   `json:"dayOfMonth,omitempty"`
	LastGenerated string `json:"lastGenerated,omitempty"`
}

func (s *Schedule) Validate() error {
	if !IsValidFrequency(s.Frequency) {
		return scheduleErrors.ErrInvalidFrequency
	}
	if s.Interval < 1 {
		return scheduleErrors.ErrInvalidInterval
	}
	if _, err := time.Parse(DateLayout, s.StartDate); err != nil {
		return scheduleErrors.NewValidationError("Start date must be formatted as YYYY-MM-DD")
	}
	if s.EndDate != "" {
		if _, err := time.Parse(DateLayout, s.EndDate); err != nil {
			return scheduleErrors.NewValidationError("End date must be formatted as YYYY-MM-DD")
		}
		if s.EndDate < s.StartDate {
			return scheduleErrors.NewValidationError("End date must not precede start date")
		}
	}
	if s.DayOfWeek != nil && (*s.DayOfWeek < 0 || *s.DayOfWeek > 6) {
		return scheduleErrors.NewValidationError("Day of week must be between 0 (Sunday) and 6 (Saturday)")
	}
	if s.DayOfMonth != nil && (*s.DayOfMonth < 1 || *s.DayOfMonth > 31) {
		return scheduleErrors.NewValidationError("Day of month must be between 1 and 31")
	}
	return nil
}

// Expired reports whether the schedule can no longer produce occurrences on
// or after today. The end date itself is inclusive.
func (s *Schedule) Expired(today string) bool {
	return s.EndDate != "" && s.EndDate < today
}

// ResumeFrom is the point generation continues from: the last occurrence
// already materialized, or the anchor date when nothing was generated yet.
func (s *Schedule) ResumeFrom() string {
	if s.LastGenerated != "" {
		return s.LastGenerated
	}
	return s.StartDate
}

// Clone returns an independent copy so callers can advance LastGenerated
// without mutating the snapshot they were handed.
func (s *Schedule) Clone() *Schedule {
	clone := *s
	if s.DayOfWeek != nil {
		dow := *s.DayOfWeek
		clone.DayOfWeek = &dow
	}
	if s.DayOfMonth != nil {
		dom := *s.DayOfMonth
		clone.DayOfMonth = &dom
	}
	return &clone
}
