package cases

import "time"

// Tier is the urgency classification of a case's deadline. It is derived on
// every read and used for presentation only.
type Tier string

// The near-term tier names reflect the canonical working-day policy. They
// double as display buckets for CalendarDayPolicy, which fills them by plain
// calendar-day counts (a Saturday two days out lands in TierTwoWorkingDays)
// and never emits TierDueToday.
const (
	TierNone             Tier = "NONE"
	TierOverdue          Tier = "OVERDUE"
	TierDueToday         Tier = "DUE_TODAY"
	TierNextWorkingDay   Tier = "NEXT_WORKING_DAY"
	TierTwoWorkingDays   Tier = "TWO_WORKING_DAYS"
	TierThreeWorkingDays Tier = "THREE_WORKING_DAYS"
)

// UrgencyPolicy maps an optional deadline and the viewer's current time to a
// tier. Implementations must be pure: the same (deadline, now) pair always
// yields the same tier.
type UrgencyPolicy interface {
	Classify(deadline *time.Time, now time.Time) Tier
}

// deadlineDate reads the calendar day from the stored value's UTC
// representation. The date portion is authoritative regardless of the
// timezone the value was stored in; using local components here would shift
// the day for viewers west of UTC.
func deadlineDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// localDate truncates now to the viewer's local calendar day.
func localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// workingDaysUntil counts weekdays from the day after today through the
// deadline date inclusive.
func workingDaysUntil(today, deadline time.Time) int {
	n := 0
	for d := today.AddDate(0, 0, 1); !d.After(deadline); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

// WorkingDayPolicy is the canonical classifier: overdue means strictly
// before today, due-today is its own tier, and the near-term tiers count
// working days (Monday through Friday, no holiday calendar).
type WorkingDayPolicy struct{}

func (WorkingDayPolicy) Classify(deadline *time.Time, now time.Time) Tier {
	if deadline == nil {
		return TierNone
	}
	due := deadlineDate(*deadline)
	today := localDate(now)

	switch {
	case due.Before(today):
		return TierOverdue
	case due.Equal(today):
		return TierDueToday
	}
	switch workingDaysUntil(today, due) {
	case 1:
		return TierNextWorkingDay
	case 2:
		return TierTwoWorkingDays
	case 3:
		return TierThreeWorkingDays
	}
	return TierNone
}

// CalendarDayPolicy is the earlier iteration of the classifier, kept
// selectable: overdue includes today, and the near-term tiers count plain
// calendar days.
type CalendarDayPolicy struct{}

func (CalendarDayPolicy) Classify(deadline *time.Time, now time.Time) Tier {
	if deadline == nil {
		return TierNone
	}
	due := deadlineDate(*deadline)
	today := localDate(now)

	if !due.After(today) {
		return TierOverdue
	}
	switch int(due.Sub(today).Hours() / 24) {
	case 1:
		return TierNextWorkingDay
	case 2:
		return TierTwoWorkingDays
	case 3:
		return TierThreeWorkingDays
	}
	return TierNone
}
