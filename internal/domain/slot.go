package domain

import "time"

// SlotDuration is the length of one booking slot.
const SlotDuration = time.Hour

// SlotOf returns the start of the hour containing t, in t's location.
// It is idempotent: SlotOf(SlotOf(t)) == SlotOf(t).
func SlotOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// IsFutureSlot reports whether slot starts strictly after now.
func IsFutureSlot(slot, now time.Time) bool {
	return slot.After(now)
}

// DayBounds returns the half-open range [start, next) of the calendar day
// containing day, evaluated in loc. next is the start of the following day.
func DayBounds(day time.Time, loc *time.Location) (start, next time.Time) {
	d := day.In(loc)
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
