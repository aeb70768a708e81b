// Package timeslot converts between the chart's 24-hour clock labels and an
// integer minutes-since-midnight encoding, and provides the wrapping interval
// arithmetic the bedtime-window checks need.
package timeslot

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is the modulus for all wrapping clock arithmetic.
	MinutesPerDay = 1440

	// SlotInterval is the granularity of the chart's time column.
	SlotInterval = 15

	// SlotCount is the number of selectable time values in one day.
	SlotCount = MinutesPerDay / SlotInterval

	// Unset marks an entry with no usable time. OCR rows that fail time
	// parsing carry this value and are skipped by interval analysis.
	Unset = -1
)

// FormatError reports a clock string that is not a valid "HH:MM" value.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid clock time %q, expected HH:MM", e.Input)
}

// Slots returns the 96 canonical "HH:MM" labels the time column accepts,
// starting at "00:00" in 15-minute steps.
func Slots() []string {
	slots := make([]string, 0, SlotCount)
	for m := 0; m < MinutesPerDay; m += SlotInterval {
		slots = append(slots, FromMinutes(m))
	}
	return slots
}

// ToMinutes parses an "HH:MM" string into minutes since midnight. It returns
// a *FormatError unless the input is exactly two colon-separated integers
// with the hour in [0,23] and the minute in [0,59].
func ToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &FormatError{Input: s}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &FormatError{Input: s}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &FormatError{Input: s}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, &FormatError{Input: s}
	}
	return hour*60 + minute, nil
}

// FromMinutes formats minutes since midnight as "HH:MM".
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// OnGrid reports whether a minute value lands on one of the 96 slots.
func OnGrid(m int) bool {
	return m >= 0 && m < MinutesPerDay && m%SlotInterval == 0
}

// AddWrapping returns (base+delta) mod MinutesPerDay, always non-negative,
// so subtracting across midnight stays on the clock.
func AddWrapping(base, delta int) int {
	m := (base + delta) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}
