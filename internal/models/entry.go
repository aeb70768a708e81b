package models

import (
	"strings"

	"github.com/Lappanawat/flowmind-ranocturia/internal/timeslot"
)

// Activity is the canonical category of one frequency-volume-chart row.
type Activity int

const (
	ActivityUnknown Activity = iota
	FirstMorningVoid
	DaytimeVoid
	BedtimeVoid
	NighttimeVoid
)

// classifierOrder fixes the matching order for ClassifyActivity. The first
// phrase found in the input wins, regardless of where it appears.
var classifierOrder = []struct {
	phrase   string
	activity Activity
}{
	{"first morning void", FirstMorningVoid},
	{"daytime void", DaytimeVoid},
	{"bedtime void", BedtimeVoid},
	{"nighttime void", NighttimeVoid},
}

// ClassifyActivity maps free-form or OCR-derived activity text to a canonical
// category. Matching is case-insensitive substring search, deliberately
// permissive because OCR output is noisy. It never fails; unmatched text is
// ActivityUnknown.
func ClassifyActivity(raw string) Activity {
	lowered := strings.ToLower(raw)
	for _, c := range classifierOrder {
		if strings.Contains(lowered, c.phrase) {
			return c.activity
		}
	}
	return ActivityUnknown
}

func (a Activity) String() string {
	switch a {
	case FirstMorningVoid:
		return "First Morning Void"
	case DaytimeVoid:
		return "Daytime Void"
	case BedtimeVoid:
		return "Bedtime Void"
	case NighttimeVoid:
		return "Nighttime Void"
	default:
		return "Unknown Activity"
	}
}

// Leak records whether urine leakage accompanied an entry. OCR rows that
// fail to parse carry LeakUnknown.
type Leak int

const (
	LeakUnknown Leak = iota
	LeakNo
	LeakYes
)

// ParseLeak interprets the chart's Y/N column. Anything other than a yes or
// no marker is LeakUnknown.
func ParseLeak(s string) Leak {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return LeakYes
	case "n", "no":
		return LeakNo
	default:
		return LeakUnknown
	}
}

func (l Leak) String() string {
	switch l {
	case LeakYes:
		return "Y"
	case LeakNo:
		return "N"
	default:
		return "None"
	}
}

// VoidEntry is one row of a day's log. Time is minutes since midnight, or
// timeslot.Unset when no valid time was recorded. Intake and output volumes
// are independently non-negative; a row may carry both.
type VoidEntry struct {
	Activity Activity
	Time     int
	IntakeML int
	OutputML int
	Leak     Leak
}

// HasTime reports whether the entry carries a usable time of day.
func (e VoidEntry) HasTime() bool {
	return e.Time != timeslot.Unset
}

// DayLog is the ordered sequence of entries recorded for one tracked day.
// Chronological order of the stored sequence is not guaranteed; consumers
// sort by time wherever order matters.
type DayLog []VoidEntry

// Clone returns an independent copy, so a template log can seed several days
// without aliasing.
func (d DayLog) Clone() DayLog {
	if d == nil {
		return nil
	}
	out := make(DayLog, len(d))
	copy(out, d)
	return out
}

// Patient-level defaults and bounds for the sidebar inputs.
const (
	DefaultBodyWeightKg = 70.0
	MinBodyWeightKg     = 25.0
	DefaultWakeTime     = 6 * 60  // 06:00
	DefaultBedTime      = 22 * 60 // 22:00
)

// PatientContext carries the per-day inputs external to the log. Age is
// shared across all tracked days; weight and wake/bed times are per day.
// Read-only to the metrics engine.
type PatientContext struct {
	Age          int
	BodyWeightKg float64
	WakeTime     int
	BedTime      int
}

// DefaultPatientContext returns the sidebar defaults for a fresh day.
func DefaultPatientContext() PatientContext {
	return PatientContext{
		BodyWeightKg: DefaultBodyWeightKg,
		WakeTime:     DefaultWakeTime,
		BedTime:      DefaultBedTime,
	}
}
