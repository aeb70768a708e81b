package metrics

import (
	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
)

// SumIntake totals the fluid intake across all entries.
func SumIntake(log models.DayLog) int {
	sum := 0
	for _, e := range log {
		sum += e.IntakeML
	}
	return sum
}

// SumOutput totals the voided volume across all entries.
func SumOutput(log models.DayLog) int {
	sum := 0
	for _, e := range log {
		sum += e.OutputML
	}
	return sum
}

// NocturnalOutput sums the voided volume of nighttime entries. The first
// morning void counts toward nocturnal volume — that urine was produced
// overnight — even though it does not count as a nighttime void.
func NocturnalOutput(log models.DayLog) int {
	sum := 0
	for _, e := range log {
		if e.Activity == models.NighttimeVoid || e.Activity == models.FirstMorningVoid {
			sum += e.OutputML
		}
	}
	return sum
}

// MaxVoidedVolume is the largest single void of the day, 0 for an empty log.
func MaxVoidedVolume(log models.DayLog) int {
	max := 0
	for _, e := range log {
		if e.OutputML > max {
			max = e.OutputML
		}
	}
	return max
}

// CountNightVoids counts entries classified as nighttime voids. Unlike
// NocturnalOutput this excludes the first morning void.
func CountNightVoids(log models.DayLog) int {
	count := 0
	for _, e := range log {
		if e.Activity == models.NighttimeVoid {
			count++
		}
	}
	return count
}

// CountLeaks counts entries with a confirmed leak.
func CountLeaks(log models.DayLog) int {
	count := 0
	for _, e := range log {
		if e.Leak == models.LeakYes {
			count++
		}
	}
	return count
}
