package metrics

import (
	"sort"

	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
	"github.com/Lappanawat/flowmind-ranocturia/internal/timeslot"
)

// NBCIBand is the severity reading of the nocturnal bladder capacity index.
type NBCIBand int

const (
	BandNoAbnormality NBCIBand = iota
	BandNocturiaSuspected
	BandDiminishedCapacity
	BandSevereNocturia
)

// ClassifyNBCI bands the index top-down, first match wins. The bands
// partition the whole real line, so every value lands in exactly one.
func ClassifyNBCI(nbci float64) NBCIBand {
	switch {
	case nbci > 2:
		return BandSevereNocturia
	case nbci > 1.3:
		return BandDiminishedCapacity
	case nbci > 0:
		return BandNocturiaSuspected
	default:
		return BandNoAbnormality
	}
}

func (b NBCIBand) String() string {
	switch b {
	case BandSevereNocturia:
		return "severe nocturia"
	case BandDiminishedCapacity:
		return "diminished nocturnal bladder capacity"
	case BandNocturiaSuspected:
		return "nocturia suspected"
	default:
		return "no abnormality"
	}
}

// IntakeNearBedtime reports whether any fluid intake falls within the four
// hours before bedtime. The window may wrap midnight when bedtime is early
// morning. Entries without a usable time are skipped, never counted as hits.
func IntakeNearBedtime(log models.DayLog, bedTime int) bool {
	cutoff := timeslot.AddWrapping(bedTime, -preBedWindowMinutes)
	for _, e := range log {
		if e.IntakeML <= 0 || !e.HasTime() {
			continue
		}
		if cutoff < bedTime {
			if e.Time >= cutoff && e.Time < bedTime {
				return true
			}
		} else {
			// Window wraps midnight: [cutoff, 24:00) ∪ [00:00, bedTime).
			if e.Time >= cutoff || e.Time < bedTime {
				return true
			}
		}
	}
	return false
}

// HasLongVoidInterval reports whether any gap between successive voids
// exceeds six hours. The entry times are treated as a circular day: the last
// void's interval wraps back around to the first. Fewer than two usable
// times means no interval exists and the answer is false.
func HasLongVoidInterval(log models.DayLog) bool {
	times := make([]int, 0, len(log))
	for _, e := range log {
		if e.HasTime() {
			times = append(times, e.Time)
		}
	}
	if len(times) < 2 {
		return false
	}
	sort.Ints(times)

	for i, t := range times {
		var gap int
		if i == len(times)-1 {
			gap = times[0] + timeslot.MinutesPerDay - t
		} else {
			gap = times[i+1] - t
		}
		if gap > longIntervalMinutes {
			return true
		}
	}
	return false
}
