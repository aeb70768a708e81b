// Package ocr turns a photographed paper chart into candidate log rows. The
// text extraction itself is an untrusted external step; everything it emits
// is degraded, never trusted, before it reaches the day log.
package ocr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
	"github.com/Lappanawat/flowmind-ranocturia/internal/timeslot"
)

// rowPattern matches one transcribed chart line:
// free-text activity, HH:MM, intake, output, Y/N.
var rowPattern = regexp.MustCompile(`^(.*?)(\d{2}:\d{2})\s+(\d+)\s+(\d+)\s+([YN])\s*$`)

// ParseRows converts extracted text into a day log, one entry per line.
// Lines that do not match the expected shape become placeholder rows rather
// than being dropped: downstream consumers rely on row-count parity with the
// source image. Times off the 15-minute grid are kept as raw minutes;
// unparseable times degrade to unset.
func ParseRows(text string) models.DayLog {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	log := make(models.DayLog, 0, len(lines))

	for _, line := range lines {
		m := rowPattern.FindStringSubmatch(line)
		if m == nil {
			log = append(log, placeholderRow())
			continue
		}

		t, err := timeslot.ToMinutes(m[2])
		if err != nil {
			// Looked like a clock time but is not one, e.g. "26:40".
			t = timeslot.Unset
		}
		intake, _ := strconv.Atoi(m[3])
		output, _ := strconv.Atoi(m[4])

		log = append(log, models.VoidEntry{
			Activity: models.ClassifyActivity(strings.TrimSpace(m[1])),
			Time:     t,
			IntakeML: intake,
			OutputML: output,
			Leak:     models.ParseLeak(m[5]),
		})
	}

	return log
}

func placeholderRow() models.VoidEntry {
	return models.VoidEntry{
		Activity: models.ActivityUnknown,
		Time:     timeslot.Unset,
		Leak:     models.LeakUnknown,
	}
}
