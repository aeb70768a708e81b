// Package metrics is the diagnostic core: it aggregates one day's voiding
// log into summary volumes and computes the nocturia/polyuria indices and
// warning flags. Everything here is a pure function over the log and the
// patient inputs; there is no shared state and no error path — malformed
// data has already been degraded at the ingestion boundary.
package metrics

import (
	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
)

// Clinical thresholds for the frequency-volume-chart analysis.
const (
	// TotalUrineThresholdML is the 24-hour polyuria cutoff. The patient-facing
	// text describes it as 40 ml/kg, but the threshold is a fixed absolute
	// volume and is never weight-scaled. Kept literal pending clinical review.
	TotalUrineThresholdML = 40 * 1000

	npiMidlifeAgeMin     = 40
	npiMidlifeAgeMax     = 65
	npiMidlifePercent    = 20
	npiDefaultPercent    = 33
	diminishedCapacityML = 200

	// properOutputRate is the reference urine production rate, ml/kg/hr.
	properOutputRate = 0.5

	preBedWindowMinutes = 4 * 60
	longIntervalMinutes = 6 * 60
)

// Result is the immutable output bundle for one day. It is derived fresh
// from a (DayLog, PatientContext) pair and never mutated afterwards.
type Result struct {
	TotalIntakeML     int
	TotalOutputML     int
	NocturnalOutputML int
	MaxOutputML       int
	NightVoidCount    int
	LeakCount         int

	NPI  float64 // nocturnal polyuria index, percent
	NI   float64 // nocturia index
	PNV  float64 // predicted nocturnal voids
	NBCI float64 // nocturnal bladder capacity index

	NBCIBand NBCIBand

	TotalUrineFlag          bool // 24-hour polyuria
	NocturnalPolyuriaFlag   bool
	DiminishedCapacityFlag  bool
	BelowThresholdFlag      bool
	PreBedIntakeFlag        bool
	LongIntervalFlag        bool
	ProperOutputThresholdML float64
}

// Calculate runs the full analysis for one day. It is total over any
// well-formed input: empty logs and zero denominators resolve to zeros,
// never errors.
func Calculate(log models.DayLog, patient models.PatientContext) Result {
	r := Result{
		TotalIntakeML:     SumIntake(log),
		TotalOutputML:     SumOutput(log),
		NocturnalOutputML: NocturnalOutput(log),
		MaxOutputML:       MaxVoidedVolume(log),
		NightVoidCount:    CountNightVoids(log),
		LeakCount:         CountLeaks(log),
	}

	r.TotalUrineFlag = r.TotalOutputML > TotalUrineThresholdML

	if r.TotalOutputML > 0 {
		r.NPI = float64(r.NocturnalOutputML) / float64(r.TotalOutputML) * 100
	}

	threshold := float64(npiDefaultPercent)
	if patient.Age >= npiMidlifeAgeMin && patient.Age <= npiMidlifeAgeMax {
		threshold = npiMidlifePercent
	}
	r.NocturnalPolyuriaFlag = r.NPI > threshold

	r.DiminishedCapacityFlag = r.MaxOutputML < diminishedCapacityML

	if r.MaxOutputML > 0 {
		r.NI = float64(r.NocturnalOutputML) / float64(r.MaxOutputML)
	}
	if r.NI > 1 {
		r.PNV = r.NI - 1
	}
	r.NBCI = float64(r.NightVoidCount) - r.PNV
	r.NBCIBand = ClassifyNBCI(r.NBCI)

	r.ProperOutputThresholdML = patient.BodyWeightKg * properOutputRate * 24
	r.BelowThresholdFlag = float64(r.TotalOutputML) < r.ProperOutputThresholdML

	// The bedtime-window check only matters once nocturnal polyuria is on
	// the table; otherwise the flag stays false without inspecting rows.
	if r.NocturnalPolyuriaFlag {
		r.PreBedIntakeFlag = IntakeNearBedtime(log, patient.BedTime)
	}
	r.LongIntervalFlag = HasLongVoidInterval(log)

	return r
}
