package metrics

import (
	"math"
	"testing"

	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
	"github.com/Lappanawat/flowmind-ranocturia/internal/timeslot"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func demoPatient(age int) models.PatientContext {
	p := models.DefaultPatientContext()
	p.Age = age
	return p
}

func TestCalculateDemoLog(t *testing.T) {
	r := Calculate(models.BuiltinDemoLog(), demoPatient(50))

	if r.TotalIntakeML != 1150 {
		t.Errorf("TotalIntakeML = %d, want 1150", r.TotalIntakeML)
	}
	if r.TotalOutputML != 1150 {
		t.Errorf("TotalOutputML = %d, want 1150", r.TotalOutputML)
	}
	// First morning void counts toward nocturnal volume.
	if r.NocturnalOutputML != 300 {
		t.Errorf("NocturnalOutputML = %d, want 300", r.NocturnalOutputML)
	}
	if r.MaxOutputML != 300 {
		t.Errorf("MaxOutputML = %d, want 300", r.MaxOutputML)
	}
	// ...but not toward the nighttime void count.
	if r.NightVoidCount != 1 {
		t.Errorf("NightVoidCount = %d, want 1", r.NightVoidCount)
	}
	if r.LeakCount != 1 {
		t.Errorf("LeakCount = %d, want 1", r.LeakCount)
	}

	wantNPI := 300.0 / 1150.0 * 100
	if !almostEqual(r.NPI, wantNPI) {
		t.Errorf("NPI = %v, want %v", r.NPI, wantNPI)
	}
	// Age 50 sits in the 40-65 band, so the threshold is 20 and 26.09 trips it.
	if !r.NocturnalPolyuriaFlag {
		t.Error("NocturnalPolyuriaFlag should be true at age 50")
	}
	if !almostEqual(r.NI, 1.0) {
		t.Errorf("NI = %v, want 1.0", r.NI)
	}
	if r.PNV != 0 {
		t.Errorf("PNV = %v, want 0 (NI not above 1)", r.PNV)
	}
	if !almostEqual(r.NBCI, 1.0) {
		t.Errorf("NBCI = %v, want 1.0", r.NBCI)
	}
	if r.NBCIBand != BandNocturiaSuspected {
		t.Errorf("NBCIBand = %v, want nocturia suspected", r.NBCIBand)
	}
	if r.DiminishedCapacityFlag {
		t.Error("DiminishedCapacityFlag should be false, max void 300 >= 200")
	}
	if r.TotalUrineFlag {
		t.Error("TotalUrineFlag should be false at 1150 ml")
	}

	// Default 70 kg patient: 0.5 ml/kg/hr over 24h = 840 ml.
	if !almostEqual(r.ProperOutputThresholdML, 840) {
		t.Errorf("ProperOutputThresholdML = %v, want 840", r.ProperOutputThresholdML)
	}
	if r.BelowThresholdFlag {
		t.Error("BelowThresholdFlag should be false, 1150 >= 840")
	}

	// Bedtime 22:00, window opens 18:00; the 400 ml intake at 18:00 is inside.
	if !r.PreBedIntakeFlag {
		t.Error("PreBedIntakeFlag should be true for the demo log")
	}
	// Sorted demo times leave no circular gap above 6 hours.
	if r.LongIntervalFlag {
		t.Error("LongIntervalFlag should be false for the demo log")
	}
}

func TestCalculateEmptyLog(t *testing.T) {
	r := Calculate(models.DayLog{}, demoPatient(50))

	if r.TotalIntakeML != 0 || r.TotalOutputML != 0 || r.NocturnalOutputML != 0 {
		t.Error("empty log should aggregate to zero volumes")
	}
	if r.MaxOutputML != 0 {
		t.Errorf("MaxOutputML = %d, want 0 for empty log", r.MaxOutputML)
	}
	if r.NPI != 0 || r.NI != 0 || r.PNV != 0 || r.NBCI != 0 {
		t.Error("all ratios should resolve to 0 on an empty log")
	}
	if r.NBCIBand != BandNoAbnormality {
		t.Errorf("NBCIBand = %v, want no abnormality", r.NBCIBand)
	}
	if r.NocturnalPolyuriaFlag || r.TotalUrineFlag || r.PreBedIntakeFlag || r.LongIntervalFlag {
		t.Error("no warning flags should fire on an empty log")
	}
	if !r.DiminishedCapacityFlag {
		t.Error("DiminishedCapacityFlag fires on empty log, max 0 < 200")
	}
	if !r.BelowThresholdFlag {
		t.Error("BelowThresholdFlag fires on empty log, 0 < weight threshold")
	}
}

// npiLog builds a log whose NPI is exactly the given percentage.
func npiLog(npiPercent int) models.DayLog {
	return models.DayLog{
		{Activity: models.DaytimeVoid, Time: 12 * 60, OutputML: 100 - npiPercent},
		{Activity: models.NighttimeVoid, Time: 2 * 60, OutputML: npiPercent},
	}
}

func TestNocturnalPolyuriaAgeBoundaries(t *testing.T) {
	tests := []struct {
		name string
		age  int
		npi  int
		want bool
	}{
		{name: "npi 21 at age 40 uses midlife threshold", age: 40, npi: 21, want: true},
		{name: "npi 21 at age 39 uses default threshold", age: 39, npi: 21, want: false},
		{name: "npi 21 at age 65 still midlife", age: 65, npi: 21, want: true},
		{name: "npi 21 at age 66 back to default", age: 66, npi: 21, want: false},
		{name: "npi 34 trips default threshold", age: 70, npi: 34, want: true},
		{name: "npi 33 does not trip default threshold", age: 70, npi: 33, want: false},
		{name: "npi 20 does not trip midlife threshold", age: 50, npi: 20, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calculate(npiLog(tt.npi), demoPatient(tt.age))
			if r.NocturnalPolyuriaFlag != tt.want {
				t.Errorf("age %d npi %d: flag = %v, want %v", tt.age, tt.npi, r.NocturnalPolyuriaFlag, tt.want)
			}
		})
	}
}

func TestPNVNeverNegative(t *testing.T) {
	logs := []models.DayLog{
		models.BuiltinDemoLog(),
		{}, // empty
		{{Activity: models.NighttimeVoid, OutputML: 50}, {Activity: models.DaytimeVoid, OutputML: 500}},  // NI well below 1
		{{Activity: models.NighttimeVoid, OutputML: 900}, {Activity: models.DaytimeVoid, OutputML: 300}}, // NI = 3
	}
	for i, log := range logs {
		r := Calculate(log, demoPatient(50))
		if r.PNV < 0 {
			t.Errorf("log %d: PNV = %v, must never be negative", i, r.PNV)
		}
	}
}

func TestPNVAndNBCI(t *testing.T) {
	// Three nighttime voids of 300 ml against a 300 ml max void: NI = 3,
	// PNV = 2, NBCI = 3 - 2 = 1.
	log := models.DayLog{
		{Activity: models.NighttimeVoid, Time: 0 * 60, OutputML: 300},
		{Activity: models.NighttimeVoid, Time: 2 * 60, OutputML: 300},
		{Activity: models.NighttimeVoid, Time: 4 * 60, OutputML: 300},
	}
	r := Calculate(log, demoPatient(50))
	if !almostEqual(r.NI, 3) {
		t.Errorf("NI = %v, want 3", r.NI)
	}
	if !almostEqual(r.PNV, 2) {
		t.Errorf("PNV = %v, want 2", r.PNV)
	}
	if !almostEqual(r.NBCI, 1) {
		t.Errorf("NBCI = %v, want 1", r.NBCI)
	}

	// NBCI may go negative when PNV exceeds the count; it is not clamped.
	log = models.DayLog{
		{Activity: models.FirstMorningVoid, Time: 6 * 60, OutputML: 900},
		{Activity: models.DaytimeVoid, Time: 12 * 60, OutputML: 300},
	}
	r = Calculate(log, demoPatient(50))
	if r.NightVoidCount != 0 {
		t.Fatalf("NightVoidCount = %d, want 0", r.NightVoidCount)
	}
	if r.NBCI >= 0 {
		t.Errorf("NBCI = %v, expected negative (PNV %v above count)", r.NBCI, r.PNV)
	}
}

func TestClassifyNBCI(t *testing.T) {
	tests := []struct {
		nbci float64
		want NBCIBand
	}{
		{2.5, BandSevereNocturia},
		{2.0000001, BandSevereNocturia},
		{2, BandDiminishedCapacity}, // boundary: 2 is not > 2
		{1.4, BandDiminishedCapacity},
		{1.3, BandNocturiaSuspected}, // boundary: 1.3 is not > 1.3
		{1, BandNocturiaSuspected},
		{0.001, BandNocturiaSuspected},
		{0, BandNoAbnormality},
		{-1.5, BandNoAbnormality},
	}
	for _, tt := range tests {
		if got := ClassifyNBCI(tt.nbci); got != tt.want {
			t.Errorf("ClassifyNBCI(%v) = %v, want %v", tt.nbci, got, tt.want)
		}
	}
}

func TestIntakeNearBedtime(t *testing.T) {
	entry := func(time, intake int) models.VoidEntry {
		return models.VoidEntry{Activity: models.DaytimeVoid, Time: time, IntakeML: intake}
	}

	tests := []struct {
		name    string
		log     models.DayLog
		bedTime int
		want    bool
	}{
		{
			name:    "intake at window open",
			log:     models.DayLog{entry(18*60, 400)},
			bedTime: 22 * 60,
			want:    true,
		},
		{
			name:    "intake just before window",
			log:     models.DayLog{entry(17*60+45, 400)},
			bedTime: 22 * 60,
			want:    false,
		},
		{
			name:    "intake at bedtime itself is outside",
			log:     models.DayLog{entry(22*60, 400)},
			bedTime: 22 * 60,
			want:    false,
		},
		{
			name:    "void without intake never matches",
			log:     models.DayLog{{Activity: models.BedtimeVoid, Time: 21 * 60, OutputML: 100}},
			bedTime: 22 * 60,
			want:    false,
		},
		{
			name:    "wrapped window, evening side",
			log:     models.DayLog{entry(23*60, 200)},
			bedTime: 1 * 60, // bedtime 01:00, window opens 21:00
			want:    true,
		},
		{
			name:    "wrapped window, morning side",
			log:     models.DayLog{entry(0*60+30, 200)},
			bedTime: 1 * 60,
			want:    true,
		},
		{
			name:    "wrapped window, midday outside",
			log:     models.DayLog{entry(12*60, 200)},
			bedTime: 1 * 60,
			want:    false,
		},
		{
			name:    "unset time skipped",
			log:     models.DayLog{{Activity: models.DaytimeVoid, Time: timeslot.Unset, IntakeML: 500}},
			bedTime: 22 * 60,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntakeNearBedtime(tt.log, tt.bedTime); got != tt.want {
				t.Errorf("IntakeNearBedtime = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreBedFlagGatedOnPolyuria(t *testing.T) {
	// Heavy evening intake but nocturnal output of zero: the polyuria flag
	// stays off, so the pre-bed check must not fire either.
	log := models.DayLog{
		{Activity: models.DaytimeVoid, Time: 19 * 60, IntakeML: 800, OutputML: 400},
	}
	r := Calculate(log, demoPatient(50))
	if r.NocturnalPolyuriaFlag {
		t.Fatal("polyuria flag unexpectedly set")
	}
	if r.PreBedIntakeFlag {
		t.Error("PreBedIntakeFlag must stay false when polyuria flag is off")
	}
}

func TestHasLongVoidInterval(t *testing.T) {
	void := func(time int) models.VoidEntry {
		return models.VoidEntry{Activity: models.DaytimeVoid, Time: time, OutputML: 100}
	}

	tests := []struct {
		name string
		log  models.DayLog
		want bool
	}{
		{
			name: "two voids, both gaps over six hours",
			log:  models.DayLog{void(6 * 60), void(22 * 60)},
			want: true,
		},
		{
			name: "single void, no interval",
			log:  models.DayLog{void(6 * 60)},
			want: false,
		},
		{
			name: "no usable times",
			log:  models.DayLog{{Activity: models.DaytimeVoid, Time: timeslot.Unset, OutputML: 100}},
			want: false,
		},
		{
			name: "evenly spread voids",
			log:  models.DayLog{void(2 * 60), void(7 * 60), void(12 * 60), void(17 * 60), void(22 * 60)},
			want: false,
		},
		{
			name: "wrap gap exceeds six hours",
			log:  models.DayLog{void(2 * 60), void(8 * 60), void(14 * 60)},
			want: true, // 14:00 back around to 02:00 is 12 hours
		},
		{
			name: "unsorted input sorted internally",
			log:  models.DayLog{void(18 * 60), void(0), void(12 * 60), void(6 * 60)},
			want: false,
		},
		{
			name: "exactly six hours is not long",
			log:  models.DayLog{void(0), void(6 * 60), void(12 * 60), void(18 * 60)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLongVoidInterval(tt.log); got != tt.want {
				t.Errorf("HasLongVoidInterval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNocturnalOutputNeverExceedsTotal(t *testing.T) {
	logs := []models.DayLog{
		models.BuiltinDemoLog(),
		{},
		{{Activity: models.NighttimeVoid, OutputML: 500}},
		{{Activity: models.FirstMorningVoid, OutputML: 200}, {Activity: models.NighttimeVoid, OutputML: 100}},
	}
	for i, log := range logs {
		r := Calculate(log, demoPatient(50))
		if r.NocturnalOutputML < 0 {
			t.Errorf("log %d: nocturnal output negative", i)
		}
		if r.NocturnalOutputML > r.TotalOutputML {
			t.Errorf("log %d: nocturnal %d exceeds total %d", i, r.NocturnalOutputML, r.TotalOutputML)
		}
	}
}
