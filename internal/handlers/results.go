package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Lappanawat/flowmind-ranocturia/internal/metrics"
	appsession "github.com/Lappanawat/flowmind-ranocturia/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type ResultsHandler struct {
	log   *zap.Logger
	store *appsession.Store
}

func NewResultsHandler(log *zap.Logger, store *appsession.Store) *ResultsHandler {
	return &ResultsHandler{log: log, store: store}
}

// ShowSummary renders the three-day comparison: a volume bar chart plus the
// per-day index table.
func (h *ResultsHandler) ShowSummary(c *gin.Context) {
	sess := currentSession(c, h.store)

	days := make([]gin.H, 0, appsession.DayCount)
	results := make([]metrics.Result, 0, appsession.DayCount)
	for i := 1; i <= appsession.DayCount; i++ {
		state := sess.Day(i)
		result := metrics.Calculate(state.Log, state.Patient(sess.Age))
		results = append(results, result)
		days = append(days, gin.H{
			"Day":     i,
			"Results": buildResultsView(result),
		})
	}

	chart := generateVolumeChart(results)
	chartJSON, err := json.Marshal(chart.JSON())
	if err != nil {
		h.log.Error("Failed to marshal summary chart", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to build summary chart")
		return
	}

	csrfToken, _ := c.Get("csrf_token")
	c.HTML(http.StatusOK, "summary.html", gin.H{
		"Days":         days,
		"ChartOptions": string(chartJSON),
		"CSRFToken":    csrfToken,
	})
}

// generateVolumeChart builds the intake/output/nocturnal bar chart across
// the tracked days.
func generateVolumeChart(results []metrics.Result) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Urine Volume by Day",
			Subtitle: "ml per tracked day",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "ml"}),
	)

	labels := make([]string, 0, len(results))
	intake := make([]opts.BarData, 0, len(results))
	output := make([]opts.BarData, 0, len(results))
	nocturnal := make([]opts.BarData, 0, len(results))
	for i, r := range results {
		labels = append(labels, fmt.Sprintf("Day %d", i+1))
		intake = append(intake, opts.BarData{Value: r.TotalIntakeML})
		output = append(output, opts.BarData{Value: r.TotalOutputML})
		nocturnal = append(nocturnal, opts.BarData{Value: r.NocturnalOutputML})
	}

	bar.SetXAxis(labels).
		AddSeries("Total Intake", intake).
		AddSeries("Total Output", output).
		AddSeries("Nocturnal Output", nocturnal)
	return bar
}

type statusLine struct {
	Message string
	Warn    bool
}

type resultsView struct {
	TotalIntakeML     int
	TotalOutputML     int
	NocturnalOutputML int
	MaxOutputML       int
	NightVoidCount    int
	LeakCount         int

	NPI             string
	NI              string
	PNV             string
	NBCI            string
	ProperThreshold string

	Statuses []statusLine
}

// buildResultsView formats the engine output for display. Floats always show
// two decimals.
func buildResultsView(r metrics.Result) resultsView {
	v := resultsView{
		TotalIntakeML:     r.TotalIntakeML,
		TotalOutputML:     r.TotalOutputML,
		NocturnalOutputML: r.NocturnalOutputML,
		MaxOutputML:       r.MaxOutputML,
		NightVoidCount:    r.NightVoidCount,
		LeakCount:         r.LeakCount,
		NPI:               fmt.Sprintf("%.2f", r.NPI),
		NI:                fmt.Sprintf("%.2f", r.NI),
		PNV:               fmt.Sprintf("%.2f", r.PNV),
		NBCI:              fmt.Sprintf("%.2f", r.NBCI),
		ProperThreshold:   fmt.Sprintf("%.2f", r.ProperOutputThresholdML),
	}

	add := func(warn bool, warnMsg, okMsg string) {
		if warn {
			v.Statuses = append(v.Statuses, statusLine{Message: warnMsg, Warn: true})
		} else if okMsg != "" {
			v.Statuses = append(v.Statuses, statusLine{Message: okMsg})
		}
	}

	add(r.TotalUrineFlag,
		"ตรวจพบ 24-Hour Polyuria: ปริมาณปัสสาวะทั้งหมดเกิน 40 ml/kg (Total urine volume exceeds 40 ml/kg).",
		"ไม่พบ 24-Hour Polyuria (No 24-hour polyuria detected).")
	add(r.NocturnalPolyuriaFlag,
		"ตรวจพบ Nocturnal Polyuria (Nocturnal polyuria detected).",
		"ไม่พบ Nocturnal Polyuria (No nocturnal polyuria detected).")
	add(r.DiminishedCapacityFlag,
		"ตรวจพบความจุกระเพาะปัสสาวะลดลง (Diminished bladder capacity: MVV < 200 ml).",
		"ความจุกระเพาะปัสสาวะปกติ (No diminished bladder capacity detected).")

	switch r.NBCIBand {
	case metrics.BandSevereNocturia:
		add(true, "NBCI > 2: associated with severe nocturia.", "")
	case metrics.BandDiminishedCapacity:
		add(true, "NBCI > 1.3: related to diminished nocturnal bladder capacity.", "")
	case metrics.BandNocturiaSuspected:
		add(true, "NBCI > 0: indicates nocturia where each voided volume is below MVV.", "")
	default:
		add(false, "", "NBCI ไม่พบความผิดปกติ (NBCI indicates no nocturia issues).")
	}

	add(r.BelowThresholdFlag,
		fmt.Sprintf("ปริมาณปัสสาวะต่ำกว่าเกณฑ์ (Total output below the %s ml/day expected for this body weight).", v.ProperThreshold),
		"")
	if r.PreBedIntakeFlag {
		add(true, "ดื่มน้ำใกล้เวลานอน (Fluid intake within 4 hours of bedtime — consider restricting evening fluids).", "")
	}
	if r.LongIntervalFlag {
		add(true, "ช่วงห่างการปัสสาวะนานผิดปกติ (An interval between voids exceeds 6 hours).", "")
	}
	if r.LeakCount > 0 {
		add(true, fmt.Sprintf("พบปัสสาวะรั่ว %d ครั้ง (%d leakage episode(s) recorded).", r.LeakCount, r.LeakCount), "")
	}

	return v
}
