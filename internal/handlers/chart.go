// server-side rendering of the frequency volume chart form.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/Lappanawat/flowmind-ranocturia/internal/metrics"
	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
	appsession "github.com/Lappanawat/flowmind-ranocturia/internal/session"
	"github.com/Lappanawat/flowmind-ranocturia/internal/timeslot"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// noTimeOption is the time-column value for rows without a usable time,
// matching what OCR placeholders display.
const noTimeOption = "None"

type ChartHandler struct {
	log      *zap.Logger
	store    *appsession.Store
	chartCfg *models.ChartConfig
	ocrReady bool
}

func NewChartHandler(log *zap.Logger, store *appsession.Store, chartCfg *models.ChartConfig, ocrReady bool) *ChartHandler {
	return &ChartHandler{log: log, store: store, chartCfg: chartCfg, ocrReady: ocrReady}
}

// ShowDay renders one day's editable chart.
func (h *ChartHandler) ShowDay(c *gin.Context) {
	day := dayParam(c)
	if day == 0 {
		abortNotFound(c)
		return
	}
	sess := currentSession(c, h.store)
	h.render(c, sess, day, nil, "")
}

// SubmitTable replaces the day's log with the submitted rows, runs the
// metrics engine, and renders the results alongside the form.
func (h *ChartHandler) SubmitTable(c *gin.Context) {
	day := dayParam(c)
	if day == 0 {
		abortNotFound(c)
		return
	}
	sess := currentSession(c, h.store)
	state := sess.Day(day)

	state.Log = parseTableRows(
		c.PostFormArray("activity"),
		c.PostFormArray("time"),
		c.PostFormArray("intake"),
		c.PostFormArray("output"),
		c.PostFormArray("leak"),
	)

	result := metrics.Calculate(state.Log, state.Patient(sess.Age))
	h.log.Debug("Chart analyzed",
		zap.Int("day", day),
		zap.Int("rows", len(state.Log)),
		zap.Float64("npi", result.NPI))

	h.render(c, sess, day, &result, "")
}

// parseTableRows degrades the parallel form arrays into a day log. Rows are
// never rejected: a bad time becomes unset, bad volumes become zero, and
// unrecognized activity text classifies as unknown.
func parseTableRows(activities, times, intakes, outputs, leaks []string) models.DayLog {
	log := make(models.DayLog, 0, len(activities))
	for i, activity := range activities {
		entry := models.VoidEntry{
			Activity: models.ClassifyActivity(activity),
			Time:     timeslot.Unset,
			Leak:     models.ParseLeak(pick(leaks, i)),
		}

		// The form's time column only offers the 96 slots; anything else
		// (including the OCR placeholder "None") is treated as no time.
		if t, err := timeslot.ToMinutes(pick(times, i)); err == nil && timeslot.OnGrid(t) {
			entry.Time = t
		}
		entry.IntakeML = parseVolume(pick(intakes, i))
		entry.OutputML = parseVolume(pick(outputs, i))

		log = append(log, entry)
	}
	return log
}

func pick(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func parseVolume(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// render assembles the full day-page view. result and errMsg are optional.
func (h *ChartHandler) render(c *gin.Context, sess *appsession.Session, day int, result *metrics.Result, errMsg string) {
	state := sess.Day(day)

	rows := make([]rowView, 0, len(state.Log))
	for _, e := range state.Log {
		t := noTimeOption
		if e.HasTime() {
			t = timeslot.FromMinutes(e.Time)
		}
		rows = append(rows, rowView{
			Activity: h.chartCfg.ActivityLabel(e.Activity),
			Time:     t,
			IntakeML: e.IntakeML,
			OutputML: e.OutputML,
			Leak:     e.Leak.String(),
		})
	}

	activities := make([]string, 0, 5)
	for _, a := range []models.Activity{
		models.FirstMorningVoid,
		models.DaytimeVoid,
		models.BedtimeVoid,
		models.NighttimeVoid,
		models.ActivityUnknown,
	} {
		activities = append(activities, h.chartCfg.ActivityLabel(a))
	}

	csrfToken, _ := c.Get("csrf_token")

	data := gin.H{
		"Day":          day,
		"DayCount":     appsession.DayCount,
		"Age":          sess.Age,
		"BodyWeightKg": strconv.FormatFloat(state.BodyWeightKg, 'f', 1, 64),
		"WakeTime":     timeslot.FromMinutes(state.WakeTime),
		"BedTime":      timeslot.FromMinutes(state.BedTime),
		"Slots":        timeslot.Slots(),
		"Activities":   activities,
		"Rows":         rows,
		"OCRReady":     h.ocrReady,
		"Error":        errMsg,
		"CSRFToken":    csrfToken,
	}
	if result != nil {
		data["Results"] = buildResultsView(*result)
	}

	c.HTML(http.StatusOK, "day.html", data)
}

type rowView struct {
	Activity string
	Time     string
	IntakeML int
	OutputML int
	Leak     string
}
