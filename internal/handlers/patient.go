package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
	appsession "github.com/Lappanawat/flowmind-ranocturia/internal/session"
	"github.com/Lappanawat/flowmind-ranocturia/internal/timeslot"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PatientHandler struct {
	log   *zap.Logger
	store *appsession.Store
}

func NewPatientHandler(log *zap.Logger, store *appsession.Store) *PatientHandler {
	return &PatientHandler{log: log, store: store}
}

// Update applies the sidebar inputs. Age is session-wide; body weight and
// wake/bed times belong to the day being edited. Invalid values keep the
// previous setting rather than erroring.
func (h *PatientHandler) Update(c *gin.Context) {
	day := dayParam(c)
	if day == 0 {
		abortNotFound(c)
		return
	}
	sess := currentSession(c, h.store)
	state := sess.Day(day)

	if age, err := strconv.Atoi(c.PostForm("age")); err == nil && age >= 0 {
		sess.Age = age
	}
	if w, err := strconv.ParseFloat(c.PostForm("body_weight"), 64); err == nil {
		// One-decimal precision, floor at the supported minimum.
		w = math.Round(w*10) / 10
		if w < models.MinBodyWeightKg {
			w = models.MinBodyWeightKg
		}
		state.BodyWeightKg = w
	}
	if t, err := timeslot.ToMinutes(c.PostForm("wake_time")); err == nil && timeslot.OnGrid(t) {
		state.WakeTime = t
	}
	if t, err := timeslot.ToMinutes(c.PostForm("bed_time")); err == nil && timeslot.OnGrid(t) {
		state.BedTime = t
	}

	h.log.Debug("Patient inputs updated",
		zap.Int("day", day),
		zap.Int("age", sess.Age),
		zap.Float64("weight_kg", state.BodyWeightKg))

	c.Redirect(http.StatusFound, "/day/"+strconv.Itoa(day))
}
