package handlers

import (
	"io"
	"strings"

	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
	"github.com/Lappanawat/flowmind-ranocturia/internal/ocr"
	appsession "github.com/Lappanawat/flowmind-ranocturia/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadBytes bounds chart photos; phone camera JPEGs stay well under this.
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	log       *zap.Logger
	store     *appsession.Store
	chart     *ChartHandler
	extractor ocr.Extractor
}

func NewUploadHandler(log *zap.Logger, store *appsession.Store, chart *ChartHandler, extractor ocr.Extractor) *UploadHandler {
	return &UploadHandler{log: log, store: store, chart: chart, extractor: extractor}
}

// ProcessImage runs OCR over an uploaded chart photo and replaces the day's
// log with the extracted rows. Every failure is recoverable: the form keeps
// its manually entered rows and shows a banner.
func (h *UploadHandler) ProcessImage(c *gin.Context) {
	day := dayParam(c)
	if day == 0 {
		abortNotFound(c)
		return
	}
	sess := currentSession(c, h.store)

	if h.extractor == nil {
		h.chart.render(c, sess, day, nil, "ไม่ได้ตั้งค่า OCR (Image extraction is not configured on this server).")
		return
	}

	fileHeader, err := c.FormFile("chart_image")
	if err != nil {
		h.chart.render(c, sess, day, nil, "กรุณาเลือกไฟล์ภาพ (Please choose an image file to upload).")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		h.chart.render(c, sess, day, nil, "ไฟล์ใหญ่เกินไป (Image too large).")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		h.chart.render(c, sess, day, nil, "รองรับเฉพาะไฟล์ภาพ (Only image uploads are supported).")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error("Failed to open upload", zap.Error(err))
		h.chart.render(c, sess, day, nil, "ไม่สามารถอ่านไฟล์ได้ (Failed to read the uploaded file).")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.log.Error("Failed to read upload", zap.Error(err))
		h.chart.render(c, sess, day, nil, "ไม่สามารถอ่านไฟล์ได้ (Failed to read the uploaded file).")
		return
	}

	text, err := h.extractor.ExtractText(c.Request.Context(), image, mimeType)
	if err != nil {
		// Terminal for this upload only; manual entry stays usable.
		h.log.Warn("OCR extraction failed", zap.Int("day", day), zap.Error(err))
		h.chart.render(c, sess, day, nil, "ไม่สามารถประมวลผลภาพได้ (Failed to process image — you can still enter rows manually).")
		return
	}

	extracted := ocr.ParseRows(text)
	sess.Day(day).Log = extracted
	h.log.Info("Chart image extracted",
		zap.Int("day", day),
		zap.Int("rows", len(extracted)),
		zap.Int("recognized", countRecognized(extracted)))

	h.chart.render(c, sess, day, nil, "")
}

func countRecognized(log models.DayLog) int {
	n := 0
	for _, e := range log {
		if e.Activity != models.ActivityUnknown || e.HasTime() {
			n++
		}
	}
	return n
}
