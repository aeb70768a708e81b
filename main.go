package main

import (
	"context"

	"github.com/Lappanawat/flowmind-ranocturia/internal/config"
	"github.com/Lappanawat/flowmind-ranocturia/internal/logging"
	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
	"github.com/Lappanawat/flowmind-ranocturia/internal/ocr"
	"github.com/Lappanawat/flowmind-ranocturia/internal/router"
	"github.com/Lappanawat/flowmind-ranocturia/internal/session"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env before config so provider keys reach viper's env binding.
	_ = godotenv.Load()

	// Bootstrap logger, replaced once the configured one is ready.
	boot, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}

	if err := config.Init(".", boot); err != nil {
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logging.Init(config.Conf.Logging)
	if err != nil {
		boot.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Load chart labels and the demo template at startup.
	chartCfg, err := models.LoadChartConfig(config.Conf.Chart.Path)
	if err != nil {
		log.Warn("Chart config unavailable, using built-in labels and demo", zap.Error(err))
	}

	extractor := buildExtractor(log)
	store := session.NewStore(chartCfg.DemoLog())

	r := router.Setup(log, store, chartCfg, extractor)

	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}

// buildExtractor wires the vision-based OCR when at least one provider key
// is configured. Without keys the upload feature reports itself unavailable
// and the form stays manual.
func buildExtractor(log *zap.Logger) ocr.Extractor {
	ocrConf := config.Conf.OCR
	if ocrConf.GeminiAPIKey == "" && ocrConf.OpenAIAPIKey == "" {
		log.Info("No OCR provider keys configured, chart-photo extraction disabled")
		return nil
	}

	extractor, err := ocr.NewVisionExtractor(context.Background(), ocr.Options{
		GeminiAPIKey: ocrConf.GeminiAPIKey,
		GeminiModel:  ocrConf.GeminiModel,
		OpenAIAPIKey: ocrConf.OpenAIAPIKey,
		OpenAIModel:  ocrConf.OpenAIModel,
	})
	if err != nil {
		log.Warn("Failed to initialize OCR extractor, uploads disabled", zap.Error(err))
		return nil
	}
	log.Info("Chart-photo extraction enabled")
	return extractor
}
