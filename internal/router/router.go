package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/Lappanawat/flowmind-ranocturia/internal/config"
	"github.com/Lappanawat/flowmind-ranocturia/internal/handlers"
	"github.com/Lappanawat/flowmind-ranocturia/internal/models"
	"github.com/Lappanawat/flowmind-ranocturia/internal/ocr"
	"github.com/Lappanawat/flowmind-ranocturia/internal/session"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	ginsessions "github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, store *session.Store, chartCfg *models.ChartConfig, extractor ocr.Extractor) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	cookieStore := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	cookieStore.Options(ginsessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(ginsessions.Sessions("flowmind_session", cookieStore))

	router.Use(CSRFProtection())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	router.SetFuncMap(template.FuncMap{
		// iterate yields 1..n for the day navigation links.
		"iterate": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
	})
	router.LoadHTMLGlob("templates/*.html")
	router.Static("/assets", "./assets")

	// Handlers and routes
	chartHandler := handlers.NewChartHandler(log, store, chartCfg, extractor != nil)
	patientHandler := handlers.NewPatientHandler(log, store)
	uploadHandler := handlers.NewUploadHandler(log, store, chartHandler, extractor)
	resultsHandler := handlers.NewResultsHandler(log, store)

	// The OCR upload calls a paid third-party vision API, so it gets a
	// per-client rate limit.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/day/1")
	})

	dayRoutes := router.Group("/day")
	{
		dayRoutes.GET("/:day", chartHandler.ShowDay)
		dayRoutes.POST("/:day/table", chartHandler.SubmitTable)
		dayRoutes.POST("/:day/patient", patientHandler.Update)
		dayRoutes.POST("/:day/upload", limiter, uploadHandler.ProcessImage)
	}

	router.GET("/summary", resultsHandler.ShowSummary)

	return router
}
