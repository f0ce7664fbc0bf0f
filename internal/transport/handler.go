package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-leaf-inspector/internal/config"
	apperrors "go-leaf-inspector/internal/errors"
	"go-leaf-inspector/internal/logger"
	"go-leaf-inspector/internal/observer"
	"go-leaf-inspector/internal/service"
	"go-leaf-inspector/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const apiVersion = "1.0.0"

// NewHandler wires the HTTP routes for the leaf analysis API.
func NewHandler(svc service.LeafAnalysisService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/", apiInfo)
	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzeLeaf(svc, cfg))
	r.POST("/analyze/file", analyzeLeafFile(svc, cfg))
	r.GET("/metrics", analysisMetrics(metrics))

	return r
}

func analyzeLeaf(svc service.LeafAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing leaf analysis request")

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		switch {
		case req.URL != "" && req.ImageBase64 != "":
			err := apperrors.NewValidationError("provide either url or image_base64, not both", nil)
			respondError(c, err.StatusCode, "invalid request", err)
			return
		case req.URL == "" && req.ImageBase64 == "":
			err := apperrors.NewValidationError("either url or image_base64 is required", nil)
			respondError(c, err.StatusCode, "invalid request", err)
			return
		}

		var (
			response *models.LeafAnalysisResponse
			err      error
		)
		if req.URL != "" {
			response, err = svc.AnalyzeURL(ctx, req.URL)
		} else {
			response, err = svc.AnalyzeBase64(ctx, req.ImageBase64)
		}
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Leaf analysis request failed")
			respondError(c, apperrors.GetStatusCode(err), "analysis failed", err)
			return
		}

		logCompletion(response)
		c.JSON(http.StatusOK, response)
	}
}

func analyzeLeafFile(svc service.LeafAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			logger.WithError(err).WithField("ip", c.ClientIP()).Error("Missing upload")
			respondError(c, http.StatusBadRequest, "multipart field 'file' is required", err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to open upload", err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, http.StatusBadRequest, "failed to read upload", err)
			return
		}

		response, err := svc.AnalyzeBytes(ctx, data, fileHeader.Filename)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"filename": fileHeader.Filename,
				"ip":       c.ClientIP(),
			}).Error("Leaf analysis request failed")
			respondError(c, apperrors.GetStatusCode(err), "analysis failed", err)
			return
		}

		logCompletion(response)
		c.JSON(http.StatusOK, response)
	}
}

func analysisMetrics(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.GetMetrics())
	}
}

func apiInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIInfo{
		Message: "Leaf health analysis API",
		Version: apiVersion,
		Endpoints: map[string]string{
			"GET /health":        "service health",
			"GET /metrics":       "analysis metrics",
			"POST /analyze":      "analyze a leaf photograph by url or image_base64",
			"POST /analyze/file": "analyze an uploaded leaf photograph",
		},
	})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": apiVersion,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func logCompletion(response *models.LeafAnalysisResponse) {
	fields := logrus.Fields{
		"source":              response.Source,
		"processing_time_sec": response.ProcessingTimeSec,
		"resolution":          response.Resolution,
		"warnings":            len(response.Warnings),
	}
	if response.Report.Error != "" {
		fields["analysis_error"] = response.Report.Error
		logger.WithFields(fields).Warn("Leaf analysis returned failure report")
		return
	}
	if stress := response.Report.Stress; stress != nil {
		fields["health_status"] = stress.HealthStatus
		fields["stress_score"] = stress.StressScore
	}
	logger.WithFields(fields).Info("Leaf analysis completed successfully")
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
