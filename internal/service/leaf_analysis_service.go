package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-leaf-inspector/internal/analyzer"
	apperrors "go-leaf-inspector/internal/errors"
	"go-leaf-inspector/internal/observer"
	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/internal/repository"
	"go-leaf-inspector/pkg/models"
	"go-leaf-inspector/pkg/validation"
)

// LeafAnalysisService runs the 12-feature health analysis on leaf
// photographs from any input channel.
type LeafAnalysisService interface {
	// AnalyzeURL fetches the photograph at the URL and analyzes it
	AnalyzeURL(ctx context.Context, imageURL string) (*models.LeafAnalysisResponse, error)

	// AnalyzeBase64 analyzes a base64 payload, data-URL prefix allowed
	AnalyzeBase64(ctx context.Context, encoded string) (*models.LeafAnalysisResponse, error)

	// AnalyzeBytes analyzes an uploaded photograph; name labels the source
	AnalyzeBytes(ctx context.Context, data []byte, name string) (*models.LeafAnalysisResponse, error)

	// ValidateImageURL checks a URL before any network access
	ValidateImageURL(imageURL string) error
}

// leafAnalysisService implements LeafAnalysisService over an image source
// and the analysis pipeline.
type leafAnalysisService struct {
	images    repository.ImageSource
	pipeline  *analyzer.Pipeline
	validator *validation.ReportValidator
	events    observer.Subject
}

// NewLeafAnalysisService creates a new leaf analysis service. The events
// subject may be nil when no observers are wired.
func NewLeafAnalysisService(
	images repository.ImageSource,
	pipeline *analyzer.Pipeline,
	events observer.Subject,
) LeafAnalysisService {
	return &leafAnalysisService{
		images:    images,
		pipeline:  pipeline,
		validator: validation.NewReportValidator(),
		events:    events,
	}
}

// AnalyzeURL fetches and analyzes the photograph at the given URL.
func (s *leafAnalysisService) AnalyzeURL(ctx context.Context, imageURL string) (*models.LeafAnalysisResponse, error) {
	if err := s.ValidateImageURL(imageURL); err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}

	start := time.Now()
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: start,
		Source:    imageURL,
	})

	img, err := s.images.FromURL(ctx, imageURL)
	if err != nil {
		var fetchErr *apperrors.AppError
		if errors.Is(err, context.DeadlineExceeded) {
			fetchErr = apperrors.NewTimeoutError("image fetch timeout", err)
		} else {
			fetchErr = apperrors.NewNetworkError("failed to fetch image", err)
		}
		s.publish(ctx, observer.AnalysisEvent{
			EventType:      observer.ImageFetchFailed,
			Timestamp:      time.Now(),
			Source:         imageURL,
			ProcessingTime: time.Since(start),
			ErrorMessage:   fetchErr.Error(),
		})
		return nil, fetchErr
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.ImageFetched,
		Timestamp: time.Now(),
		Source:    imageURL,
		Success:   true,
	})

	return s.analyze(ctx, img, imageURL, start), nil
}

// AnalyzeBase64 decodes and analyzes a base64 payload.
func (s *leafAnalysisService) AnalyzeBase64(ctx context.Context, encoded string) (*models.LeafAnalysisResponse, error) {
	start := time.Now()
	source := "base64_upload"
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: start,
		Source:    source,
	})

	img, err := s.images.FromBase64(encoded)
	if err != nil {
		return nil, s.decodeFailure(ctx, source, start, err)
	}
	return s.analyze(ctx, img, source, start), nil
}

// AnalyzeBytes decodes and analyzes an uploaded photograph.
func (s *leafAnalysisService) AnalyzeBytes(ctx context.Context, data []byte, name string) (*models.LeafAnalysisResponse, error) {
	start := time.Now()
	source := "file_upload"
	if name != "" {
		source = fmt.Sprintf("file_upload:%s", name)
	}
	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Timestamp: start,
		Source:    source,
	})

	img, err := s.images.FromBytes(data)
	if err != nil {
		return nil, s.decodeFailure(ctx, source, start, err)
	}
	return s.analyze(ctx, img, source, start), nil
}

// ValidateImageURL validates the image URL.
func (s *leafAnalysisService) ValidateImageURL(imageURL string) error {
	return s.images.ValidateURL(imageURL)
}

// analyze runs the pipeline and wraps the report in the response envelope.
// A failed analysis still produces a response: the report carries the
// all-empty feature shape plus an error message.
func (s *leafAnalysisService) analyze(ctx context.Context, img *raster.Image, source string, start time.Time) *models.LeafAnalysisResponse {
	report := s.pipeline.Analyze(img)
	elapsed := time.Since(start)

	response := &models.LeafAnalysisResponse{
		Source:            source,
		Timestamp:         start.UTC().Format(time.RFC3339),
		ProcessingTimeSec: elapsed.Seconds(),
		Resolution:        fmt.Sprintf("%dx%d", img.Width, img.Height),
		Report:            report,
		Warnings:          s.validator.Validate(&report),
	}

	event := observer.AnalysisEvent{
		Timestamp:      time.Now(),
		Source:         source,
		ProcessingTime: elapsed,
	}
	if report.Error != "" {
		event.EventType = observer.AnalysisFailed
		event.ErrorMessage = report.Error
	} else {
		event.EventType = observer.AnalysisCompleted
		event.Success = true
		if report.Stress != nil {
			event.HealthStatus = report.Stress.HealthStatus
			event.StressScore = report.Stress.StressScore
		}
	}
	s.publish(ctx, event)

	return response
}

// decodeFailure publishes the failure event and wraps the decode error.
func (s *leafAnalysisService) decodeFailure(ctx context.Context, source string, start time.Time, err error) error {
	decodeErr := apperrors.NewDecodeError("failed to decode image", err)
	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisFailed,
		Timestamp:      time.Now(),
		Source:         source,
		ProcessingTime: time.Since(start),
		ErrorMessage:   decodeErr.Error(),
	})
	return decodeErr
}

func (s *leafAnalysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}
