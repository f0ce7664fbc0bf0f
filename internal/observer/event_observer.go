package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EventType classifies analysis lifecycle events.
type EventType string

const (
	// AnalysisStarted when a leaf analysis begins
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted when a leaf analysis finishes successfully
	AnalysisCompleted EventType = "analysis_completed"
	// AnalysisFailed when a leaf analysis fails
	AnalysisFailed EventType = "analysis_failed"
	// ImageFetched when the photograph is successfully fetched
	ImageFetched EventType = "image_fetched"
	// ImageFetchFailed when the photograph fetch fails
	ImageFetchFailed EventType = "image_fetch_failed"
)

// AnalysisEvent describes one step of a leaf analysis.
type AnalysisEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	Source         string                 `json:"source"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	HealthStatus   string                 `json:"health_status,omitempty"`
	StressScore    float64                `json:"stress_score,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event AnalysisEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event AnalysisEvent)
}

// LoggingObserver logs analysis events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles analysis events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"source":          event.Source,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	if event.HealthStatus != "" {
		fields["health_status"] = event.HealthStatus
		fields["stress_score"] = event.StressScore
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case AnalysisStarted:
		o.logger.WithFields(fields).Info("Leaf analysis started")
	case AnalysisCompleted:
		o.logger.WithFields(fields).Info("Leaf analysis completed")
	case AnalysisFailed:
		o.logger.WithFields(fields).Error("Leaf analysis failed")
	case ImageFetched:
		o.logger.WithFields(fields).Debug("Leaf photograph fetched")
	case ImageFetchFailed:
		o.logger.WithFields(fields).Error("Leaf photograph fetch failed")
	default:
		o.logger.WithFields(fields).Info("Analysis event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from analysis events, including a
// breakdown of reported health statuses.
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalAnalyses       int64
	successfulAnalyses  int64
	failedAnalyses      int64
	totalProcessingTime time.Duration
	healthStatusCounts  map[string]int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		healthStatusCounts: make(map[string]int64),
	}
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case AnalysisStarted:
		o.totalAnalyses++
	case AnalysisCompleted:
		o.successfulAnalyses++
		o.totalProcessingTime += event.ProcessingTime
		if event.HealthStatus != "" {
			o.healthStatusCounts[event.HealthStatus]++
		}
	case AnalysisFailed:
		o.failedAnalyses++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulAnalyses > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulAnalyses)
	}

	statuses := make(map[string]int64, len(o.healthStatusCounts))
	for k, v := range o.healthStatusCounts {
		statuses[k] = v
	}

	return map[string]interface{}{
		"total_analyses":        o.totalAnalyses,
		"successful_analyses":   o.successfulAnalyses,
		"failed_analyses":       o.failedAnalyses,
		"total_processing_time": o.totalProcessingTime,
		"avg_processing_time":   avgProcessingTime,
		"health_status_counts":  statuses,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event AnalysisEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
