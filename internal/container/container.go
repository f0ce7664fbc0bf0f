package container

import (
	"fmt"
	"net/http"

	"go-leaf-inspector/internal/analyzer"
	"go-leaf-inspector/internal/config"
	"go-leaf-inspector/internal/logger"
	"go-leaf-inspector/internal/observer"
	"go-leaf-inspector/internal/repository"
	"go-leaf-inspector/internal/service"
	"go-leaf-inspector/internal/storage"
	"go-leaf-inspector/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config   *config.Config
	fetcher  storage.ImageFetcher
	pipeline *analyzer.Pipeline
	images   repository.ImageSource
	metrics  *observer.MetricsObserver
	service  service.LeafAnalysisService
	handler  http.Handler
}

// NewContainer builds the dependency graph from the given configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	fetcher, err := storage.NewFetcher(storage.BackendType(cfg.StorageBackend), storage.Credentials{
		AzureAccountName: cfg.AzureAccountName,
		AzureAccountKey:  cfg.AzureAccountKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create image fetcher: %w", err)
	}

	opts := analyzer.DefaultOptions()
	opts.MaxDimension = cfg.MaxAnalysisDimension
	opts.Parallel = cfg.ParallelAnalysis
	opts.MaxWorkers = cfg.MaxWorkers
	pipeline := analyzer.NewPipeline(opts)

	images := repository.NewLeafImageRepository(fetcher, cfg.MaxAnalysisDimension)

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	svc := service.NewLeafAnalysisService(images, pipeline, events)
	handler := transport.NewHandler(svc, metrics, cfg)

	return &Container{
		config:   cfg,
		fetcher:  fetcher,
		pipeline: pipeline,
		images:   images,
		metrics:  metrics,
		service:  svc,
		handler:  handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the leaf analysis service
func (c *Container) Service() service.LeafAnalysisService {
	return c.service
}

// Close releases the analysis worker pool.
func (c *Container) Close() {
	c.pipeline.Close()
}
