package analyzer

import (
	"fmt"

	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

// Pipeline runs the full 12-feature leaf analysis. It never panics past its
// boundary: any failure comes back as the all-empty report with an error
// message.
type Pipeline struct {
	opts     Options
	strategy executionStrategy
	pool     *WorkerPool
}

// NewPipeline builds a pipeline; with Parallel set a worker pool is started
// and reused across analyses. Call Close when done with a parallel pipeline.
func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{opts: opts}
	if opts.Parallel {
		p.pool = NewWorkerPool(opts.MaxWorkers)
		p.pool.Start()
		p.strategy = &parallelStrategy{pool: p.pool}
	} else {
		p.strategy = sequentialStrategy{}
	}
	return p
}

// Close releases the worker pool, if any.
func (p *Pipeline) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// StrategyName reports how extractors are executed.
func (p *Pipeline) StrategyName() string {
	return p.strategy.Name()
}

// AnalyzeBytes decodes raw image bytes and analyzes them.
func (p *Pipeline) AnalyzeBytes(data []byte) models.AnalysisReport {
	im, err := raster.DecodeBytes(data, p.opts.MaxDimension)
	if err != nil {
		return models.FailureReport(err)
	}
	return p.Analyze(im)
}

// AnalyzeBase64 decodes a base64 payload (optionally a data URL) and
// analyzes it.
func (p *Pipeline) AnalyzeBase64(encoded string) models.AnalysisReport {
	im, err := raster.DecodeBase64(encoded, p.opts.MaxDimension)
	if err != nil {
		return models.FailureReport(err)
	}
	return p.Analyze(im)
}

// Analyze runs the extractors, then the stress aggregate, then the pH proxy.
func (p *Pipeline) Analyze(im *raster.Image) (report models.AnalysisReport) {
	defer func() {
		if r := recover(); r != nil {
			report = models.FailureReport(fmt.Errorf("%v", r))
		}
	}()

	if im == nil || im.PixelCount() == 0 {
		return models.FailureReport(fmt.Errorf("empty image"))
	}

	views := raster.NewColorViews(im)

	set, err := p.strategy.Run(views, p.opts)
	if err != nil {
		return models.FailureReport(err)
	}

	stress := AggregateStress(set, p.opts.Stress)
	ph := PHProxy(set.Color, set.Texture, stress.StressScore)

	return models.AnalysisReport{
		LeafColor:       set.Color,
		ColorUniformity: set.Uniformity,
		Texture:         set.Texture,
		SpotsLesions:    set.Lesions,
		Shape:           set.Shape,
		EdgeCondition:   set.Edges,
		SizeArea:        set.Size,
		VeinVisibility:  set.Veins,
		Glossiness:      set.Gloss,
		Stress:          stress,
		Chlorophyll:     set.Chlorophyll,
		PHProxy:         ph,
	}
}
