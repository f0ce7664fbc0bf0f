package analyzer

import (
	"fmt"
	"sync"

	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

// featureSet collects the ten extractors that depend only on the image. The
// stress aggregate and pH proxy derive from these afterwards.
type featureSet struct {
	Color       *models.LeafColorResult
	Uniformity  *models.ColorUniformityResult
	Texture     *models.TextureResult
	Lesions     *models.SpotsLesionsResult
	Shape       *models.ShapeDeformationResult
	Edges       *models.EdgeConditionResult
	Size        *models.SizeAreaResult
	Veins       *models.VeinVisibilityResult
	Gloss       *models.GlossinessResult
	Chlorophyll *models.ChlorophyllResult
}

// executionStrategy runs the independent extractors against one image.
// Implementations must fill every featureSet field and produce identical
// results for the same input.
type executionStrategy interface {
	Name() string
	Run(v *raster.ColorViews, opts Options) (*featureSet, error)
}

// extractorTasks enumerates the independent extractors by feature-set slot.
func extractorTasks(set *featureSet, v *raster.ColorViews, opts Options) []func() {
	return []func(){
		func() { set.Color = LeafColor(v) },
		func() { set.Uniformity = ColorUniformity(v, opts.UniformityWindow) },
		func() { set.Texture = Texture(v, opts.CannyLow, opts.CannyHigh) },
		func() { set.Lesions = SpotsLesions(v) },
		func() { set.Shape = ShapeDeformation(v, opts.SimplifyFraction) },
		func() { set.Edges = EdgeCondition(v) },
		func() { set.Size = SizeArea(v) },
		func() { set.Veins = VeinVisibility(v, opts.CannyLow, opts.CannyHigh) },
		func() { set.Gloss = Glossiness(v, opts.GlossWindow) },
		func() { set.Chlorophyll = Chlorophyll(v) },
	}
}

// sequentialStrategy runs the extractors one after another.
type sequentialStrategy struct{}

func (sequentialStrategy) Name() string { return "sequential" }

func (sequentialStrategy) Run(v *raster.ColorViews, opts Options) (set *featureSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			set, err = nil, fmt.Errorf("feature extraction panicked: %v", r)
		}
	}()
	set = &featureSet{}
	for _, task := range extractorTasks(set, v, opts) {
		task()
	}
	return set, nil
}

// parallelStrategy fans the extractors out over a worker pool. Each task
// writes its own featureSet slot, so no synchronization beyond the wait
// group is needed.
type parallelStrategy struct {
	pool *WorkerPool
}

func (*parallelStrategy) Name() string { return "parallel" }

func (s *parallelStrategy) Run(v *raster.ColorViews, opts Options) (*featureSet, error) {
	set := &featureSet{}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, task := range extractorTasks(set, v, opts) {
		task := task
		wg.Add(1)
		s.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("feature extraction panicked: %v", r)
					}
					mu.Unlock()
				}
			}()
			task()
		})
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return set, nil
}
