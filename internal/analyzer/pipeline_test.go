package analyzer

import (
	"encoding/json"
	"testing"

	"go-leaf-inspector/internal/raster"
	"go-leaf-inspector/pkg/models"
)

func solidImage(w, h int, r, g, b uint8) *raster.Image {
	im := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			im.Set(x, y, r, g, b)
		}
	}
	return im
}

// healthyLeaf is a uniform mid-green frame.
func healthyLeaf(w, h int) *raster.Image {
	return solidImage(w, h, 60, 140, 70)
}

func TestPipeline_HealthyLeaf(t *testing.T) {
	p := NewPipeline(SequentialOptions())
	report := p.Analyze(healthyLeaf(64, 64))

	if report.Error != "" {
		t.Fatalf("unexpected analysis error: %s", report.Error)
	}
	if got := report.LeafColor.ColorStatus; got != ColorHealthyGreen {
		t.Errorf("expected %q, got %q", ColorHealthyGreen, got)
	}
	if got := report.LeafColor.Assessment; got != AssessmentHealthy {
		t.Errorf("expected %q, got %q", AssessmentHealthy, got)
	}
	if !report.ColorUniformity.IsUniform {
		t.Error("uniform frame should be uniform")
	}
	if !report.Texture.IsSmooth {
		t.Error("uniform frame should be smooth")
	}
	if report.SpotsLesions.HasLesions {
		t.Error("green frame should have no lesions")
	}
	if got := report.EdgeCondition.EdgeStatus; got != EdgesHealthy {
		t.Errorf("expected %q, got %q", EdgesHealthy, got)
	}
	if got := report.Chlorophyll.ChlorophyllStatus; got != ChlorophyllHigh {
		t.Errorf("expected %q, got %q", ChlorophyllHigh, got)
	}
	if got := report.Stress.HealthStatus; got != HealthStatusHealthy {
		t.Errorf("expected %q, got %q", HealthStatusHealthy, got)
	}
	if got := report.PHProxy.PHEstimate; got != PHNormal {
		t.Errorf("expected %q, got %q", PHNormal, got)
	}
	if got := report.PHProxy.Confidence; got != PHConfidence {
		t.Errorf("expected %q, got %q", PHConfidence, got)
	}
}

func TestPipeline_YellowingLeaf(t *testing.T) {
	// top 35% yellow, rest green
	im := healthyLeaf(100, 100)
	for y := 0; y < 35; y++ {
		for x := 0; x < 100; x++ {
			im.Set(x, y, 255, 255, 0)
		}
	}

	p := NewPipeline(SequentialOptions())
	report := p.Analyze(im)

	if got := report.LeafColor.YellowingPercentage; got != 35 {
		t.Errorf("expected 35%% yellowing, got %v", got)
	}
	if got := report.LeafColor.ColorStatus; got != ColorYellowing {
		t.Errorf("expected %q, got %q", ColorYellowing, got)
	}
	if got := report.LeafColor.Assessment; got != AssessmentDeficiency {
		t.Errorf("expected %q, got %q", AssessmentDeficiency, got)
	}
	if report.PHProxy.LowPHIndicators < 1 {
		t.Error("heavy yellowing should count toward the acidic estimate")
	}
}

func TestPipeline_BrownLesions(t *testing.T) {
	// top 40% brown, rest green
	im := healthyLeaf(100, 100)
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			im.Set(x, y, 120, 66, 20)
		}
	}

	p := NewPipeline(SequentialOptions())
	report := p.Analyze(im)

	if got := report.SpotsLesions.BrownSpotsPercentage; got != 40 {
		t.Errorf("expected 40%% brown coverage, got %v", got)
	}
	if got := report.SpotsLesions.LesionStatus; got != LesionsSevere {
		t.Errorf("expected %q, got %q", LesionsSevere, got)
	}
	if !report.SpotsLesions.HasLesions {
		t.Error("expected lesions to be flagged")
	}
}

func TestPipeline_BurntEdges(t *testing.T) {
	// 200x200 frame with a black 20px margin band
	im := solidImage(200, 200, 60, 140, 70)
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			if y < 20 || y >= 180 || x < 20 || x >= 180 {
				im.Set(x, y, 0, 0, 0)
			}
		}
	}

	p := NewPipeline(SequentialOptions())
	report := p.Analyze(im)

	if got := report.EdgeCondition.BurntEdgesPercentage; got != 100 {
		t.Errorf("expected 100%% burnt band, got %v", got)
	}
	if got := report.EdgeCondition.EdgeStatus; got != EdgesBurnt {
		t.Errorf("expected %q, got %q", EdgesBurnt, got)
	}
	if !report.EdgeCondition.EdgeIssuesDetected {
		t.Error("expected edge issues to be flagged")
	}
}

func TestPipeline_AllBlackFrame(t *testing.T) {
	p := NewPipeline(SequentialOptions())
	report := p.Analyze(solidImage(32, 32, 0, 0, 0))

	if report.Error != "" {
		t.Fatalf("black frame must not fail: %s", report.Error)
	}
	if got := report.Shape.ShapeStatus; got != ShapeUndetectable {
		t.Errorf("expected %q, got %q", ShapeUndetectable, got)
	}
	if got := report.SizeArea.SizeStatus; got != SizeUncomputable {
		t.Errorf("expected %q, got %q", SizeUncomputable, got)
	}
	if report.SizeArea.IsStunted {
		t.Error("undetectable leaf must not count as stunted")
	}
}

func TestPipeline_LeafOnDarkBackground(t *testing.T) {
	// bright leaf blob on a dark field: shape and size become measurable
	im := solidImage(100, 100, 10, 10, 10)
	for y := 20; y < 80; y++ {
		for x := 20; x < 80; x++ {
			im.Set(x, y, 60, 180, 80)
		}
	}

	p := NewPipeline(SequentialOptions())
	report := p.Analyze(im)

	if report.Shape.ShapeStatus == ShapeUndetectable {
		t.Fatal("expected a detectable outline")
	}
	if report.Shape.Compactness < 0.5 {
		t.Errorf("square blob should be compact, got %v", report.Shape.Compactness)
	}
	if got := report.SizeArea.LeafAreaPercentage; got < 30 || got > 40 {
		t.Errorf("expected roughly 35%% area, got %v", got)
	}
	if got := report.SizeArea.SizeStatus; got != SizeModerate {
		t.Errorf("expected %q, got %q", SizeModerate, got)
	}
}

func TestPipeline_FailureShapes(t *testing.T) {
	p := NewPipeline(SequentialOptions())

	for name, report := range map[string]models.AnalysisReport{
		"nil image":      p.Analyze(nil),
		"empty image":    p.Analyze(raster.New(0, 0)),
		"garbage bytes":  p.AnalyzeBytes([]byte("not an image")),
		"garbage base64": p.AnalyzeBase64("!!!"),
	} {
		if report.Error == "" {
			t.Errorf("%s: expected an error message", name)
		}
		if report.LeafColor != nil || report.Stress != nil {
			t.Errorf("%s: expected empty features", name)
		}
		data, err := json.Marshal(report)
		if err != nil {
			t.Fatalf("%s: marshal failed: %v", name, err)
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("%s: unmarshal failed: %v", name, err)
		}
		if len(raw) != len(models.FeatureKeys)+1 {
			t.Errorf("%s: expected all feature keys plus error, got %d entries", name, len(raw))
		}
	}
}

func TestPipeline_SequentialParallelEquivalence(t *testing.T) {
	im := healthyLeaf(80, 80)
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			im.Set(x, y, 120, 66, 20)
		}
	}

	seq := NewPipeline(SequentialOptions())
	par := NewPipeline(DefaultOptions().WithWorkers(4))
	defer par.Close()

	if seq.StrategyName() != "sequential" || par.StrategyName() != "parallel" {
		t.Fatalf("unexpected strategies: %s, %s", seq.StrategyName(), par.StrategyName())
	}

	seqJSON, err := json.Marshal(seq.Analyze(im))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	parJSON, err := json.Marshal(par.Analyze(im))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(seqJSON) != string(parJSON) {
		t.Errorf("sequential and parallel runs disagree:\n%s\n%s", seqJSON, parJSON)
	}

	// repeated runs are deterministic
	again, _ := json.Marshal(par.Analyze(im))
	if string(again) != string(parJSON) {
		t.Error("repeated analysis is not deterministic")
	}
}
