package transport

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-leaf-inspector/internal/analyzer"
	"go-leaf-inspector/internal/config"
	"go-leaf-inspector/internal/observer"
	"go-leaf-inspector/internal/repository"
	"go-leaf-inspector/internal/service"
	"go-leaf-inspector/pkg/models"

	"github.com/gin-gonic/gin"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 10 * 1024 * 1024,
	}

	pipeline := analyzer.NewPipeline(analyzer.SequentialOptions())
	t.Cleanup(pipeline.Close)
	images := repository.NewLeafImageRepository(nil, 1600)
	metrics := observer.NewMetricsObserver()
	svc := service.NewLeafAnalysisService(images, pipeline, nil)

	return NewHandler(svc, metrics, cfg)
}

func leafPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 60, G: 140, B: 70, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestHandler_AnalyzeBase64(t *testing.T) {
	handler := testHandler(t)

	payload := fmt.Sprintf(`{"image_base64":%q}`, base64.StdEncoding.EncodeToString(leafPNG(t)))
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response models.LeafAnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if response.Source != "base64_upload" {
		t.Errorf("unexpected source %q", response.Source)
	}
	if response.Resolution != "16x16" {
		t.Errorf("unexpected resolution %q", response.Resolution)
	}
	if response.Report.LeafColor == nil {
		t.Error("expected populated leaf color feature")
	}

	// the wire shape carries every feature key
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	var features map[string]json.RawMessage
	if err := json.Unmarshal(raw["feature_analysis"], &features); err != nil {
		t.Fatalf("feature_analysis missing: %v", err)
	}
	for _, key := range models.FeatureKeys {
		if _, ok := features[key]; !ok {
			t.Errorf("missing feature key %q", key)
		}
	}
}

func TestHandler_AnalyzeValidation(t *testing.T) {
	handler := testHandler(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"empty body", ``, http.StatusBadRequest},
		{"neither input", `{}`, http.StatusBadRequest},
		{"both inputs", `{"url":"https://example.com/a.jpg","image_base64":"AAAA"}`, http.StatusBadRequest},
		{"invalid url", `{"url":"not-a-url"}`, http.StatusBadRequest},
		{"undecodable base64 image", `{"image_base64":"bm90IGFuIGltYWdl"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
			var errResp models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil || errResp.Error == "" {
				t.Errorf("expected an error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestHandler_AnalyzeFile(t *testing.T) {
	handler := testHandler(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "leaf.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(leafPNG(t)); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/analyze/file", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response models.LeafAnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if response.Source != "file_upload:leaf.png" {
		t.Errorf("unexpected source %q", response.Source)
	}

	// missing form field
	req = httptest.NewRequest("POST", "/analyze/file", strings.NewReader("nope"))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing file, got %d", rec.Code)
	}
}

func TestHandler_InfoHealthMetrics(t *testing.T) {
	handler := testHandler(t)

	for path, expect := range map[string]string{
		"/":        "endpoints",
		"/health":  "available",
		"/metrics": "total_analyses",
	} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), expect) {
			t.Errorf("%s: expected body to mention %q, got %s", path, expect, rec.Body.String())
		}
	}
}
