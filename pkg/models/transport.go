package models

// AnalyzeRequest is the JSON body for POST /analyze. Exactly one of URL or
// ImageBase64 must be set. ImageBase64 may carry a data-URL prefix.
type AnalyzeRequest struct {
	URL         string `json:"url,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// LeafAnalysisResponse is the envelope returned by the analyze endpoints.
type LeafAnalysisResponse struct {
	Source            string         `json:"source"`
	Timestamp         string         `json:"timestamp"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
	Resolution        string         `json:"resolution,omitempty"`
	Report            AnalysisReport `json:"feature_analysis"`
	Warnings          []string       `json:"warnings,omitempty"`
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// APIInfo describes the service on the root endpoint.
type APIInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
