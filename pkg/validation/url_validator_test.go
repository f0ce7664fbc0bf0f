package validation

import (
	"testing"

	apperrors "go-leaf-inspector/internal/errors"
)

func TestValidateImageURL(t *testing.T) {
	validator := NewURLValidator()

	tests := []struct {
		name    string
		url     string
		wantErr string // empty means valid
	}{
		{"http url", "http://example.com/leaf.jpg", ""},
		{"https url", "https://example.com/leaf.png", ""},
		{"subdomain", "https://cdn.example.com/field/leaf.gif", ""},
		{"ip host", "http://192.168.1.1/leaf.jpg", ""},
		{"empty", "", "URL cannot be empty"},
		{"whitespace", "   \t\n", "URL cannot be empty"},
		{"no scheme", "not-a-url", "URL scheme not allowed"},
		{"ftp scheme", "ftp://example.com/leaf.jpg", "URL scheme not allowed"},
		{"data url", "data:image/png;base64,AAAA", "URL scheme not allowed"},
		{"no host", "http://", "URL must have a valid host"},
		{"no host with path", "http:///leaf.jpg", "URL must have a valid host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateImageURL(tt.url)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected %q to validate, got %v", tt.url, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %q to fail validation", tt.url)
			}
			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Message != tt.wantErr {
				t.Errorf("expected message %q, got %q", tt.wantErr, appErr.Message)
			}
		})
	}
}

func TestValidateImageURL_RestrictedHosts(t *testing.T) {
	validator := NewURLValidatorWithOptions([]string{"https"}, []string{"trusted.example.com"})

	if err := validator.ValidateImageURL("https://trusted.example.com/leaf.jpg"); err != nil {
		t.Errorf("expected allowed host to pass, got %v", err)
	}
	if err := validator.ValidateImageURL("https://other.example.com/leaf.jpg"); err == nil {
		t.Error("expected disallowed host to fail")
	}
	if err := validator.ValidateImageURL("http://trusted.example.com/leaf.jpg"); err == nil {
		t.Error("expected disallowed scheme to fail")
	}
}
