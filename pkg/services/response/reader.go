package response

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/report-flatten/pkg/models/domain"
)

// Decode reads a JSON encoded report response
func Decode(r io.Reader) (*domain.ReportResponse, error) {
	var resp domain.ReportResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode report response: %w", err)
	}
	return &resp, nil
}

// ReadFile loads a report response from disk
func ReadFile(path string) (*domain.ReportResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
