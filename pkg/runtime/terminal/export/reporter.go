package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type OutputConfig struct {
	// Dir switches the reporter to one file per report when set
	Dir       string
	Extension string
}

func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Extension: "csv",
	}
}

// Reporter writes flattened reports either to a single writer, separated by
// blank lines, or to report_<n>.<ext> files in a directory.
type Reporter struct {
	writer io.Writer
	config OutputConfig
}

func NewReporter(writer io.Writer, config OutputConfig) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if config.Extension == "" {
		config.Extension = DefaultOutputConfig().Extension
	}
	return &Reporter{
		writer: writer,
		config: config,
	}
}

// Handle emits the reports and returns the files written, if any
func (c *Reporter) Handle(reports []string) ([]string, error) {
	if c.config.Dir != "" {
		return c.writeFiles(reports)
	}

	for i, report := range reports {
		if i > 0 {
			if _, err := io.WriteString(c.writer, "\n"); err != nil {
				return nil, fmt.Errorf("failed to write report separator: %w", err)
			}
		}
		if _, err := io.WriteString(c.writer, report); err != nil {
			return nil, fmt.Errorf("failed to write report %d: %w", i, err)
		}
	}
	return nil, nil
}

func (c *Reporter) writeFiles(reports []string) ([]string, error) {
	if err := os.MkdirAll(c.config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(reports))
	for i, report := range reports {
		path := filepath.Join(c.config.Dir, fmt.Sprintf("report_%d.%s", i, c.config.Extension))
		if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %q: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
