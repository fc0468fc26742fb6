// Package flatten turns analytics reports into delimited text, one blob per
// report: a header line of quoted dimension and metric names followed by one
// line per row.
//
// Dimension names, metric names and dimension values are wrapped in double
// quotes verbatim. Embedded quotes or delimiters are not escaped, so a
// dimension value containing a quote character produces output that strict
// CSV readers will reject. Metric values are never quoted.
package flatten

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/de-tools/report-flatten/pkg/models/domain"
)

const lineTerminator = "\n"

// ErrMalformedReport is returned when a report does not have the shape its
// column header declares, or when its rows are missing altogether.
var ErrMalformedReport = errors.New("malformed report")

// FlattenAll flattens every report in order. Processing stops at the first
// malformed report.
func FlattenAll(reports []domain.Report, delimiter string) ([]string, error) {
	result := make([]string, 0, len(reports))
	for i, report := range reports {
		flat, err := FlattenReport(report, delimiter)
		if err != nil {
			return nil, fmt.Errorf("report %d: %w", i, err)
		}
		result = append(result, flat)
	}
	return result, nil
}

// FlattenReport renders a single report as a header line followed by one
// line per row, each terminated by a newline.
func FlattenReport(report domain.Report, delimiter string) (string, error) {
	if !report.Data.HasRows() {
		return "", fmt.Errorf("%w: rows are missing", ErrMalformedReport)
	}

	var b strings.Builder
	header := concat(
		quoted(slices.Values(report.ColumnHeader.Dimensions)),
		quoted(report.MetricNames()),
	)
	writeJoined(&b, header, delimiter)
	b.WriteString(lineTerminator)

	dimensionCount := len(report.ColumnHeader.Dimensions)
	metricCount := report.MetricCount()
	for i, row := range report.Data.Rows {
		if err := checkRow(row, dimensionCount, metricCount); err != nil {
			return "", fmt.Errorf("row %d: %w", i, err)
		}

		if len(row.Dimensions) > 0 {
			writeJoined(&b, quoted(slices.Values(row.Dimensions)), delimiter)
			b.WriteString(delimiter)
		}
		writeJoined(&b, row.Values(), delimiter)
		b.WriteString(lineTerminator)
	}

	return b.String(), nil
}

func checkRow(row domain.ReportRow, dimensionCount, metricCount int) error {
	if len(row.Dimensions) != dimensionCount {
		return fmt.Errorf("%w: %d dimension values, header declares %d",
			ErrMalformedReport, len(row.Dimensions), dimensionCount)
	}
	if len(row.Metrics) == 0 {
		return fmt.Errorf("%w: no date range values", ErrMalformedReport)
	}
	for j, group := range row.Metrics {
		if len(group.Values) != metricCount {
			return fmt.Errorf("%w: date range %d has %d metric values, header declares %d",
				ErrMalformedReport, j, len(group.Values), metricCount)
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}

func quoted(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for s := range seq {
			if !yield(quote(s)) {
				return
			}
		}
	}
}

func concat(seqs ...iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, seq := range seqs {
			for s := range seq {
				if !yield(s) {
					return
				}
			}
		}
	}
}

func writeJoined(b *strings.Builder, seq iter.Seq[string], delimiter string) {
	first := true
	for s := range seq {
		if !first {
			b.WriteString(delimiter)
		}
		b.WriteString(s)
		first = false
	}
}
