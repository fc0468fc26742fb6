package domain

import "iter"

// ReportResponse is a batch of independent analytics reports
type ReportResponse struct {
	Reports []Report `json:"reports"`
}

// Report is a single report section: column metadata plus the data rows
type Report struct {
	ColumnHeader ColumnHeader `json:"columnHeader"`
	Data         ReportData   `json:"data"`
}

// ColumnHeader describes the report columns. Dimensions may be nil for
// dimension-less reports.
type ColumnHeader struct {
	Dimensions   []string     `json:"dimensions,omitempty"`
	MetricHeader MetricHeader `json:"metricHeader"`
}

type MetricHeader struct {
	MetricHeaderEntries []MetricHeaderEntry `json:"metricHeaderEntries"`
}

type MetricHeaderEntry struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// ReportData holds the rows of a report. A nil Rows slice means the rows were
// absent from the response, which is not the same as an empty report.
type ReportData struct {
	Rows              []ReportRow       `json:"rows"`
	Totals            []DateRangeValues `json:"totals,omitempty"`
	Minimums          []DateRangeValues `json:"minimums,omitempty"`
	Maximums          []DateRangeValues `json:"maximums,omitempty"`
	RowCount          int               `json:"rowCount,omitempty"`
	IsDataGolden      bool              `json:"isDataGolden,omitempty"`
	DataLastRefreshed string            `json:"dataLastRefreshed,omitempty"`
}

// ReportRow is one data row. Metrics holds one group of values per date range.
type ReportRow struct {
	Dimensions []string          `json:"dimensions,omitempty"`
	Metrics    []DateRangeValues `json:"metrics"`
}

type DateRangeValues struct {
	Values []string `json:"values"`
}

// MetricNames yields the metric names in header order
func (r Report) MetricNames() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, entry := range r.ColumnHeader.MetricHeader.MetricHeaderEntries {
			if !yield(entry.Name) {
				return
			}
		}
	}
}

// MetricCount returns the number of metric columns declared in the header
func (r Report) MetricCount() int {
	return len(r.ColumnHeader.MetricHeader.MetricHeaderEntries)
}

// HasRows reports whether the rows sequence is present, even if empty
func (d ReportData) HasRows() bool {
	return d.Rows != nil
}

// Values yields the metric values of every date range group in order
func (r ReportRow) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, group := range r.Metrics {
			for _, v := range group.Values {
				if !yield(v) {
					return
				}
			}
		}
	}
}
