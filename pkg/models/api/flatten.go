package api

// FlattenResponse carries one delimited text blob per input report, in input order
type FlattenResponse struct {
	Delimiter string   `json:"delimiter"`
	Reports   []string `json:"reports"`
}
