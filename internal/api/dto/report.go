package dto

// CompletionReportResponse maps username to salah completion percentage
// (0-100) over that user's entries.
type CompletionReportResponse struct {
	CompletionRate map[string]float64 `json:"completion_rate"`
}

// TotalsReportResponse maps counter name to per-user sums.
type TotalsReportResponse struct {
	Totals map[string]map[string]int64 `json:"totals"`
}
