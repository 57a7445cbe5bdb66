package dto

import "time"

// CreateEntryRequest represents one day's activity submission. Counters are
// validated non-negative at binding time; the ledger re-checks before
// inserting.
type CreateEntryRequest struct {
	SalahCompleted       bool   `json:"salah_completed"`
	AlAsaasCount         int64  `json:"al_asaas_count" binding:"gte=0"`
	MarbootaShareefCount int64  `json:"marboota_shareef_count" binding:"gte=0"`
	FatihaCount          int64  `json:"fatiha_count" binding:"gte=0"`
	ZikrMufrithCount     int64  `json:"zikr_mufrith_count" binding:"gte=0"`
	Notes                string `json:"notes"`
}

// EntryResponse represents a ledger entry
type EntryResponse struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username"`
	SalahCompleted       bool      `json:"salah_completed"`
	AlAsaasCount         int64     `json:"al_asaas_count"`
	MarbootaShareefCount int64     `json:"marboota_shareef_count"`
	FatihaCount          int64     `json:"fatiha_count"`
	ZikrMufrithCount     int64     `json:"zikr_mufrith_count"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// EntryListResponse represents a list of ledger entries
type EntryListResponse struct {
	Items      []EntryResponse `json:"items"`
	Pagination PaginationInfo  `json:"pagination"`
}
