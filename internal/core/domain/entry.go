package domain

import "time"

// Counter names for the four tracked recitations. Entries are append-only:
// every submission inserts a new row and rows are never updated or deleted.
const (
	CounterAlAsaas         = "al_asaas_count"
	CounterMarbootaShareef = "marboota_shareef_count"
	CounterFatiha          = "fatiha_count"
	CounterZikrMufrith     = "zikr_mufrith_count"
)

// CounterNames lists the valid counter column names in display order.
var CounterNames = []string{
	CounterAlAsaas,
	CounterMarbootaShareef,
	CounterFatiha,
	CounterZikrMufrith,
}

type Entry struct {
	ID                   int64     `db:"id"`
	Username             string    `db:"username"`
	SalahCompleted       bool      `db:"salah_completed"`
	AlAsaasCount         int64     `db:"al_asaas_count"`
	MarbootaShareefCount int64     `db:"marboota_shareef_count"`
	FatihaCount          int64     `db:"fatiha_count"`
	ZikrMufrithCount     int64     `db:"zikr_mufrith_count"`
	Notes                string    `db:"notes"`
	CreatedAt            time.Time `db:"created_at"`
}

func NewEntry(username string, salahCompleted bool, alAsaas, marbootaShareef, fatiha, zikrMufrith int64, notes string) *Entry {
	return &Entry{
		Username:             username,
		SalahCompleted:       salahCompleted,
		AlAsaasCount:         alAsaas,
		MarbootaShareefCount: marbootaShareef,
		FatihaCount:          fatiha,
		ZikrMufrithCount:     zikrMufrith,
		Notes:                notes,
		CreatedAt:            time.Now(),
	}
}

// Counter returns the named counter value. The bool reports whether the
// name is one of CounterNames.
func (e *Entry) Counter(name string) (int64, bool) {
	switch name {
	case CounterAlAsaas:
		return e.AlAsaasCount, true
	case CounterMarbootaShareef:
		return e.MarbootaShareefCount, true
	case CounterFatiha:
		return e.FatihaCount, true
	case CounterZikrMufrith:
		return e.ZikrMufrithCount, true
	default:
		return 0, false
	}
}
