package repository

import (
	"context"

	"github.com/akachour/wird/internal/api/util"
	"github.com/akachour/wird/internal/core/domain"
)

// EntryFilter narrows and paginates entry listings. Entries are append-only,
// so the repository exposes no update or delete operations.
type EntryFilter struct {
	util.ListFilter
}

type EntryRepository interface {
	Insert(ctx context.Context, entry *domain.Entry) error
	ListByUsername(ctx context.Context, username string) ([]*domain.Entry, error)
	ListAll(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
	CountAll(ctx context.Context, filter EntryFilter) (int, error)
}
