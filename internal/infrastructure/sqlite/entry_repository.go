package sqlite

import (
	"context"
	"fmt"

	"github.com/akachour/wird/internal/core/domain"
	"github.com/akachour/wird/internal/core/repository"
)

const entryColumns = `id, username, salah_completed, al_asaas_count, marboota_shareef_count,
	fatiha_count, zikr_mufrith_count, notes, created_at`

type entryRepository struct {
	db *DB
}

func NewEntryRepository(db *DB) repository.EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	query := `
		INSERT INTO activity_entry (username, salah_completed, al_asaas_count,
		                            marboota_shareef_count, fatiha_count, zikr_mufrith_count,
		                            notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		entry.Username,
		entry.SalahCompleted,
		entry.AlAsaasCount,
		entry.MarbootaShareefCount,
		entry.FatihaCount,
		entry.ZikrMufrithCount,
		entry.Notes,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.ID = id

	return nil
}

func (r *entryRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Entry, error) {
	query := "SELECT " + entryColumns + `
		FROM activity_entry
		WHERE username = ?
		ORDER BY created_at DESC, id DESC
	`
	entries := []*domain.Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, username); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func (r *entryRepository) ListAll(ctx context.Context, filter repository.EntryFilter) ([]*domain.Entry, error) {
	query := "SELECT " + entryColumns + " FROM activity_entry WHERE 1=1"
	args := []interface{}{}

	query, args = ApplyFilters(query, args, filter.Filters)
	query = ApplyOrdering(query, filter.Order, "created_at DESC, id DESC")
	query, args = ApplyPagination(query, args, filter.Page, filter.PerPage)

	entries := []*domain.Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func (r *entryRepository) CountAll(ctx context.Context, filter repository.EntryFilter) (int, error) {
	query := "SELECT COUNT(*) FROM activity_entry WHERE 1=1"
	args := []interface{}{}

	query, args = ApplyFilters(query, args, filter.Filters)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}
