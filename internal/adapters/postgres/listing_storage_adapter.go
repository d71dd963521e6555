package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/contextkeys"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/domain"
	"github.com/DeepPatel29/airbnbApp-Deep-N01679203/internal/core/port"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const schemaDDL = `
CREATE TABLE IF NOT EXISTS listings (
	seq         BIGSERIAL,
	listing_id  TEXT PRIMARY KEY,
	doc         JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS listings_seq_idx ON listings (seq);`

// PostgresListingAdapter хранит объявления документами jsonb, по строке на объявление.
// Документы бывают обеих форм, как и в коллекции MongoDB.
type PostgresListingAdapter struct {
	pool *pgxpool.Pool
}

var (
	_ port.ListingStoragePort = (*PostgresListingAdapter)(nil)
	_ port.ImportStoragePort  = (*PostgresListingAdapter)(nil)
)

func NewPostgresListingAdapter(pool *pgxpool.Pool) (*PostgresListingAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresListingAdapter{pool: pool}, nil
}

// EnsureSchema создает таблицу listings, если ее еще нет.
func (a *PostgresListingAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("PostgresListingAdapter: failed to ensure schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func scanListing(row pgx.Row) (*domain.DisplayListing, error) {
	var doc map[string]any
	var createdAt, updatedAt time.Time
	if err := row.Scan(&doc, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	l := toDisplay(doc, createdAt, updatedAt)
	return &l, nil
}

func (a *PostgresListingAdapter) Find(ctx context.Context, query domain.ListingQuery, limit int) ([]domain.DisplayListing, error) {
	where, args := applyQuery(query)
	sql := "SELECT doc, created_at, updated_at FROM listings " + where + " ORDER BY seq"
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("PostgresListingAdapter: failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.DisplayListing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("PostgresListingAdapter: failed to scan listing: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresListingAdapter: error during listings iteration: %w", err)
	}
	return listings, nil
}

func (a *PostgresListingAdapter) GetByID(ctx context.Context, id string) (*domain.DisplayListing, error) {
	row := a.pool.QueryRow(ctx, `SELECT doc, created_at, updated_at FROM listings WHERE listing_id = $1`, id)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("PostgresListingAdapter: failed to get listing %s: %w", id, err)
	}
	return l, nil
}

func (a *PostgresListingAdapter) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := a.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE listing_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("PostgresListingAdapter: failed to check listing %s: %w", id, err)
	}
	return exists, nil
}

func (a *PostgresListingAdapter) Create(ctx context.Context, listing domain.DisplayListing) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO listings (listing_id, doc) VALUES ($1, $2::jsonb)`,
		listing.ID, displayDocument(listing),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ListingExistsError{ID: listing.ID}
		}
		return fmt.Errorf("PostgresListingAdapter: failed to insert listing %s: %w", listing.ID, err)
	}
	return nil
}

// Update сливает переданные поля в документ и удаляет их нормализованные синонимы.
func (a *PostgresListingAdapter) Update(ctx context.Context, id string, patch *domain.ListingPatch) (*domain.DisplayListing, error) {
	set := make(map[string]any, len(patch.Fields)+1)
	for key, value := range patch.Fields {
		set[key] = value
	}
	if patch.ImagesSet {
		images := patch.Images
		if images == nil {
			images = []string{}
		}
		set[domain.ImagesKey] = images
	}
	removed := patch.ReplacedAliases()
	if removed == nil {
		removed = []string{}
	}

	row := a.pool.QueryRow(ctx,
		`UPDATE listings SET doc = (doc - $2::text[]) || $3::jsonb, updated_at = now()
		 WHERE listing_id = $1
		 RETURNING doc, created_at, updated_at`,
		id, removed, set,
	)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("PostgresListingAdapter: failed to update listing %s: %w", id, err)
	}
	return l, nil
}

func (a *PostgresListingAdapter) Delete(ctx context.Context, id string) (*domain.DisplayListing, error) {
	row := a.pool.QueryRow(ctx,
		`DELETE FROM listings WHERE listing_id = $1 RETURNING doc, created_at, updated_at`, id)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("PostgresListingAdapter: failed to delete listing %s: %w", id, err)
	}
	return l, nil
}

func (a *PostgresListingAdapter) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// --- импорт ---

func (a *PostgresListingAdapter) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM listings`)
	if err != nil {
		return 0, fmt.Errorf("PostgresListingAdapter: failed to clear listings: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertBatch пишет пачку в одной транзакции. Дубликаты id пропускаются (ON CONFLICT DO NOTHING)
// и возвращаются индексами в *port.BatchInsertError; любая другая ошибка откатывает всю пачку.
func (a *PostgresListingAdapter) InsertBatch(ctx context.Context, batch []domain.NormalizedListing) error {
	if len(batch) == 0 {
		return nil
	}
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresListingAdapter",
		"method":     "InsertBatch",
		"batch_size": len(batch),
	})

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	pgBatch := &pgx.Batch{}
	for _, listing := range batch {
		pgBatch.Queue(
			`INSERT INTO listings (listing_id, doc) VALUES ($1, $2::jsonb) ON CONFLICT (listing_id) DO NOTHING`,
			listing.ID, normalizedDocument(listing),
		)
	}

	results := tx.SendBatch(ctx, pgBatch)
	var failed []int
	var firstDuplicate string
	for i := range batch {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return fmt.Errorf("PostgresListingAdapter: failed to insert listing %s: %w", batch[i].ID, err)
		}
		if tag.RowsAffected() == 0 {
			if len(failed) == 0 {
				firstDuplicate = batch[i].ID
			}
			failed = append(failed, i)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("PostgresListingAdapter: failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if len(failed) > 0 {
		logger.Debug("Batch stored with duplicates skipped", port.Fields{"skipped": len(failed)})
		return &port.BatchInsertError{FailedIndexes: failed, Err: &domain.ListingExistsError{ID: firstDuplicate}}
	}
	return nil
}

func (a *PostgresListingAdapter) InsertOne(ctx context.Context, listing domain.NormalizedListing) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO listings (listing_id, doc) VALUES ($1, $2::jsonb)`,
		listing.ID, normalizedDocument(listing),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ListingExistsError{ID: listing.ID}
		}
		return fmt.Errorf("PostgresListingAdapter: failed to insert listing %s: %w", listing.ID, err)
	}
	return nil
}

func (a *PostgresListingAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.pool.QueryRow(ctx, `SELECT count(*) FROM listings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("PostgresListingAdapter: failed to count listings: %w", err)
	}
	return count, nil
}
