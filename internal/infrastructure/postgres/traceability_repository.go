package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.TraceabilityRepository = (*TraceabilityRepo)(nil)

const traceColumns = `id, product_id, batch_number, supply_chain, temple_source, shg_processing, qr_url, scan_count, created_at, updated_at`

// TraceabilityRepo implements TraceabilityRepository over PostgreSQL. The
// scan counter is a plain column bumped with a single UPDATE, so concurrent
// scans never lose increments.
type TraceabilityRepo struct {
	q Querier
}

// NewTraceabilityRepository builds the persistence adapter for batches.
func NewTraceabilityRepository(q Querier) *TraceabilityRepo {
	return &TraceabilityRepo{q: q}
}

// Create persists a batch record.
func (r *TraceabilityRepo) Create(ctx context.Context, t *entity.Traceability) error {
	docs, err := marshalTraceDocs(t)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO traceability (` + traceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.BatchNumber,
		docs.supplyChain, docs.temple, docs.processing,
		t.QR.URL, t.QR.ScanCount, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert traceability: %w", err)
	}
	return nil
}

// GetByBatchNumber returns a batch by its number, nil when absent.
func (r *TraceabilityRepo) GetByBatchNumber(ctx context.Context, batchNumber string) (*entity.Traceability, error) {
	row := r.q.QueryRow(ctx, `SELECT `+traceColumns+` FROM traceability WHERE batch_number = $1`, batchNumber)
	t, err := scanTraceability(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// ListByProduct returns all batches for a product, newest first.
func (r *TraceabilityRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Traceability, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+traceColumns+` FROM traceability WHERE product_id = $1 ORDER BY created_at DESC`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("list traceability: %w", err)
	}
	defer rows.Close()

	var list []*entity.Traceability
	for rows.Next() {
		t, err := scanTraceability(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// IncrementScanCount bumps the QR scan counter atomically and returns the
// new value.
func (r *TraceabilityRepo) IncrementScanCount(ctx context.Context, batchNumber string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`UPDATE traceability SET scan_count = scan_count + 1, updated_at = now() WHERE batch_number = $1 RETURNING scan_count`,
		batchNumber).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment scan count: %w", err)
	}
	return count, nil
}

type traceDocs struct {
	supplyChain []byte
	temple      []byte
	processing  []byte
}

func marshalTraceDocs(t *entity.Traceability) (*traceDocs, error) {
	var docs traceDocs
	var err error
	if docs.supplyChain, err = json.Marshal(t.SupplyChain); err != nil {
		return nil, fmt.Errorf("marshal supply chain: %w", err)
	}
	if docs.temple, err = json.Marshal(t.Temple); err != nil {
		return nil, fmt.Errorf("marshal temple source: %w", err)
	}
	if docs.processing, err = json.Marshal(t.Processing); err != nil {
		return nil, fmt.Errorf("marshal shg processing: %w", err)
	}
	return &docs, nil
}

func scanTraceability(row pgx.Row) (*entity.Traceability, error) {
	var t entity.Traceability
	var supplyChain, temple, processing []byte
	err := row.Scan(
		&t.ID, &t.ProductID, &t.BatchNumber,
		&supplyChain, &temple, &processing,
		&t.QR.URL, &t.QR.ScanCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan traceability: %w", err)
	}
	for _, doc := range []struct {
		raw []byte
		dst any
	}{
		{supplyChain, &t.SupplyChain},
		{temple, &t.Temple},
		{processing, &t.Processing},
	} {
		if len(doc.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(doc.raw, doc.dst); err != nil {
			return nil, fmt.Errorf("unmarshal traceability document: %w", err)
		}
	}
	return &t, nil
}
