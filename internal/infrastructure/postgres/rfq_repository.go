package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.RFQRepository = (*RFQRepo)(nil)

const rfqColumns = `id, rfq_number, buyer_id, product_id, quantity, specifications, status, quotes, timeline, created_at, updated_at`

// RFQRepo implements RFQRepository over PostgreSQL (usable with pool or tx).
// Quotes and timeline are embedded JSONB documents, mirroring their
// append-only semantics.
type RFQRepo struct {
	q Querier
}

// NewRFQRepository builds the persistence adapter for RFQs.
func NewRFQRepository(q Querier) *RFQRepo {
	return &RFQRepo{q: q}
}

// Create claims the next RFQ number from its sequence and persists the RFQ.
func (r *RFQRepo) Create(ctx context.Context, rfq *entity.RFQ) error {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('rfq_number_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("claim rfq number: %w", err)
	}
	rfq.RFQNumber = entity.FormatRFQNumber(seq)

	docs, err := marshalRFQDocs(rfq)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO rfqs (` + rfqColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		rfq.ID, rfq.RFQNumber, rfq.BuyerID, rfq.ProductID,
		docs.quantity, docs.specs, rfq.Status, docs.quotes, docs.timeline,
		rfq.CreatedAt, rfq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rfq: %w", err)
	}
	return nil
}

// GetByID returns an RFQ by id, nil when absent.
func (r *RFQRepo) GetByID(ctx context.Context, id string) (*entity.RFQ, error) {
	row := r.q.QueryRow(ctx, `SELECT `+rfqColumns+` FROM rfqs WHERE id = $1`, id)
	rfq, err := scanRFQ(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rfq, nil
}

// Update persists the mutable RFQ fields, embedded documents included.
func (r *RFQRepo) Update(ctx context.Context, rfq *entity.RFQ) error {
	docs, err := marshalRFQDocs(rfq)
	if err != nil {
		return err
	}
	query := `
		UPDATE rfqs
		SET quantity = $2, specifications = $3, status = $4, quotes = $5,
		    timeline = $6, updated_at = $7
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		rfq.ID, docs.quantity, docs.specs, rfq.Status, docs.quotes,
		docs.timeline, rfq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rfq: %w", err)
	}
	return nil
}

// List returns the filtered RFQ page, newest first.
func (r *RFQRepo) List(ctx context.Context, f repository.RFQFilter) ([]*entity.RFQ, error) {
	where, args := rfqWhere(f)
	query := fmt.Sprintf(`SELECT %s FROM rfqs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		rfqColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rfqs: %w", err)
	}
	defer rows.Close()

	var list []*entity.RFQ
	for rows.Next() {
		rfq, err := scanRFQ(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rfq)
	}
	return list, rows.Err()
}

// Count returns the total rows matching the filter.
func (r *RFQRepo) Count(ctx context.Context, f repository.RFQFilter) (int64, error) {
	where, args := rfqWhere(f)
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rfqs`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count rfqs: %w", err)
	}
	return total, nil
}

func rfqWhere(f repository.RFQFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add(`status = $%d`, f.Status)
	}
	if f.BuyerID != "" {
		add(`buyer_id = $%d`, f.BuyerID)
	}
	if f.ProductID != "" {
		add(`product_id = $%d`, f.ProductID)
	}
	if len(f.ProductIDs) > 0 {
		add(`product_id = ANY($%d)`, f.ProductIDs)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rfqDocs struct {
	quantity []byte
	specs    []byte
	quotes   []byte
	timeline []byte
}

func marshalRFQDocs(rfq *entity.RFQ) (*rfqDocs, error) {
	var docs rfqDocs
	var err error
	if docs.quantity, err = json.Marshal(rfq.Quantity); err != nil {
		return nil, fmt.Errorf("marshal quantity: %w", err)
	}
	if docs.specs, err = json.Marshal(rfq.Specifications); err != nil {
		return nil, fmt.Errorf("marshal specifications: %w", err)
	}
	if docs.quotes, err = json.Marshal(rfq.Quotes); err != nil {
		return nil, fmt.Errorf("marshal quotes: %w", err)
	}
	if docs.timeline, err = json.Marshal(rfq.Timeline); err != nil {
		return nil, fmt.Errorf("marshal timeline: %w", err)
	}
	return &docs, nil
}

func scanRFQ(row pgx.Row) (*entity.RFQ, error) {
	var rfq entity.RFQ
	var quantity, specs, quotes, timeline []byte
	err := row.Scan(
		&rfq.ID, &rfq.RFQNumber, &rfq.BuyerID, &rfq.ProductID,
		&quantity, &specs, &rfq.Status, &quotes, &timeline,
		&rfq.CreatedAt, &rfq.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan rfq: %w", err)
	}
	for _, doc := range []struct {
		raw []byte
		dst any
	}{
		{quantity, &rfq.Quantity},
		{specs, &rfq.Specifications},
		{quotes, &rfq.Quotes},
		{timeline, &rfq.Timeline},
	} {
		if len(doc.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(doc.raw, doc.dst); err != nil {
			return nil, fmt.Errorf("unmarshal rfq document: %w", err)
		}
	}
	return &rfq, nil
}
