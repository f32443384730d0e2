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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, rfq_id, buyer_id, shg_id, product_id, details, delivery, payment, status, timeline, documents, created_at, updated_at`

// OrderRepo implements OrderRepository over PostgreSQL (usable with pool or
// tx). Commercial terms, delivery, payment ledger, timeline and documents
// are embedded JSONB documents.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the persistence adapter for orders.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create claims the next order number from its sequence and persists the
// order. The unique constraint on rfq_id backstops the one-order-per-RFQ
// rule under concurrent creates.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("claim order number: %w", err)
	}
	o.OrderNumber = entity.FormatOrderNumber(seq)

	docs, err := marshalOrderDocs(o)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.RFQID, o.BuyerID, o.SHGID, o.ProductID,
		docs.details, docs.delivery, docs.payment, o.Status, docs.timeline, docs.documents,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID returns an order by id, nil when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	row := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

// Update persists the mutable order fields, embedded documents included.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	docs, err := marshalOrderDocs(o)
	if err != nil {
		return err
	}
	query := `
		UPDATE orders
		SET details = $2, delivery = $3, payment = $4, status = $5,
		    timeline = $6, documents = $7, updated_at = $8
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		o.ID, docs.details, docs.delivery, docs.payment, o.Status,
		docs.timeline, docs.documents, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// List returns the filtered order page, newest first.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	where, args := orderWhere(f)
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Count returns the total rows matching the filter.
func (r *OrderRepo) Count(ctx context.Context, f repository.OrderFilter) (int64, error) {
	where, args := orderWhere(f)
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

func orderWhere(f repository.OrderFilter) (string, []any) {
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
	if f.SHGID != "" {
		add(`shg_id = $%d`, f.SHGID)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type orderDocs struct {
	details   []byte
	delivery  []byte
	payment   []byte
	timeline  []byte
	documents []byte
}

func marshalOrderDocs(o *entity.Order) (*orderDocs, error) {
	var docs orderDocs
	var err error
	if docs.details, err = json.Marshal(o.Details); err != nil {
		return nil, fmt.Errorf("marshal details: %w", err)
	}
	if docs.delivery, err = json.Marshal(o.Delivery); err != nil {
		return nil, fmt.Errorf("marshal delivery: %w", err)
	}
	if docs.payment, err = json.Marshal(o.Payment); err != nil {
		return nil, fmt.Errorf("marshal payment: %w", err)
	}
	if docs.timeline, err = json.Marshal(o.Timeline); err != nil {
		return nil, fmt.Errorf("marshal timeline: %w", err)
	}
	if docs.documents, err = json.Marshal(o.Documents); err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}
	return &docs, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var details, delivery, payment, timeline, documents []byte
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.RFQID, &o.BuyerID, &o.SHGID, &o.ProductID,
		&details, &delivery, &payment, &o.Status, &timeline, &documents,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	for _, doc := range []struct {
		raw []byte
		dst any
	}{
		{details, &o.Details},
		{delivery, &o.Delivery},
		{payment, &o.Payment},
		{timeline, &o.Timeline},
		{documents, &o.Documents},
	} {
		if len(doc.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(doc.raw, doc.dst); err != nil {
			return nil, fmt.Errorf("unmarshal order document: %w", err)
		}
	}
	return &o, nil
}
