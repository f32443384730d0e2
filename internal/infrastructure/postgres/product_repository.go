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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, shg_id, name, category, description, specifications, availability, price_min, price_max, certifications, status, images, temple_info, sustainability, created_at, updated_at`

// ProductRepo implements ProductRepository over PostgreSQL (usable with pool
// or tx). Nested documents live in JSONB columns; the price range is kept in
// plain NUMERIC columns so the catalog filters stay indexable.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter for the catalog.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	docs, err := marshalProductDocs(p)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.SHGID, p.Name, p.Category, p.Description,
		docs.specs, docs.availability, p.Pricing.PriceMin, p.Pricing.PriceMax,
		docs.certifications, p.Status, docs.images, docs.temple, docs.sustainability,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID returns a product by id, nil when absent.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Update persists the mutable product fields.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	docs, err := marshalProductDocs(p)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET name = $2, category = $3, description = $4, specifications = $5,
		    availability = $6, price_min = $7, price_max = $8, certifications = $9,
		    status = $10, images = $11, temple_info = $12, sustainability = $13,
		    updated_at = $14
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.Name, p.Category, p.Description, docs.specs,
		docs.availability, p.Pricing.PriceMin, p.Pricing.PriceMax, docs.certifications,
		p.Status, docs.images, docs.temple, docs.sustainability, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List returns the filtered catalog page.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	where, args := productWhere(f)

	order := `created_at`
	if f.SortBy == "price_min" {
		order = `price_min`
	}
	dir := `ASC`
	if f.SortDesc {
		dir = `DESC`
	}

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, order, dir, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count returns the total rows matching the filter.
func (r *ProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int64, error) {
	where, args := productWhere(f)
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// IDsBySHG returns the ids of every product owned by the given shg.
func (r *ProductRepo) IDsBySHG(ctx context.Context, shgID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM products WHERE shg_id = $1`, shgID)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func productWhere(f repository.ProductFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add(`category = $%d`, f.Category)
	}
	if f.Status != "" {
		add(`status = $%d`, f.Status)
	}
	if f.SHGID != "" {
		add(`shg_id = $%d`, f.SHGID)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf(`(name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args)))
	}
	if f.HasPrice {
		if !f.MinPrice.IsZero() {
			add(`price_max >= $%d`, f.MinPrice)
		}
		if !f.MaxPrice.IsZero() {
			add(`price_min <= $%d`, f.MaxPrice)
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type productDocs struct {
	specs          []byte
	availability   []byte
	certifications []byte
	images         []byte
	temple         []byte
	sustainability []byte
}

func marshalProductDocs(p *entity.Product) (*productDocs, error) {
	var docs productDocs
	var err error
	if docs.specs, err = json.Marshal(p.Specifications); err != nil {
		return nil, fmt.Errorf("marshal specifications: %w", err)
	}
	if docs.availability, err = json.Marshal(p.Availability); err != nil {
		return nil, fmt.Errorf("marshal availability: %w", err)
	}
	if docs.certifications, err = json.Marshal(p.Certifications); err != nil {
		return nil, fmt.Errorf("marshal certifications: %w", err)
	}
	if docs.images, err = json.Marshal(p.Images); err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}
	if docs.temple, err = json.Marshal(p.Temple); err != nil {
		return nil, fmt.Errorf("marshal temple info: %w", err)
	}
	if docs.sustainability, err = json.Marshal(p.Sustainability); err != nil {
		return nil, fmt.Errorf("marshal sustainability: %w", err)
	}
	return &docs, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var specs, availability, certifications, images, temple, sustainability []byte
	err := row.Scan(
		&p.ID, &p.SHGID, &p.Name, &p.Category, &p.Description,
		&specs, &availability, &p.Pricing.PriceMin, &p.Pricing.PriceMax,
		&certifications, &p.Status, &images, &temple, &sustainability,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	for _, doc := range []struct {
		raw []byte
		dst any
	}{
		{specs, &p.Specifications},
		{availability, &p.Availability},
		{certifications, &p.Certifications},
		{images, &p.Images},
		{temple, &p.Temple},
		{sustainability, &p.Sustainability},
	} {
		if len(doc.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(doc.raw, doc.dst); err != nil {
			return nil, fmt.Errorf("unmarshal product document: %w", err)
		}
	}
	return &p, nil
}
