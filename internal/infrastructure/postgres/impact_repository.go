package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.ImpactRepository = (*ImpactRepo)(nil)

const impactColumns = `id, date, period, waste_management, environmental_impact, social_impact, economic_impact, district_data, created_at, updated_at`

// ImpactRepo implements ImpactRepository over PostgreSQL.
type ImpactRepo struct {
	q Querier
}

// NewImpactRepository builds the persistence adapter for impact snapshots.
func NewImpactRepository(q Querier) *ImpactRepo {
	return &ImpactRepo{q: q}
}

// Create persists a snapshot.
func (r *ImpactRepo) Create(ctx context.Context, m *entity.ImpactMetric) error {
	docs, err := marshalImpactDocs(m)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO impact_metrics (` + impactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		m.ID, m.Date, m.Period,
		docs.waste, docs.environmental, docs.social, docs.economic, docs.districts,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert impact metric: %w", err)
	}
	return nil
}

// LatestByPeriod returns the newest snapshot for a period, nil when none.
func (r *ImpactRepo) LatestByPeriod(ctx context.Context, period string) (*entity.ImpactMetric, error) {
	row := r.q.QueryRow(ctx,
		`SELECT `+impactColumns+` FROM impact_metrics WHERE period = $1 ORDER BY date DESC LIMIT 1`,
		period)
	m, err := scanImpactMetric(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// ListByPeriod returns snapshots for a period within [from, to], newest
// first.
func (r *ImpactRepo) ListByPeriod(ctx context.Context, period string, from, to time.Time) ([]*entity.ImpactMetric, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+impactColumns+` FROM impact_metrics WHERE period = $1 AND date BETWEEN $2 AND $3 ORDER BY date DESC`,
		period, from, to)
	if err != nil {
		return nil, fmt.Errorf("list impact metrics: %w", err)
	}
	defer rows.Close()

	var list []*entity.ImpactMetric
	for rows.Next() {
		m, err := scanImpactMetric(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

type impactDocs struct {
	waste         []byte
	environmental []byte
	social        []byte
	economic      []byte
	districts     []byte
}

func marshalImpactDocs(m *entity.ImpactMetric) (*impactDocs, error) {
	var docs impactDocs
	var err error
	if docs.waste, err = json.Marshal(m.Waste); err != nil {
		return nil, fmt.Errorf("marshal waste management: %w", err)
	}
	if docs.environmental, err = json.Marshal(m.Environmental); err != nil {
		return nil, fmt.Errorf("marshal environmental impact: %w", err)
	}
	if docs.social, err = json.Marshal(m.Social); err != nil {
		return nil, fmt.Errorf("marshal social impact: %w", err)
	}
	if docs.economic, err = json.Marshal(m.Economic); err != nil {
		return nil, fmt.Errorf("marshal economic impact: %w", err)
	}
	if docs.districts, err = json.Marshal(m.Districts); err != nil {
		return nil, fmt.Errorf("marshal district data: %w", err)
	}
	return &docs, nil
}

func scanImpactMetric(row pgx.Row) (*entity.ImpactMetric, error) {
	var m entity.ImpactMetric
	var waste, environmental, social, economic, districts []byte
	err := row.Scan(
		&m.ID, &m.Date, &m.Period,
		&waste, &environmental, &social, &economic, &districts,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan impact metric: %w", err)
	}
	for _, doc := range []struct {
		raw []byte
		dst any
	}{
		{waste, &m.Waste},
		{environmental, &m.Environmental},
		{social, &m.Social},
		{economic, &m.Economic},
		{districts, &m.Districts},
	} {
		if len(doc.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(doc.raw, doc.dst); err != nil {
			return nil, fmt.Errorf("unmarshal impact document: %w", err)
		}
	}
	return &m, nil
}
