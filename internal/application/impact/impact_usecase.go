package impact

import (
	"context"
	"time"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

// UseCase public impact reporting and batch traceability.
type UseCase struct {
	metrics repository.ImpactRepository
	traces  repository.TraceabilityRepository
}

// NewUseCase builds the impact use case.
func NewUseCase(metrics repository.ImpactRepository, traces repository.TraceabilityRepository) *UseCase {
	return &UseCase{metrics: metrics, traces: traces}
}

// Metrics returns the snapshots for a period window plus cumulative totals.
// Period defaults to monthly, the window to the last year.
func (uc *UseCase) Metrics(ctx context.Context, q dto.ImpactQuery) (*dto.ImpactMetricsResponse, error) {
	period := q.Period
	if period == "" {
		period = entity.PeriodMonthly
	}
	switch period {
	case entity.PeriodDaily, entity.PeriodWeekly, entity.PeriodMonthly, entity.PeriodYearly:
	default:
		return nil, domain.ErrInvalidInput
	}

	to := time.Now()
	from := to.AddDate(-1, 0, 0)
	if q.From != "" {
		t, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		from = t
	}
	if q.To != "" {
		t, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		to = t
	}

	list, err := uc.metrics.ListByPeriod(ctx, period, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.ImpactMetricsResponse{Metrics: make([]dto.ImpactMetricResponse, 0, len(list))}
	for _, m := range list {
		resp.Metrics = append(resp.Metrics, toMetricResponse(m))
		resp.Totals.FlowersCollectedKg += m.Waste.FlowersCollectedKg
		resp.Totals.FlowersProcessedKg += m.Waste.FlowersProcessedKg
		resp.Totals.CO2EmissionsAvoidedKg += m.Environmental.CO2EmissionsAvoidedKg
		resp.Totals.WaterSavedLiters += m.Environmental.WaterSavedLiters
		resp.Totals.RevenueGeneratedINR += m.Economic.RevenueGeneratedINR
		if m.Social.WomenEmployed > resp.Totals.WomenEmployed {
			// Head counts are levels, not flows; take the peak.
			resp.Totals.WomenEmployed = m.Social.WomenEmployed
		}
	}
	return resp, nil
}

// Summary returns the public headline figures from the latest monthly
// snapshot. All zeros when no snapshot exists yet.
func (uc *UseCase) Summary(ctx context.Context) (*dto.ImpactSummaryResponse, error) {
	latest, err := uc.metrics.LatestByPeriod(ctx, entity.PeriodMonthly)
	if err != nil {
		return nil, err
	}
	resp := &dto.ImpactSummaryResponse{}
	if latest == nil {
		return resp, nil
	}
	resp.FlowersRecycledKg = latest.Waste.FlowersProcessedKg
	resp.CO2SavedKg = latest.Environmental.CO2EmissionsAvoidedKg
	resp.WomenEmployed = latest.Social.WomenEmployed
	resp.TemplesOnboarded = latest.Social.TemplesOnboarded
	resp.SHGUnitsActive = latest.Social.SHGUnitsActive
	resp.RevenueGeneratedINR = latest.Economic.RevenueGeneratedINR
	return resp, nil
}

// TraceabilityByProduct returns every batch recorded for a product, newest
// first.
func (uc *UseCase) TraceabilityByProduct(ctx context.Context, productID string) ([]dto.TraceabilityResponse, error) {
	list, err := uc.traces.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TraceabilityResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTraceabilityResponse(t))
	}
	return items, nil
}

// Scan resolves a batch by number and bumps its QR scan counter.
func (uc *UseCase) Scan(ctx context.Context, batchNumber string) (*dto.ScanResponse, error) {
	count, err := uc.traces.IncrementScanCount(ctx, batchNumber)
	if err != nil {
		return nil, err
	}
	t, err := uc.traces.GetByBatchNumber(ctx, batchNumber)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	t.QR.ScanCount = count
	return &dto.ScanResponse{Batch: toTraceabilityResponse(t), ScanCount: count}, nil
}

func toMetricResponse(m *entity.ImpactMetric) dto.ImpactMetricResponse {
	return dto.ImpactMetricResponse{
		ID:            m.ID,
		Date:          m.Date,
		Period:        m.Period,
		Waste:         m.Waste,
		Environmental: m.Environmental,
		Social:        m.Social,
		Economic:      m.Economic,
		Districts:     m.Districts,
	}
}

func toTraceabilityResponse(t *entity.Traceability) dto.TraceabilityResponse {
	return dto.TraceabilityResponse{
		ID:          t.ID,
		ProductID:   t.ProductID,
		BatchNumber: t.BatchNumber,
		SupplyChain: t.SupplyChain,
		Temple:      t.Temple,
		Processing:  t.Processing,
		QR:          t.QR,
		CreatedAt:   t.CreatedAt,
	}
}
