package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
)

// ComparePeriodsQuery requests a period-over-period comparison. When the
// previous range is zero-valued it defaults to the window of the same
// length immediately before the current one.
type ComparePeriodsQuery struct {
	UserID        uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	PrevStartDate time.Time
	PrevEndDate   time.Time
}

// ComparePeriodsHandler builds the period-over-period read model.
type ComparePeriodsHandler struct {
	summary *GetPeriodSummaryHandler
}

// NewComparePeriodsHandler creates a new compare periods handler.
func NewComparePeriodsHandler(summary *GetPeriodSummaryHandler) *ComparePeriodsHandler {
	return &ComparePeriodsHandler{summary: summary}
}

// Handle executes the compare periods query.
func (h *ComparePeriodsHandler) Handle(ctx context.Context, query ComparePeriodsQuery) (*domain.PeriodComparison, error) {
	start := domain.NormalizeDate(query.StartDate)
	end := domain.NormalizeDate(query.EndDate)

	prevStart := query.PrevStartDate
	prevEnd := query.PrevEndDate
	if prevStart.IsZero() || prevEnd.IsZero() {
		length := int(end.Sub(start).Hours()/24) + 1
		prevEnd = start.AddDate(0, 0, -1)
		prevStart = prevEnd.AddDate(0, 0, -(length - 1))
	}

	current, err := h.summary.Handle(ctx, GetPeriodSummaryQuery{
		UserID:    query.UserID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, err
	}

	previous, err := h.summary.Handle(ctx, GetPeriodSummaryQuery{
		UserID:    query.UserID,
		StartDate: prevStart,
		EndDate:   prevEnd,
	})
	if err != nil {
		return nil, err
	}

	comparison := domain.ComparePeriods(*current, *previous)
	return &comparison, nil
}
