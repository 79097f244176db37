package services

import (
	"context"

	"github.com/ipupy/tesoreria_backend/internal/dto"
)

// SummarySvc is the read-only aggregation facade. Every underlying query is
// scope-filtered before aggregation so out-of-scope records never leak into
// totals.
type SummarySvc interface {
	GetSummary(ctx context.Context, principalID string, params dto.SummaryParams) (*dto.SummaryResponse, error)
}
