package service

import (
	"context"

	"github.com/spec-kit/dispatch-service/internal/repository"
	apperrors "github.com/spec-kit/dispatch-service/pkg/util/errorutil"
)

// ShiftAnalytics summarizes the shift plan for the analytics view.
type ShiftAnalytics struct {
	Total           int            `json:"total"`
	ByType          map[string]int `json:"by_type"`
	ByStatus        map[string]int `json:"by_status"`
	AssignmentRatio float64        `json:"assignment_ratio"`
}

// AnalyticsService computes aggregate shift figures.
type AnalyticsService struct {
	shifts repository.ShiftRepository
}

// NewAnalyticsService creates the service.
func NewAnalyticsService(shifts repository.ShiftRepository) *AnalyticsService {
	return &AnalyticsService{shifts: shifts}
}

// Overview returns counts by type and status plus the share of
// assigned shifts.
func (s *AnalyticsService) Overview(ctx context.Context) (*ShiftAnalytics, error) {
	byType, err := s.shifts.CountByType(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	byStatus, err := s.shifts.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	total := 0
	for _, count := range byStatus {
		total += count
	}
	ratio := 0.0
	if total > 0 {
		ratio = float64(byStatus["ASSIGNED"]) / float64(total)
	}

	return &ShiftAnalytics{
		Total:           total,
		ByType:          byType,
		ByStatus:        byStatus,
		AssignmentRatio: ratio,
	}, nil
}
