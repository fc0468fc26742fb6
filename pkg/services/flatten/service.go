package flatten

import (
	"context"

	"github.com/de-tools/report-flatten/pkg/models/domain"
)

// Service flattens report batches, fanning out to a bounded number of
// workers when there is more than one report.
type Service struct {
	workers int
}

func NewService(workers int) *Service {
	return &Service{workers: workers}
}

func (s *Service) FlattenAll(ctx context.Context, reports []domain.Report, delimiter string) ([]string, error) {
	if s.workers <= 1 || len(reports) <= 1 {
		return FlattenAll(reports, delimiter)
	}
	return FlattenAllConcurrent(ctx, reports, delimiter, s.workers)
}
