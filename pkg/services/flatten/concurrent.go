package flatten

import (
	"context"
	"fmt"

	"github.com/de-tools/report-flatten/pkg/models/domain"
	"golang.org/x/sync/errgroup"
)

// FlattenAllConcurrent produces the same output as FlattenAll but flattens up
// to limit reports at a time. A limit below one means no limit.
func FlattenAllConcurrent(
	ctx context.Context,
	reports []domain.Report,
	delimiter string,
	limit int,
) ([]string, error) {
	result := make([]string, len(reports))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, report := range reports {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			flat, err := FlattenReport(report, delimiter)
			if err != nil {
				return fmt.Errorf("report %d: %w", i, err)
			}
			result[i] = flat
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
