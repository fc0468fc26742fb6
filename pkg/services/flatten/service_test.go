package flatten

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_FlattenAll(t *testing.T) {
	reports := loadReports(t, "multiple_reports.json")
	expected, err := FlattenAll(reports, "|")
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 4} {
		svc := NewService(workers)

		actual, err := svc.FlattenAll(context.Background(), reports, "|")

		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}
