package metrics

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	successBefore := testutil.ToFloat64(PipelineOperations.WithLabelValues("metrics_test", ResultSuccess))
	errorBefore := testutil.ToFloat64(PipelineOperations.WithLabelValues("metrics_test", ResultError))

	Observe("metrics_test", time.Now(), nil)
	Observe("metrics_test", time.Now(), nil)
	Observe("metrics_test", time.Now(), errors.New("failed"))

	require.Equal(t, successBefore+2, testutil.ToFloat64(PipelineOperations.WithLabelValues("metrics_test", ResultSuccess)))
	require.Equal(t, errorBefore+1, testutil.ToFloat64(PipelineOperations.WithLabelValues("metrics_test", ResultError)))
	require.Equal(t, 1, testutil.CollectAndCount(PipelineOperationDuration))
}
