package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCache(t *testing.T) {
	before := testutil.ToFloat64(CacheLookups.WithLabelValues("news", "hit"))
	RecordCache("news", true)
	assert.Equal(t, before+1, testutil.ToFloat64(CacheLookups.WithLabelValues("news", "hit")))
}

func TestObserveRequest(t *testing.T) {
	ObserveRequest("GET", "", 200, 10*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration, "dstclan_http_request_duration_seconds"), 1)
}
