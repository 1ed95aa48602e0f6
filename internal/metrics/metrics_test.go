package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(AccessDeniedTotal.WithLabelValues(ScopeOwnership))
	AccessDeniedTotal.WithLabelValues(ScopeOwnership).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(AccessDeniedTotal.WithLabelValues(ScopeOwnership)))

	before = testutil.ToFloat64(MailFailuresTotal)
	MailFailuresTotal.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(MailFailuresTotal))
}
