package observability

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveClone(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.ObserveClone(10*time.Millisecond, domain.Summary{Machines: 1, States: 2, Transitions: 1, AnyStateTransitions: 1}, nil)
	m.ObserveClone(time.Millisecond, domain.Summary{States: 99}, errors.New("boom"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.clones.WithLabelValues(StatusSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.clones.WithLabelValues(StatusError)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.nodes.WithLabelValues("state")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.nodes.WithLabelValues("transition")))

	count, err := testutil.GatherAndCount(registry, "animclone_clone_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_ReportWarning(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.ReportWarning(domain.Warning{Kind: domain.WarningResolution})
	m.ReportWarning(domain.Warning{Kind: domain.WarningResolution})
	m.ReportWarning(domain.Warning{Kind: domain.WarningStructuralDrop})

	expected := `
# HELP animclone_warnings_total Degradations reported while cloning, by kind
# TYPE animclone_warnings_total counter
animclone_warnings_total{kind="resolution"} 2
animclone_warnings_total{kind="structural_drop"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "animclone_warnings_total"))
}

func TestMetrics_ObserveRegistration(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveRegistration(5, 2, 0)
	m.ObserveRegistration(1, 0, 1)

	assert.Equal(t, float64(6), testutil.ToFloat64(m.registration.WithLabelValues("registered")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.registration.WithLabelValues("conflict")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.registration.WithLabelValues("failed")))
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewMetrics(registry)
	assert.Panics(t, func() { NewMetrics(registry) })
}
