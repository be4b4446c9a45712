package metric

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ObserveSave(t *testing.T) {
	r := NewRegistry()

	r.ObserveSave(2*time.Millisecond, 69, nil)
	r.ObserveSave(time.Millisecond, 3, errors.New("commit failed"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.SavesTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SavesTotal.WithLabelValues(ResultError)))
	assert.Equal(t, 69.0, testutil.ToFloat64(r.FieldsWritten))
	assert.Equal(t, 1, testutil.CollectAndCount(r.SaveDuration))
}

func TestRegistry_ObserveTransition(t *testing.T) {
	r := NewRegistry()

	r.ObserveTransition("offline")
	r.ObserveTransition("offline")
	r.ObserveTransition("online")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.RunStateTransitions.WithLabelValues("offline")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RunStateTransitions.WithLabelValues("online")))
}

func TestRegistry_Nil(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveSave(time.Second, 1, nil)
		r.ObserveTransition("online")
	})
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveSave(time.Millisecond, 69, nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `prefmirror_saves_total{result="ok"} 1`)
}

func TestRegistry_WriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.ObserveTransition("offline")

	path := filepath.Join(t.TempDir(), "prefmirror.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `prefmirror_runstate_transitions_total{to="offline"} 1`))
}
