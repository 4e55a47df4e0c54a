package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	r := New()
	r.Observe("encode", 100, 40, time.Millisecond, nil)
	r.Observe("encode", 10, 0, time.Millisecond, errors.New("boom"))
	r.Observe("decode", 40, 100, 2*time.Millisecond, nil)

	require.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("encode", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("encode", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("decode", "ok")))
	require.Equal(t, 110.0, testutil.ToFloat64(r.bytes.WithLabelValues("encode", "in")))
	require.Equal(t, 40.0, testutil.ToFloat64(r.bytes.WithLabelValues("encode", "out")))
	require.Equal(t, 100.0, testutil.ToFloat64(r.bytes.WithLabelValues("decode", "out")))
	require.Equal(t, 2, testutil.CollectAndCount(r.duration))
}

func TestSetCachedTrees(t *testing.T) {
	r := New()
	r.SetCachedTrees(3)
	require.Equal(t, 3.0, testutil.ToFloat64(r.cachedTrees))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Observe("encode", 1, 1, time.Second, nil)
	r.SetCachedTrees(1)
	require.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Observe("decode", 8, 16, time.Millisecond, nil)
	path := filepath.Join(t.TempDir(), "huff.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `huff_operations_total{op="decode",result="ok"} 1`)
	require.Contains(t, string(data), `huff_bytes_total{direction="out",op="decode"} 16`)
	require.Contains(t, string(data), "huff_operation_duration_seconds_bucket")
}
