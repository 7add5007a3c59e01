package metrics

import (
	"sync"
	"testing"
)

type recordingEmitter struct {
	mu    sync.Mutex
	names []string
}

func (r *recordingEmitter) Emit(name string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

func TestRegisterAndEmit(t *testing.T) {
	rec := &recordingEmitter{}
	Register(rec)
	defer Register(logEmitter{})

	Emit("relayer_stage-stats", map[string]interface{}{"num_packets": 3})
	Warn("relayer_stage-proxy_error", map[string]interface{}{"count": 1})

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.names) != 2 {
		t.Fatalf("got %d emitted datapoints, want 2", len(rec.names))
	}
	if rec.names[0] != "relayer_stage-stats" || rec.names[1] != "relayer_stage-proxy_error" {
		t.Errorf("unexpected datapoint names: %v", rec.names)
	}
}
