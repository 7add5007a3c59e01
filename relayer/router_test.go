package relayer

import "testing"

func TestRouterRoutesByTrust(t *testing.T) {
	packets := make(chan PacketBatch, 1)
	verified := make(chan VerifiedPacketBatch, 1)
	r := &Router{Packets: packets, VerifiedPackets: verified}

	if err := r.Route([][]byte{{1, 2}}, false); err != nil {
		t.Fatalf("Route(untrusted) error = %v", err)
	}
	select {
	case <-packets:
	default:
		t.Error("untrusted batch was not delivered to Packets")
	}

	if err := r.Route([][]byte{{3, 4}}, true); err != nil {
		t.Fatalf("Route(trusted) error = %v", err)
	}
	select {
	case <-verified:
	default:
		t.Error("trusted batch was not delivered to VerifiedPackets")
	}
}

func TestRouterErrorsOnFullChannel(t *testing.T) {
	packets := make(chan PacketBatch) // unbuffered, no receiver
	r := &Router{Packets: packets, VerifiedPackets: make(chan VerifiedPacketBatch, 1)}
	if err := r.Route([][]byte{{1}}, false); err == nil {
		t.Error("Route() with no receiver: want error, got nil")
	}
}

func TestStatsReport(t *testing.T) {
	s := Stats{NumPackets: 5, NumHeartbeats: 2, NumEmptyMessages: 1}
	var gotName string
	var gotFields map[string]interface{}
	next := s.Report(func(name string, fields map[string]interface{}) {
		gotName, gotFields = name, fields
	})
	if gotName != "relayer_stage-stats" {
		t.Errorf("Report emitted %q, want relayer_stage-stats", gotName)
	}
	if gotFields["num_packets"] != uint64(5) {
		t.Errorf("num_packets = %v, want 5", gotFields["num_packets"])
	}
	if next != (Stats{}) {
		t.Errorf("Report() did not reset stats: %+v", next)
	}
}
