package relayer

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/identity"
	"github.com/relayerproxy/client/relayerpb"
)

type fakeStream struct {
	responses []*relayerpb.SubscribePacketsResponse
	i         int
}

func (f *fakeStream) Recv() (*relayerpb.SubscribePacketsResponse, error) {
	if f.i >= len(f.responses) {
		return nil, io.EOF
	}
	r := f.responses[f.i]
	f.i++
	return r, nil
}

func TestStreamConsumerRoutesPacketsAndEndsOnDisconnect(t *testing.T) {
	id, _ := identity.New()
	packets := make(chan PacketBatch, 1)
	verified := make(chan VerifiedPacketBatch, 1)
	heartbeats := make(chan HeartbeatEvent, 1)

	stream := &fakeStream{responses: []*relayerpb.SubscribePacketsResponse{
		{Batch: &relayerpb.PacketBatchMsg{Packets: []relayerpb.Packet{{Data: []byte{1}}}}},
		{Heartbeat: &relayerpb.HeartbeatMsg{Count: 1}},
	}}

	c := &StreamConsumer{
		Stream:     stream,
		Auth:       &fakeAuthClient{},
		Identity:   id,
		Router:     &Router{Packets: packets, VerifiedPackets: verified},
		Heartbeats: heartbeats,
		tokens:     &tokenCell{},
	}

	cfg := Config{
		AuthServiceAddr:           "a",
		BackendAddr:               "b",
		ExpectedHeartbeatInterval: time.Hour,
		OldestAllowedHeartbeat:    time.Hour,
	}
	err := c.Run(context.Background(), cfg)
	if !errors.Is(errors.GrpcStreamDisconnected, err) {
		t.Fatalf("Run() error = %v, want GrpcStreamDisconnected", err)
	}

	select {
	case <-packets:
	default:
		t.Error("packet batch was never routed")
	}
	select {
	case <-heartbeats:
	default:
		t.Error("heartbeat event was never delivered")
	}
}

func TestStreamConsumerHeartbeatExpiry(t *testing.T) {
	id, _ := identity.New()
	stream := &fakeStream{} // unused: an empty fakeStream returns io.EOF on its first Recv

	c := &StreamConsumer{
		Stream:     blockingStream{},
		Auth:       &fakeAuthClient{},
		Identity:   id,
		Router:     &Router{Packets: make(chan PacketBatch, 1), VerifiedPackets: make(chan VerifiedPacketBatch, 1)},
		Heartbeats: make(chan HeartbeatEvent, 1),
		tokens:     &tokenCell{},
	}
	_ = stream

	cfg := Config{
		AuthServiceAddr:           "a",
		BackendAddr:               "b",
		ExpectedHeartbeatInterval: 10 * time.Millisecond,
		OldestAllowedHeartbeat:    15 * time.Millisecond,
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := c.Run(ctx, cfg)
	if !errors.Is(errors.HeartbeatExpired, err) {
		t.Fatalf("Run() error = %v, want HeartbeatExpired", err)
	}
}

// blockingStream never resolves Recv, simulating an idle but still-open
// stream so the heartbeat ticker, not the message channel, fires first.
type blockingStream struct{}

func (blockingStream) Recv() (*relayerpb.SubscribePacketsResponse, error) {
	select {}
}

func TestStreamConsumerIdentityChanged(t *testing.T) {
	handshake, _ := identity.New()
	rotated, _ := identity.New()

	c := &StreamConsumer{
		Stream:          blockingStream{},
		Auth:            &fakeAuthClient{},
		Identity:        handshake,
		ClusterIdentity: NewIdentityWatch(rotated),
		Router:          &Router{Packets: make(chan PacketBatch, 1), VerifiedPackets: make(chan VerifiedPacketBatch, 1)},
		Heartbeats:      make(chan HeartbeatEvent, 1),
		tokens:          &tokenCell{},
	}

	cfg := Config{
		AuthServiceAddr:           "a",
		BackendAddr:               "b",
		ExpectedHeartbeatInterval: time.Hour,
		OldestAllowedHeartbeat:    time.Hour,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := c.Run(ctx, cfg)
	if !errors.Is(errors.IdentityChanged, err) {
		t.Fatalf("Run() error = %v, want IdentityChanged", err)
	}
}
