// Command relayer-client runs the relayer proxy client: it authenticates
// to an auth service, opens a packet-subscription stream to a relayer
// backend, and forwards packets and heartbeats over channels for a
// validator's transaction-ingest pipeline to consume.
package main

import (
	"context"
	"flag"
	"sync/atomic"

	"github.com/relayerproxy/client/config"
	"github.com/relayerproxy/client/flags"
	"github.com/relayerproxy/client/identity"
	"github.com/relayerproxy/client/log"
	"github.com/relayerproxy/client/relayer"
	"github.com/relayerproxy/client/shutdown"
)

func main() {
	flags.Enable("log_level", "identity", "config")
	flag.Parse()

	if err := log.SetLevel(flags.LogLevel()); err != nil {
		log.Fatalf("relayer-client: %v", err)
	}

	id, err := identity.LoadFile(flags.Identity())
	if err != nil {
		log.Fatalf("relayer-client: loading identity: %v", err)
	}

	cfg, err := config.FromFile(flags.Config())
	if err != nil {
		log.Fatalf("relayer-client: loading config: %v", err)
	}

	packets := make(chan relayer.PacketBatch, 1024)
	verified := make(chan relayer.VerifiedPacketBatch, 1024)
	heartbeats := make(chan relayer.HeartbeatEvent, 1)

	go drain(packets)
	go drainVerified(verified)
	go drainHeartbeats(heartbeats)

	exit := &atomic.Bool{}
	shutdown.Handle(func() { exit.Store(true) })

	supervisor := &relayer.ConnectionSupervisor{
		Config:          relayer.NewConfigWatch(cfg),
		Identity:        id,
		ClusterIdentity: relayer.NewIdentityWatch(id),
		Packets:         packets,
		Verified:        verified,
		Heartbeats:      heartbeats,
		Exit:            exit,
	}

	log.Printf("relayer-client: connecting to auth=%s backend=%s as %s", cfg.AuthServiceAddr, cfg.BackendAddr, id)
	supervisor.Run(context.Background())
	log.Printf("relayer-client: exiting")
}

func drain(packets <-chan relayer.PacketBatch) {
	for range packets {
	}
}

func drainVerified(verified <-chan relayer.VerifiedPacketBatch) {
	for range verified {
	}
}

func drainHeartbeats(heartbeats <-chan relayer.HeartbeatEvent) {
	for range heartbeats {
	}
}
