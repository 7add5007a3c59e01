package relayer

import (
	"github.com/relayerproxy/client/errors"
)

// PacketBatch is a batch of serialized, as-received packets that have not
// been verified as belonging to a whitelisted sender.
type PacketBatch [][]byte

// VerifiedPacketBatch is a batch of packets the relayer has already
// verified, routed separately so a trusting consumer can skip redundant
// verification.
type VerifiedPacketBatch [][]byte

// Router fans a decoded packet batch out to either the untrusted or the
// verified channel, depending on Config.TrustPackets.
type Router struct {
	Packets         chan<- PacketBatch
	VerifiedPackets chan<- VerifiedPacketBatch
}

// Route sends batch to the channel selected by trustPackets. It returns a
// PacketForwardError if the destination channel is full or has no
// receiver ready.
func (r *Router) Route(batch [][]byte, trustPackets bool) error {
	const op = "relayer.Router.Route"
	if trustPackets {
		select {
		case r.VerifiedPackets <- VerifiedPacketBatch(batch):
			return nil
		default:
			return errors.E(op, errors.PacketForwardError, errors.Str("verified packet channel is full"))
		}
	}
	select {
	case r.Packets <- PacketBatch(batch):
		return nil
	default:
		return errors.E(op, errors.PacketForwardError, errors.Str("packet channel is full"))
	}
}

// Stats accumulates the counters reported once per metrics tick via
// relayer_stage-stats, then resets to zero.
type Stats struct {
	NumEmptyMessages uint64
	NumPackets       uint64
	NumHeartbeats    uint64
}

// Report emits the accumulated counters as a datapoint and returns a fresh
// zeroed Stats.
func (s Stats) Report(emit func(name string, fields map[string]interface{})) Stats {
	emit("relayer_stage-stats", map[string]interface{}{
		"num_empty_messages": s.NumEmptyMessages,
		"num_packets":        s.NumPackets,
		"num_heartbeats":     s.NumHeartbeats,
	})
	return Stats{}
}
