package relayer

import (
	"net"
	"strconv"
	"time"

	"github.com/relayerproxy/client/errors"
)

// HeartbeatEvent carries the TPU ingress sockets the relayer reports it is
// currently forwarding packets on. It is cached by the stream consumer and
// re-sent to the downstream heartbeat channel every time a heartbeat
// message arrives, so a slow consumer always has the latest socket pair
// without needing to inspect every packet message.
type HeartbeatEvent struct {
	TPU        *net.UDPAddr
	TPUForward *net.UDPAddr
}

// parseTPUSocket parses an "ip:port" string into a *net.UDPAddr, returning
// a MissingTPUSocket error naming which field was empty or malformed if it
// cannot.
func parseTPUSocket(field, addr string) (*net.UDPAddr, error) {
	const op = "relayer.parseTPUSocket"
	if addr == "" {
		return nil, errors.E(op, errors.MissingTPUSocket, errors.Errorf("%s is empty", field))
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.E(op, errors.MissingTPUSocket, errors.Errorf("%s: %v", field, err))
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.E(op, errors.MissingTPUSocket, errors.Errorf("%s: invalid port %q", field, portStr))
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, errors.E(op, errors.MissingTPUSocket, errors.Errorf("%s: invalid ip %q", field, host))
	}
	return &net.UDPAddr{IP: ip, Port: port}, nil
}

// heartbeatGate tracks the time of the last received heartbeat and reports
// whether it has gone stale, the Go equivalent of comparing
// last_heartbeat_ts.elapsed() against oldest_allowed_heartbeat.
type heartbeatGate struct {
	last time.Time
}

func newHeartbeatGate(now time.Time) *heartbeatGate {
	return &heartbeatGate{last: now}
}

func (g *heartbeatGate) touch(now time.Time) {
	g.last = now
}

func (g *heartbeatGate) expired(now time.Time, oldestAllowed time.Duration) bool {
	return now.Sub(g.last) > oldestAllowed
}
