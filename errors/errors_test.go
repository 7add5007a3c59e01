package errors

import "testing"

func TestE(t *testing.T) {
	inner := E("dial", AuthConnectionError, Str("connection refused"))
	outer := E("connect", inner)

	if got := KindOf(outer); got != AuthConnectionError {
		t.Errorf("KindOf(outer) = %v; want %v", got, AuthConnectionError)
	}
	if got := Op(outer); got != "connect" {
		t.Errorf("Op(outer) = %q; want %q", got, "connect")
	}
	if got := Op(inner); got != "dial" {
		t.Errorf("Op(inner) = %q; want %q", got, "dial")
	}
}

func TestKindDeduplication(t *testing.T) {
	inner := E("dial", HeartbeatExpired, Str("timed out"))
	outer := E("connect", HeartbeatExpired, inner)

	e, ok := outer.(*Error)
	if !ok {
		t.Fatalf("outer is not *Error")
	}
	wrapped, ok := e.Err.(*Error)
	if !ok {
		t.Fatalf("inner is not *Error")
	}
	if wrapped.Kind != Other {
		t.Errorf("inner Kind = %v; want Other (deduplicated)", wrapped.Kind)
	}
}

func TestIs(t *testing.T) {
	err := E("subscribe", GrpcStreamDisconnected, Str("EOF"))
	if !Is(GrpcStreamDisconnected, err) {
		t.Errorf("Is(GrpcStreamDisconnected, err) = false; want true")
	}
	if Is(HeartbeatExpired, err) {
		t.Errorf("Is(HeartbeatExpired, err) = true; want false")
	}
}

func TestMatch(t *testing.T) {
	got := E("subscribe", GrpcStreamDisconnected, Str("EOF"))
	want := E(GrpcStreamDisconnected)
	if !Match(got, want) {
		t.Errorf("Match(%v, %v) = false; want true", got, want)
	}
}
