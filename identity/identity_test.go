package identity

import "testing"

func TestSignVerify(t *testing.T) {
	id, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	msg := []byte("relayer challenge")
	sig := id.Sign(msg)
	if !Verify(id.PublicKey(), msg, sig) {
		t.Error("Verify() = false for a valid signature")
	}
	if Verify(id.PublicKey(), []byte("tampered"), sig) {
		t.Error("Verify() = true for a tampered message")
	}
}

func TestStringIsBase58(t *testing.T) {
	id, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(id.String()) == 0 {
		t.Error("String() returned empty pubkey")
	}
}

func TestFromPrivateKeyRejectsWrongSize(t *testing.T) {
	if _, err := FromPrivateKey(make([]byte, 10)); err == nil {
		t.Error("FromPrivateKey() with bad length: want error, got nil")
	}
}
