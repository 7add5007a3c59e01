package relayer

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/identity"
	"github.com/relayerproxy/client/relayerpb"
)

type fakeAuthClient struct {
	challengeErr error
	tokensErr    error
	refreshErr   error
	denyChallenge bool
}

func (f *fakeAuthClient) GenerateAuthChallenge(ctx context.Context, in *relayerpb.GenerateAuthChallengeRequest, opts ...grpc.CallOption) (*relayerpb.Challenge, error) {
	if f.denyChallenge {
		return nil, status.Error(codes.PermissionDenied, "denied")
	}
	if f.challengeErr != nil {
		return nil, f.challengeErr
	}
	return &relayerpb.Challenge{Challenge: []byte("challenge"), Pubkey: in.Pubkey}, nil
}

func (f *fakeAuthClient) GenerateAuthTokens(ctx context.Context, in *relayerpb.GenerateAuthTokensRequest, opts ...grpc.CallOption) (*relayerpb.GenerateAuthTokensResponse, error) {
	if f.tokensErr != nil {
		return nil, f.tokensErr
	}
	now := time.Now()
	return &relayerpb.GenerateAuthTokensResponse{
		AccessToken:  relayerpb.Token{Value: "access", ExpiresAtUTC: now.Add(time.Hour).Unix()},
		RefreshToken: relayerpb.Token{Value: "refresh", ExpiresAtUTC: now.Add(24 * time.Hour).Unix()},
	}, nil
}

func (f *fakeAuthClient) RefreshAccessToken(ctx context.Context, in *relayerpb.RefreshAccessTokenRequest, opts ...grpc.CallOption) (*relayerpb.RefreshAccessTokenResponse, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &relayerpb.RefreshAccessTokenResponse{
		AccessToken: relayerpb.Token{Value: "new-access", ExpiresAtUTC: time.Now().Add(time.Hour).Unix()},
	}, nil
}

func TestGenerateAuthTokens(t *testing.T) {
	id, err := identity.New()
	if err != nil {
		t.Fatalf("identity.New() error = %v", err)
	}
	tokens, err := generateAuthTokens(context.Background(), &fakeAuthClient{}, id)
	if err != nil {
		t.Fatalf("generateAuthTokens() error = %v", err)
	}
	if tokens.Access.Value != "access" || tokens.Refresh.Value != "refresh" {
		t.Errorf("generateAuthTokens() = %+v", tokens)
	}
}

func TestGenerateAuthTokensPermissionDenied(t *testing.T) {
	id, _ := identity.New()
	_, err := generateAuthTokens(context.Background(), &fakeAuthClient{denyChallenge: true}, id)
	if !errors.Is(errors.AuthPermissionDenied, err) {
		t.Errorf("generateAuthTokens() error kind = %v, want AuthPermissionDenied", errors.KindOf(err))
	}
}

func TestMaybeRefreshAuthTokens(t *testing.T) {
	id, _ := identity.New()
	now := time.Now()
	current := Tokens{
		Access:  Token{Value: "access", Expiry: now.Add(30 * time.Second)},
		Refresh: Token{Value: "refresh", Expiry: now.Add(time.Hour)},
	}

	// Access token still fresh relative to refreshWithin: no refresh.
	_, refreshed, err := maybeRefreshAuthTokens(context.Background(), &fakeAuthClient{}, id, current, 10*time.Second, now)
	if err != nil {
		t.Fatalf("maybeRefreshAuthTokens() error = %v", err)
	}
	if refreshed {
		t.Error("maybeRefreshAuthTokens() refreshed when access token was still fresh")
	}

	// Access token near expiry: refresh just the access token.
	updated, refreshed, err := maybeRefreshAuthTokens(context.Background(), &fakeAuthClient{}, id, current, time.Minute, now)
	if err != nil {
		t.Fatalf("maybeRefreshAuthTokens() error = %v", err)
	}
	if !refreshed || updated.Access.Value != "new-access" {
		t.Errorf("maybeRefreshAuthTokens() = %+v, refreshed=%v", updated, refreshed)
	}
	if updated.Refresh.Value != current.Refresh.Value {
		t.Error("maybeRefreshAuthTokens() changed the refresh token on an access-only refresh")
	}

	// Refresh token expired: mint an entirely new pair.
	expired := current
	expired.Refresh.Expiry = now.Add(-time.Second)
	updated, refreshed, err = maybeRefreshAuthTokens(context.Background(), &fakeAuthClient{}, id, expired, time.Minute, now)
	if err != nil {
		t.Fatalf("maybeRefreshAuthTokens() error = %v", err)
	}
	if !refreshed || updated.Access.Value != "access" || updated.Refresh.Value != "refresh" {
		t.Errorf("maybeRefreshAuthTokens() did not mint a fresh pair: %+v", updated)
	}

	// Refresh token not yet expired but within refreshWithin: still mint
	// an entirely new pair rather than falling through to an access-only
	// refresh that would race the refresh token's own expiry.
	nearExpiry := current
	nearExpiry.Refresh.Expiry = now.Add(30 * time.Second)
	updated, refreshed, err = maybeRefreshAuthTokens(context.Background(), &fakeAuthClient{}, id, nearExpiry, time.Minute, now)
	if err != nil {
		t.Fatalf("maybeRefreshAuthTokens() error = %v", err)
	}
	if !refreshed || updated.Access.Value != "access" || updated.Refresh.Value != "refresh" {
		t.Errorf("maybeRefreshAuthTokens() did not mint a fresh pair for a soon-to-expire refresh token: %+v", updated)
	}
}
