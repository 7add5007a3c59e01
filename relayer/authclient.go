package relayer

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/identity"
	"github.com/relayerproxy/client/relayerpb"
)

// generateAuthTokens runs the challenge/response handshake: request a
// challenge, sign it with the validator's identity key, and exchange the
// signature for a fresh access/refresh token pair.
func generateAuthTokens(ctx context.Context, auth relayerpb.AuthServiceClient, id *identity.Identity) (Tokens, error) {
	const op = "relayer.generateAuthTokens"
	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	challenge, err := auth.GenerateAuthChallenge(ctx, &relayerpb.GenerateAuthChallengeRequest{
		Pubkey: id.PublicKey(),
	})
	if err != nil {
		return Tokens{}, classifyAuthError(op, err)
	}

	sig := id.Sign(challenge.Challenge)
	resp, err := auth.GenerateAuthTokens(ctx, &relayerpb.GenerateAuthTokensRequest{
		Challenge:          challenge.Challenge,
		ChallengeSignature: sig,
		ClientPubkey:       id.PublicKey(),
	})
	if err != nil {
		return Tokens{}, classifyAuthError(op, err)
	}
	return tokensFromProto(resp), nil
}

// refreshAccessToken exchanges a still-valid refresh token for a new
// access token.
func refreshAccessToken(ctx context.Context, auth relayerpb.AuthServiceClient, refresh Token) (Token, error) {
	const op = "relayer.refreshAccessToken"
	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	resp, err := auth.RefreshAccessToken(ctx, &relayerpb.RefreshAccessTokenRequest{
		RefreshToken: refresh.Value,
	})
	if err != nil {
		return Token{}, classifyAuthError(op, err)
	}
	return tokenFromProto(resp.AccessToken), nil
}

// maybeRefreshAuthTokens refreshes the access token if it is within
// refreshWithin of expiring, and mints an entirely new token pair if the
// refresh token itself is within refreshWithin of expiring (not merely
// already expired) — generating ahead of the deadline avoids the race
// where a refresh token expires between this check and the RPC that would
// have used it.
func maybeRefreshAuthTokens(ctx context.Context, auth relayerpb.AuthServiceClient, id *identity.Identity, current Tokens, refreshWithin time.Duration, now time.Time) (Tokens, bool, error) {
	if current.Refresh.Expiry.Sub(now) <= refreshWithin {
		fresh, err := generateAuthTokens(ctx, auth, id)
		return fresh, true, err
	}
	if current.Access.Expiry.Sub(now) > refreshWithin {
		return current, false, nil
	}
	access, err := refreshAccessToken(ctx, auth, current.Refresh)
	if err != nil {
		return current, false, err
	}
	current.Access = access
	return current, true, nil
}

func tokensFromProto(resp *relayerpb.GenerateAuthTokensResponse) Tokens {
	return Tokens{
		Access:  tokenFromProto(resp.AccessToken),
		Refresh: tokenFromProto(resp.RefreshToken),
	}
}

func tokenFromProto(t relayerpb.Token) Token {
	return Token{Value: t.Value, Expiry: time.Unix(t.ExpiresAtUTC, 0).UTC()}
}

// classifyAuthError maps an auth RPC failure to AuthPermissionDenied when
// the service rejected the request outright, and to AuthConnectionError
// otherwise: a denied challenge is warn-only, a transport failure is
// counted and backed off.
func classifyAuthError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isPermissionDenied(err) {
		return errors.E(op, errors.AuthPermissionDenied, err)
	}
	return errors.E(op, errors.AuthConnectionError, err)
}

func isPermissionDenied(err error) bool {
	return status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated
}
