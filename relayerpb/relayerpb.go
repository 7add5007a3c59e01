// Package relayerpb declares the wire-level request/response types and
// client stubs for the relayer's AuthService and Relayer gRPC services.
// The wire protocol itself is an external contract this client does not
// own; this package is the hand-maintained Go-side binding to it, in the
// shape protoc-gen-go-grpc would otherwise generate.
package relayerpb

import (
	"context"

	"google.golang.org/grpc"
)

// Challenge is returned by GenerateAuthChallenge and must be signed by the
// caller's identity key before being presented to GenerateAuthTokens.
type Challenge struct {
	Challenge []byte
	Pubkey    []byte
}

// GenerateAuthChallengeRequest identifies the caller requesting a
// challenge.
type GenerateAuthChallengeRequest struct {
	Pubkey []byte
}

// GenerateAuthTokensRequest presents a signed challenge back to the auth
// service in exchange for a token pair.
type GenerateAuthTokensRequest struct {
	Challenge          []byte
	ChallengeSignature []byte
	ClientPubkey       []byte
}

// Token is a single bearer token with its absolute expiry.
type Token struct {
	Value        string
	ExpiresAtUTC int64
}

// GenerateAuthTokensResponse carries the freshly minted token pair.
type GenerateAuthTokensResponse struct {
	AccessToken  Token
	RefreshToken Token
}

// RefreshAccessTokenRequest exchanges a still-valid refresh token for a new
// access token.
type RefreshAccessTokenRequest struct {
	RefreshToken string
}

// RefreshAccessTokenResponse carries the renewed access token.
type RefreshAccessTokenResponse struct {
	AccessToken Token
}

// AuthServiceClient is the client-side interface to the relayer's
// authentication service.
type AuthServiceClient interface {
	GenerateAuthChallenge(ctx context.Context, in *GenerateAuthChallengeRequest, opts ...grpc.CallOption) (*Challenge, error)
	GenerateAuthTokens(ctx context.Context, in *GenerateAuthTokensRequest, opts ...grpc.CallOption) (*GenerateAuthTokensResponse, error)
	RefreshAccessToken(ctx context.Context, in *RefreshAccessTokenRequest, opts ...grpc.CallOption) (*RefreshAccessTokenResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAuthServiceClient builds an AuthServiceClient bound to cc.
func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func (c *authServiceClient) GenerateAuthChallenge(ctx context.Context, in *GenerateAuthChallengeRequest, opts ...grpc.CallOption) (*Challenge, error) {
	out := new(Challenge)
	if err := c.cc.Invoke(ctx, "/auth.AuthService/GenerateAuthChallenge", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) GenerateAuthTokens(ctx context.Context, in *GenerateAuthTokensRequest, opts ...grpc.CallOption) (*GenerateAuthTokensResponse, error) {
	out := new(GenerateAuthTokensResponse)
	if err := c.cc.Invoke(ctx, "/auth.AuthService/GenerateAuthTokens", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) RefreshAccessToken(ctx context.Context, in *RefreshAccessTokenRequest, opts ...grpc.CallOption) (*RefreshAccessTokenResponse, error) {
	out := new(RefreshAccessTokenResponse)
	if err := c.cc.Invoke(ctx, "/auth.AuthService/RefreshAccessToken", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTpuConfigsRequest is empty; the relayer reports the configs it is
// currently forwarding to.
type GetTpuConfigsRequest struct{}

// GetTpuConfigsResponse carries the TPU and TPU-forward socket addresses
// packets should be treated as destined for.
type GetTpuConfigsResponse struct {
	TPU        string
	TPUForward string
}

// SubscribePacketsRequest is empty; subscription parameters are implied by
// the authenticated session.
type SubscribePacketsRequest struct{}

// Packet is a single serialized network packet as relayed from the
// validator's TPU ingress.
type Packet struct {
	Data []byte
}

// PacketBatchMsg carries zero or more packets.
type PacketBatchMsg struct {
	Packets []Packet
}

// HeartbeatMsg is sent periodically by the relayer to prove liveness.
type HeartbeatMsg struct {
	Count uint64
}

// SubscribePacketsResponse is a oneof between a packet batch and a
// heartbeat; exactly one of the two fields is non-nil.
type SubscribePacketsResponse struct {
	Batch     *PacketBatchMsg
	Heartbeat *HeartbeatMsg
}

// RelayerClient is the client-side interface to the relayer's packet feed.
type RelayerClient interface {
	GetTpuConfigs(ctx context.Context, in *GetTpuConfigsRequest, opts ...grpc.CallOption) (*GetTpuConfigsResponse, error)
	SubscribePackets(ctx context.Context, in *SubscribePacketsRequest, opts ...grpc.CallOption) (Relayer_SubscribePacketsClient, error)
}

// Relayer_SubscribePacketsClient is the server-streaming response handle
// for SubscribePackets.
type Relayer_SubscribePacketsClient interface {
	Recv() (*SubscribePacketsResponse, error)
}

type relayerClient struct {
	cc grpc.ClientConnInterface
}

// NewRelayerClient builds a RelayerClient bound to cc.
func NewRelayerClient(cc grpc.ClientConnInterface) RelayerClient {
	return &relayerClient{cc: cc}
}

func (c *relayerClient) GetTpuConfigs(ctx context.Context, in *GetTpuConfigsRequest, opts ...grpc.CallOption) (*GetTpuConfigsResponse, error) {
	out := new(GetTpuConfigsResponse)
	if err := c.cc.Invoke(ctx, "/relayer.Relayer/GetTpuConfigs", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var relayerSubscribePacketsStreamDesc = &grpc.StreamDesc{
	StreamName:    "SubscribePackets",
	ServerStreams: true,
}

func (c *relayerClient) SubscribePackets(ctx context.Context, in *SubscribePacketsRequest, opts ...grpc.CallOption) (Relayer_SubscribePacketsClient, error) {
	stream, err := c.cc.NewStream(ctx, relayerSubscribePacketsStreamDesc, "/relayer.Relayer/SubscribePackets", opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &relayerSubscribePacketsClient{stream}, nil
}

type relayerSubscribePacketsClient struct {
	grpc.ClientStream
}

func (x *relayerSubscribePacketsClient) Recv() (*SubscribePacketsResponse, error) {
	m := new(SubscribePacketsResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
