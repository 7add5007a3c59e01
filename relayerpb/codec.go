package relayerpb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

// JSONCodec implements google.golang.org/grpc/encoding.Codec over
// encoding/json. The request/response types in this package are plain Go
// structs, not generated protobuf messages, so grpc's default "proto"
// codec (which requires a proto.Message) cannot marshal them; callers
// force this codec with grpc.ForceCodec so every RPC on the connection
// goes over the wire as JSON instead.
type JSONCodec struct{}

func (JSONCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string {
	return "json"
}
