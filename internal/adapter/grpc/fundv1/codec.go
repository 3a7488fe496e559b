// Package fundv1 defines the FundService gRPC contract: message structs, the service
// descriptor and client/server stubs.
//
// Messages are plain structs carried by a JSON codec registered under the "json"
// content-subtype, not protobuf types. Timestamps are therefore int64 epoch seconds
// instead of timestamppb.Timestamp, and decimals are strings. There are no proto file
// descriptors, so the server does not register reflection.
package fundv1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype clients select with grpc.CallContentSubtype
const CodecName = "json"

// Codec marshals FundService messages as JSON
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}
