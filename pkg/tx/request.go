// Package tx builds and signs operation requests submitted to the network.
package tx

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/keeta-cli/pkg/crypto"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// RequestVersion is the current request encoding version.
const RequestVersion = 1

// OpType names an operation.
type OpType string

const (
	OpSend        OpType = "send"
	OpMint        OpType = "mint"
	OpBurn        OpType = "burn"
	OpCreateToken OpType = "create_token"
)

// opCode returns the byte used for t in signing bytes.
func (t OpType) opCode() byte {
	switch t {
	case OpSend:
		return 1
	case OpMint:
		return 2
	case OpBurn:
		return 3
	case OpCreateToken:
		return 4
	default:
		return 0
	}
}

// Request is a batch of operations issued by one account.
type Request struct {
	Version    uint32        `json:"version"`
	Network    string        `json:"network"`
	Account    types.Address `json:"account"`
	Previous   types.Hash    `json:"previous"`
	Timestamp  int64         `json:"timestamp"` // unix milliseconds
	Operations []Operation   `json:"operations"`
}

// Operation is a single ledger action. Which fields apply depends on Type:
// send uses To, Token, Amount; mint and burn use Token, Amount;
// create_token uses Name, Symbol, Decimals and Amount as initial supply.
type Operation struct {
	Type     OpType        `json:"type"`
	To       types.Address `json:"to"`
	Token    string        `json:"token,omitempty"`
	Amount   types.Amount  `json:"amount"`
	Name     string        `json:"name,omitempty"`
	Symbol   string        `json:"symbol,omitempty"`
	Decimals uint8         `json:"decimals,omitempty"`
}

// Hash returns the BLAKE3 hash of the signing bytes.
func (r *Request) Hash() types.Hash {
	return crypto.Hash(r.SigningBytes())
}

// SigningBytes returns the canonical byte representation used for signing.
// Format: version(4) | network | account(34) | previous(32) | timestamp(8) |
// op_count(4) | [type(1) | to(34) | token | amount | name | symbol | decimals(1)]...
// Variable-length fields are prefixed with their length(4).
func (r *Request) SigningBytes() []byte {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, r.Version)
	buf = appendBytes(buf, []byte(r.Network))
	buf = append(buf, r.Account[:]...)
	buf = append(buf, r.Previous[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(r.Timestamp))

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(r.Operations)))
	for _, op := range r.Operations {
		buf = append(buf, op.Type.opCode())
		buf = append(buf, op.To[:]...)
		buf = appendBytes(buf, []byte(op.Token))
		buf = appendBytes(buf, op.Amount.Bytes())
		buf = appendBytes(buf, []byte(op.Name))
		buf = appendBytes(buf, []byte(op.Symbol))
		buf = append(buf, op.Decimals)
	}
	return buf
}

func appendBytes(buf, b []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

// SignedRequest is a request with the issuer's signature.
type SignedRequest struct {
	Request   Request
	PublicKey []byte
	Signature []byte
}

// signedJSON is the JSON representation with hex-encoded key and signature.
type signedJSON struct {
	Request   Request    `json:"request"`
	Hash      types.Hash `json:"hash"`
	PublicKey string     `json:"public_key"`
	Signature string     `json:"signature"`
}

// MarshalJSON encodes the request with its hash and hex-encoded key and signature.
func (s SignedRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(signedJSON{
		Request:   s.Request,
		Hash:      s.Request.Hash(),
		PublicKey: hex.EncodeToString(s.PublicKey),
		Signature: hex.EncodeToString(s.Signature),
	})
}

// UnmarshalJSON decodes a signed request. The hash field must match the request.
func (s *SignedRequest) UnmarshalJSON(data []byte) error {
	var j signedJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	pub, err := hex.DecodeString(j.PublicKey)
	if err != nil {
		return fmt.Errorf("public key: %w", err)
	}
	sig, err := hex.DecodeString(j.Signature)
	if err != nil {
		return fmt.Errorf("signature: %w", err)
	}
	if !j.Hash.IsZero() && j.Hash != j.Request.Hash() {
		return ErrHashMismatch
	}
	*s = SignedRequest{Request: j.Request, PublicKey: pub, Signature: sig}
	return nil
}

// Hash returns the hash of the signed request.
func (s *SignedRequest) Hash() types.Hash {
	return s.Request.Hash()
}
