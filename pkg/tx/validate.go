package tx

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Klingon-tech/keeta-cli/pkg/crypto"
)

// Limits on request contents.
const (
	MaxOperations    = 64
	MaxTokenDecimals = 18
	MaxNameLength    = 64
	MaxSymbolLength  = 12
)

// Validation errors.
var (
	ErrNoOperations      = errors.New("request has no operations")
	ErrTooManyOperations = errors.New("too many operations")
	ErrMissingAccount    = errors.New("request has no account")
	ErrMissingNetwork    = errors.New("request has no network")
	ErrUnknownOperation  = errors.New("unknown operation type")
	ErrMissingRecipient  = errors.New("send has no recipient")
	ErrSelfSend          = errors.New("send to own account")
	ErrMissingToken      = errors.New("operation has no token")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidToken      = errors.New("invalid token parameters")
	ErrMissingSig        = errors.New("request missing signature")
	ErrInvalidSig        = errors.New("invalid signature")
	ErrWrongSigner       = errors.New("signer does not own the account")
	ErrHashMismatch      = errors.New("hash does not match request")
)

// Validate checks request structure. It does not check balances or
// token ownership; the network does that.
func (r *Request) Validate() error {
	if r.Account.IsZero() {
		return ErrMissingAccount
	}
	if r.Network == "" {
		return ErrMissingNetwork
	}
	if len(r.Operations) == 0 {
		return ErrNoOperations
	}
	if len(r.Operations) > MaxOperations {
		return fmt.Errorf("%w: %d operations, max %d", ErrTooManyOperations, len(r.Operations), MaxOperations)
	}
	for i, op := range r.Operations {
		if err := r.validateOp(op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Type, err)
		}
	}
	return nil
}

func (r *Request) validateOp(op Operation) error {
	switch op.Type {
	case OpSend:
		if op.To.IsZero() {
			return ErrMissingRecipient
		}
		if op.To == r.Account {
			return ErrSelfSend
		}
		if op.Token == "" {
			return ErrMissingToken
		}
		if op.Amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
	case OpMint, OpBurn:
		if op.Token == "" {
			return ErrMissingToken
		}
		if op.Amount.Sign() <= 0 {
			return ErrInvalidAmount
		}
	case OpCreateToken:
		if op.Name == "" || len(op.Name) > MaxNameLength {
			return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidToken, MaxNameLength)
		}
		if op.Symbol == "" || len(op.Symbol) > MaxSymbolLength {
			return fmt.Errorf("%w: symbol must be 1-%d characters", ErrInvalidToken, MaxSymbolLength)
		}
		if op.Decimals > MaxTokenDecimals {
			return fmt.Errorf("%w: decimals %d > %d", ErrInvalidToken, op.Decimals, MaxTokenDecimals)
		}
		if op.Amount.Sign() < 0 {
			return ErrInvalidAmount
		}
	default:
		return ErrUnknownOperation
	}
	return nil
}

// Verify checks the request structure and that the signature was made by
// the request's account.
func (s *SignedRequest) Verify() error {
	if err := s.Request.Validate(); err != nil {
		return err
	}
	if len(s.Signature) == 0 || len(s.PublicKey) == 0 {
		return ErrMissingSig
	}
	if !bytes.Equal(s.PublicKey, s.Request.Account.PublicKey()) {
		return ErrWrongSigner
	}
	hash := s.Request.Hash()
	if !crypto.VerifySignature(s.Request.Account.KeyType(), hash[:], s.Signature, s.PublicKey) {
		return ErrInvalidSig
	}
	return nil
}
