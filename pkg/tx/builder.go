package tx

import (
	"fmt"
	"math/big"
	"time"

	"github.com/Klingon-tech/keeta-cli/pkg/crypto"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// Builder constructs requests incrementally.
type Builder struct {
	req *Request
}

// NewBuilder creates a builder for requests issued by account on network.
func NewBuilder(network string, account types.Address) *Builder {
	return &Builder{
		req: &Request{
			Version: RequestVersion,
			Network: network,
			Account: account,
		},
	}
}

// SetPrevious sets the hash of the account's current head block.
func (b *Builder) SetPrevious(h types.Hash) *Builder {
	b.req.Previous = h
	return b
}

// SetTimestamp sets the request time.
func (b *Builder) SetTimestamp(t time.Time) *Builder {
	b.req.Timestamp = t.UnixMilli()
	return b
}

// Send adds a token transfer.
func (b *Builder) Send(to types.Address, token string, amount *big.Int) *Builder {
	b.req.Operations = append(b.req.Operations, Operation{
		Type:   OpSend,
		To:     to,
		Token:  token,
		Amount: types.NewAmount(amount),
	})
	return b
}

// Mint adds supply to a token the account controls.
func (b *Builder) Mint(token string, amount *big.Int) *Builder {
	b.req.Operations = append(b.req.Operations, Operation{
		Type:   OpMint,
		Token:  token,
		Amount: types.NewAmount(amount),
	})
	return b
}

// Burn destroys tokens held by the account.
func (b *Builder) Burn(token string, amount *big.Int) *Builder {
	b.req.Operations = append(b.req.Operations, Operation{
		Type:   OpBurn,
		Token:  token,
		Amount: types.NewAmount(amount),
	})
	return b
}

// CreateToken adds a token creation with an optional initial supply.
func (b *Builder) CreateToken(name, symbol string, decimals uint8, supply *big.Int) *Builder {
	b.req.Operations = append(b.req.Operations, Operation{
		Type:     OpCreateToken,
		Name:     name,
		Symbol:   symbol,
		Decimals: decimals,
		Amount:   types.NewAmount(supply),
	})
	return b
}

// Build returns the constructed request.
// Does NOT validate; call Validate() separately.
func (b *Builder) Build() *Request {
	if b.req.Timestamp == 0 {
		b.req.Timestamp = time.Now().UnixMilli()
	}
	return b.req
}

// Sign validates the request and signs its hash. The signer must own the
// request's account.
func (r *Request) Sign(signer crypto.Signer) (*SignedRequest, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	owner, err := types.NewAddress(signer.KeyType(), signer.PublicKey())
	if err != nil {
		return nil, fmt.Errorf("signer address: %w", err)
	}
	if owner != r.Account {
		return nil, fmt.Errorf("%w: signer is %s, request account is %s", ErrWrongSigner, owner, r.Account)
	}

	hash := r.Hash()
	sig, err := signer.Sign(hash[:])
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	return &SignedRequest{
		Request:   *r,
		PublicKey: signer.PublicKey(),
		Signature: sig,
	}, nil
}
