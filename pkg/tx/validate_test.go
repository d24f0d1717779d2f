package tx

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

func TestValidate_Valid(t *testing.T) {
	req, _ := validRequest(t)
	if err := req.Validate(); err != nil {
		t.Errorf("valid request should pass: %v", err)
	}
}

func TestValidate_Request(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"no account", func(r *Request) { r.Account = types.Address{} }, ErrMissingAccount},
		{"no network", func(r *Request) { r.Network = "" }, ErrMissingNetwork},
		{"no operations", func(r *Request) { r.Operations = nil }, ErrNoOperations},
		{"too many", func(r *Request) {
			for len(r.Operations) <= MaxOperations {
				r.Operations = append(r.Operations, r.Operations[0])
			}
		}, ErrTooManyOperations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := validRequest(t)
			tt.mutate(req)
			if err := req.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_Operations(t *testing.T) {
	_, self := testKey(t, "sender")
	_, to := testKey(t, "recipient")

	tests := []struct {
		name string
		op   Operation
		want error
	}{
		{"send no recipient", Operation{Type: OpSend, Token: "t", Amount: types.AmountFromUint64(1)}, ErrMissingRecipient},
		{"send to self", Operation{Type: OpSend, To: self, Token: "t", Amount: types.AmountFromUint64(1)}, ErrSelfSend},
		{"send no token", Operation{Type: OpSend, To: to, Amount: types.AmountFromUint64(1)}, ErrMissingToken},
		{"send zero", Operation{Type: OpSend, To: to, Token: "t"}, ErrInvalidAmount},
		{"send negative", Operation{Type: OpSend, To: to, Token: "t", Amount: types.NewAmount(big.NewInt(-1))}, ErrInvalidAmount},
		{"mint no token", Operation{Type: OpMint, Amount: types.AmountFromUint64(1)}, ErrMissingToken},
		{"burn zero", Operation{Type: OpBurn, Token: "t"}, ErrInvalidAmount},
		{"create no name", Operation{Type: OpCreateToken, Symbol: "S"}, ErrInvalidToken},
		{"create long symbol", Operation{Type: OpCreateToken, Name: "N", Symbol: strings.Repeat("S", MaxSymbolLength+1)}, ErrInvalidToken},
		{"create decimals", Operation{Type: OpCreateToken, Name: "N", Symbol: "S", Decimals: MaxTokenDecimals + 1}, ErrInvalidToken},
		{"create negative supply", Operation{Type: OpCreateToken, Name: "N", Symbol: "S", Amount: types.NewAmount(big.NewInt(-5))}, ErrInvalidAmount},
		{"unknown", Operation{Type: "airdrop", Token: "t", Amount: types.AmountFromUint64(1)}, ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := validRequest(t)
			req.Operations = []Operation{tt.op}
			if err := req.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_CreateTokenZeroSupply(t *testing.T) {
	req, _ := validRequest(t)
	req.Operations = []Operation{{Type: OpCreateToken, Name: "Demo", Symbol: "DMO", Decimals: 9}}
	if err := req.Validate(); err != nil {
		t.Errorf("zero initial supply should be allowed: %v", err)
	}
}

func TestVerify_MissingSignature(t *testing.T) {
	req, _ := validRequest(t)
	signed := &SignedRequest{Request: *req}
	if err := signed.Verify(); !errors.Is(err, ErrMissingSig) {
		t.Errorf("Verify() error = %v, want ErrMissingSig", err)
	}
}

func TestVerify_ForeignKey(t *testing.T) {
	req, key := validRequest(t)
	signed, err := req.Sign(key)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	other, _ := testKey(t, "other")
	signed.PublicKey = other.PublicKey()
	if err := signed.Verify(); !errors.Is(err, ErrWrongSigner) {
		t.Errorf("Verify() error = %v, want ErrWrongSigner", err)
	}
}
