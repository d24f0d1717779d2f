package tx

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/Klingon-tech/keeta-cli/pkg/crypto"
	"github.com/Klingon-tech/keeta-cli/pkg/types"
)

// testKey returns a deterministic signer and its address.
func testKey(t *testing.T, label string) (crypto.Signer, types.Address) {
	t.Helper()
	secret := crypto.DeriveKey("keeta-cli tx test", []byte(label))
	key, err := crypto.Ed25519FromSeed(secret[:])
	if err != nil {
		t.Fatalf("Ed25519FromSeed() error: %v", err)
	}
	addr, err := types.NewAddress(key.KeyType(), key.PublicKey())
	if err != nil {
		t.Fatalf("NewAddress() error: %v", err)
	}
	return key, addr
}

// validRequest creates a minimal valid send request for testing.
func validRequest(t *testing.T) (*Request, crypto.Signer) {
	t.Helper()
	key, from := testKey(t, "sender")
	_, to := testKey(t, "recipient")
	req := NewBuilder("test", from).
		SetPrevious(types.Hash{0x01}).
		SetTimestamp(time.UnixMilli(1_700_000_000_000)).
		Send(to, "keeta_base", big.NewInt(1000)).
		Build()
	return req, key
}

func TestBuilder_Fields(t *testing.T) {
	req, _ := validRequest(t)

	if req.Version != RequestVersion {
		t.Errorf("Version = %d, want %d", req.Version, RequestVersion)
	}
	if req.Timestamp != 1_700_000_000_000 {
		t.Errorf("Timestamp = %d", req.Timestamp)
	}
	if len(req.Operations) != 1 || req.Operations[0].Type != OpSend {
		t.Fatalf("Operations = %+v", req.Operations)
	}
	if req.Operations[0].Amount.String() != "1000" {
		t.Errorf("Amount = %s, want 1000", req.Operations[0].Amount)
	}
}

func TestBuilder_DefaultTimestamp(t *testing.T) {
	_, addr := testKey(t, "a")
	req := NewBuilder("test", addr).Mint("tok", big.NewInt(1)).Build()
	if req.Timestamp == 0 {
		t.Error("Build() should stamp the current time")
	}
}

func TestBuilder_AllOperations(t *testing.T) {
	_, addr := testKey(t, "issuer")
	_, to := testKey(t, "to")
	req := NewBuilder("main", addr).
		CreateToken("Demo", "DMO", 6, big.NewInt(0)).
		Mint("tok", big.NewInt(5)).
		Burn("tok", big.NewInt(2)).
		Send(to, "tok", big.NewInt(1)).
		Build()

	want := []OpType{OpCreateToken, OpMint, OpBurn, OpSend}
	for i, op := range req.Operations {
		if op.Type != want[i] {
			t.Errorf("op %d = %s, want %s", i, op.Type, want[i])
		}
	}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestSign_Verify(t *testing.T) {
	req, key := validRequest(t)

	signed, err := req.Sign(key)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	if err := signed.Verify(); err != nil {
		t.Errorf("Verify() error: %v", err)
	}
	if signed.Hash() != req.Hash() {
		t.Error("signed hash should equal request hash")
	}

	signed.Request.Operations[0].Amount = types.AmountFromUint64(1001)
	if err := signed.Verify(); !errors.Is(err, ErrInvalidSig) {
		t.Errorf("tampered Verify() error = %v, want ErrInvalidSig", err)
	}
}

func TestSign_AllKeyTypes(t *testing.T) {
	secret := crypto.DeriveKey("keeta-cli tx test", []byte("schemes"))
	k1, _ := crypto.PrivateKeyFromBytes(secret[:])
	r1, _ := crypto.P256FromBytes(secret[:])
	_, to := testKey(t, "to")

	for _, key := range []crypto.Signer{k1, r1} {
		addr, _ := types.NewAddress(key.KeyType(), key.PublicKey())
		req := NewBuilder("test", addr).Send(to, "tok", big.NewInt(3)).Build()
		signed, err := req.Sign(key)
		if err != nil {
			t.Fatalf("%s Sign() error: %v", key.KeyType(), err)
		}
		if err := signed.Verify(); err != nil {
			t.Errorf("%s Verify() error: %v", key.KeyType(), err)
		}
	}
}

func TestSign_WrongSigner(t *testing.T) {
	req, _ := validRequest(t)
	other, _ := testKey(t, "intruder")
	if _, err := req.Sign(other); !errors.Is(err, ErrWrongSigner) {
		t.Errorf("Sign() error = %v, want ErrWrongSigner", err)
	}
}

func TestSign_Invalid(t *testing.T) {
	_, addr := testKey(t, "empty")
	key, _ := testKey(t, "empty")
	req := NewBuilder("test", addr).Build()
	if _, err := req.Sign(key); !errors.Is(err, ErrNoOperations) {
		t.Errorf("Sign() error = %v, want ErrNoOperations", err)
	}
}

func TestSignedRequest_JSONRoundtrip(t *testing.T) {
	req, key := validRequest(t)
	signed, err := req.Sign(key)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	data, err := json.Marshal(signed)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var back SignedRequest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back.Hash() != signed.Hash() {
		t.Error("hash changed across JSON round trip")
	}
	if err := back.Verify(); err != nil {
		t.Errorf("Verify() after round trip error: %v", err)
	}
}

func TestSignedRequest_UnmarshalHashMismatch(t *testing.T) {
	req, key := validRequest(t)
	signed, _ := req.Sign(key)
	data, _ := json.Marshal(signed)

	var raw map[string]json.RawMessage
	json.Unmarshal(data, &raw)
	raw["hash"] = json.RawMessage(`"` + types.Hash{0xff}.String() + `"`)
	data, _ = json.Marshal(raw)

	var back SignedRequest
	if err := json.Unmarshal(data, &back); !errors.Is(err, ErrHashMismatch) {
		t.Errorf("Unmarshal() error = %v, want ErrHashMismatch", err)
	}
}
