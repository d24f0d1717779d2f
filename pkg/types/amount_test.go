package types

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestAmount_JSON(t *testing.T) {
	big1, _ := new(big.Int).SetString("340282366920938463463374607431768211457", 10)
	a := NewAmount(big1)

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"340282366920938463463374607431768211457"` {
		t.Errorf("Marshal() = %s", data)
	}

	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back.Int().Cmp(big1) != 0 {
		t.Errorf("round trip = %s, want %s", back, big1)
	}

	if err := json.Unmarshal([]byte(`42`), &back); err != nil || back.String() != "42" {
		t.Errorf("Unmarshal(42) = %s, %v", back, err)
	}
}

func TestAmount_UnmarshalInvalid(t *testing.T) {
	for _, in := range []string{`"1.5"`, `"abc"`, `1e3`, `true`, `""`} {
		var a Amount
		if err := json.Unmarshal([]byte(in), &a); err == nil {
			t.Errorf("Unmarshal(%s) should fail, got %s", in, a)
		}
	}
}

func TestAmount_Zero(t *testing.T) {
	var a Amount
	if a.Sign() != 0 || a.String() != "0" || a.Int().Sign() != 0 || a.Bytes() != nil {
		t.Error("zero Amount should behave as 0")
	}
}

func TestAmount_Copies(t *testing.T) {
	v := big.NewInt(10)
	a := NewAmount(v)
	v.SetInt64(99)
	if a.String() != "10" {
		t.Errorf("NewAmount should copy, got %s", a)
	}
	a.Int().SetInt64(5)
	if a.String() != "10" {
		t.Errorf("Int() should return a copy, got %s", a)
	}
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("1000")
	if err != nil || a.Int().Int64() != 1000 {
		t.Errorf("ParseAmount(1000) = %s, %v", a, err)
	}
	if AmountFromUint64(7).String() != "7" {
		t.Error("AmountFromUint64(7) should be 7")
	}
}
