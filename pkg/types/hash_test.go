package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHash_String(t *testing.T) {
	var h Hash
	if got := h.String(); got != strings.Repeat("0", 64) {
		t.Errorf("zero hash String() = %s", got)
	}

	h[0] = 0xab
	h[31] = 0xcd
	s := h.String()
	if !strings.HasPrefix(s, "AB") || !strings.HasSuffix(s, "CD") {
		t.Errorf("String() = %s, want upper-case AB...CD", s)
	}
}

func TestHash_BytesCopies(t *testing.T) {
	h := Hash{0x01, 0x02, 0x03}
	b := h.Bytes()
	if len(b) != HashSize || b[0] != 0x01 || b[2] != 0x03 {
		t.Fatalf("Bytes() = %x", b)
	}
	b[0] = 0xff
	if h[0] == 0xff {
		t.Error("Bytes() should return a copy")
	}
}

func TestParseHash(t *testing.T) {
	const upper = "AF1349B9F5F9A1A6A0404DEA36DCC9499BCB25C9ADC112B7CC9A93CAE41F3262"
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"upper case", upper, false},
		{"lower case", strings.ToLower(upper), false},
		{"0x prefix", "0x" + strings.ToLower(upper), false},
		{"too short", "ABCD", true},
		{"too long", upper + "00", true},
		{"invalid character", strings.Repeat("G", 64), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHash(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHash(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHash(%q) error: %v", tt.input, err)
			}
			if h.String() != upper {
				t.Errorf("ParseHash(%q) = %s, want %s", tt.input, h, upper)
			}
		})
	}
}

func TestHash_JSON(t *testing.T) {
	h := Hash{0xde, 0xad, 0xbe, 0xef}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), `"DEADBEEF`) {
		t.Errorf("Marshal = %s", data)
	}

	var got Hash
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != h {
		t.Errorf("roundtrip = %s, want %s", got, h)
	}
}

func TestHash_JSONZero(t *testing.T) {
	data, err := json.Marshal(Hash{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `""` {
		t.Errorf("zero hash = %s, want \"\"", data)
	}

	h := Hash{0x01}
	if err := json.Unmarshal([]byte(`""`), &h); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !h.IsZero() {
		t.Error("empty string should decode to the zero hash")
	}
	if err := json.Unmarshal([]byte(`"zz"`), &h); err == nil {
		t.Error("malformed hash should fail")
	}
}
