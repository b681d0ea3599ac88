package rsacrt

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestJSONParser_SingleObject(t *testing.T) {
	path := writeTempFile(t, "key.json", `{"n": "0xca1", "e": "17", "d": "2753"}`)

	parser := &JSONParser{}
	keys, err := parser.ParseKeyMaterial(path)
	if err != nil {
		t.Fatalf("ParseKeyMaterial failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(keys))
	}
	if keys[0].N.Int64() != 3233 || keys[0].E.Int64() != 17 || keys[0].D.Int64() != 2753 {
		t.Errorf("Parsed (%s, %s, %s), want (3233, 17, 2753)", keys[0].N, keys[0].E, keys[0].D)
	}
}

func TestJSONParser_Array(t *testing.T) {
	path := writeTempFile(t, "keys.json", `[
		{"n": "3233", "e": 17, "d": 2753},
		{"n": "143", "e": "7", "d": "103"}
	]`)

	parser := &JSONParser{}
	keys, err := parser.ParseKeyMaterial(path)
	if err != nil {
		t.Fatalf("ParseKeyMaterial failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Expected 2 keys, got %d", len(keys))
	}
	if keys[1].N.Int64() != 143 {
		t.Errorf("Second n = %s, want 143", keys[1].N)
	}
}

func TestJSONParser_CustomFields(t *testing.T) {
	path := writeTempFile(t, "key.json", `{"modulus": "3233", "pub": "17", "priv": "2753"}`)

	parser := &JSONParser{NField: "modulus", EField: "pub", DField: "priv"}
	keys, err := parser.ParseKeyMaterial(path)
	if err != nil {
		t.Fatalf("ParseKeyMaterial failed: %v", err)
	}
	if keys[0].D.Int64() != 2753 {
		t.Errorf("d = %s, want 2753", keys[0].D)
	}
}

func TestJSONParser_MissingField(t *testing.T) {
	path := writeTempFile(t, "key.json", `{"n": "3233", "e": "17"}`)

	parser := &JSONParser{}
	if _, err := parser.ParseKeyMaterial(path); err == nil {
		t.Fatal("Expected error for missing d field")
	}
}

func TestJSONParser_Fixture2048(t *testing.T) {
	parser := &JSONParser{}
	keys, err := parser.ParseKeyMaterial("../../fixtures/test_key_2048.json")
	if err != nil {
		t.Fatalf("ParseKeyMaterial failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(keys))
	}
	if got := keys[0].N.BitLen(); got != 2048 {
		t.Errorf("Modulus bit length = %d, want 2048", got)
	}
	if keys[0].E.Int64() != 65537 {
		t.Errorf("e = %s, want 65537", keys[0].E)
	}
}

func TestCSVParser(t *testing.T) {
	parser := &CSVParser{}
	keys, err := parser.ParseKeyMaterial("../../fixtures/test_keys_small.csv")
	if err != nil {
		t.Fatalf("ParseKeyMaterial failed: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}
	if keys[0].N.Int64() != 3233 || keys[2].D.Int64() != 103 {
		t.Errorf("Unexpected values: n[0] = %s, d[2] = %s", keys[0].N, keys[2].D)
	}
}

func TestCSVParser_MissingColumn(t *testing.T) {
	path := writeTempFile(t, "keys.csv", "n,e\n3233,17\n")

	parser := &CSVParser{}
	if _, err := parser.ParseKeyMaterial(path); err == nil {
		t.Fatal("Expected error for missing d column")
	}
}

func TestParseBigInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0x10001", 65537},
		{"0Xca1", 3233},
		{"65537", 65537},
		{"ca1", 3233}, // hex letters, no prefix
		{" 2753", 2753},
	}
	for _, tt := range tests {
		z, err := parseBigInt(tt.in)
		if err != nil {
			t.Errorf("parseBigInt(%q) failed: %v", tt.in, err)
			continue
		}
		if z.Int64() != tt.want {
			t.Errorf("parseBigInt(%q) = %s, want %d", tt.in, z, tt.want)
		}
	}

	if _, err := parseBigInt("not-a-number"); err == nil {
		t.Error("Expected error for garbage input")
	}
}
