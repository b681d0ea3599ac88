package rsacrt

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// KeyParser defines the interface for parsing key material from various
// sources.
type KeyParser interface {
	// ParseKeyMaterial parses one or more (n, e, d) triples from a source
	// file.
	ParseKeyMaterial(source string) ([]*KeyMaterial, error)
}

// JSONParser parses key material from JSON files.
type JSONParser struct {
	NField string // Field name for the modulus (default: "n")
	EField string // Field name for the public exponent (default: "e")
	DField string // Field name for the private exponent (default: "d")
}

// ParseKeyMaterial parses key material from a JSON file holding either a
// single object or an array of objects:
//
//	{"n": "0x95b1…", "e": "0x10001", "d": "0xdf0c…"}
//
// Values may be hex strings (with or without 0x prefix), decimal strings or
// plain numbers.
func (p *JSONParser) ParseKeyMaterial(jsonFile string) ([]*KeyMaterial, error) {
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "rsacrt: failed to read file")
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		decoder = json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		var single map[string]interface{}
		if err := decoder.Decode(&single); err != nil {
			return nil, errors.Wrap(err, "rsacrt: failed to parse JSON")
		}
		items = []map[string]interface{}{single}
	}

	nField := p.NField
	if nField == "" {
		nField = "n"
	}
	eField := p.EField
	if eField == "" {
		eField = "e"
	}
	dField := p.DField
	if dField == "" {
		dField = "d"
	}

	keys := make([]*KeyMaterial, 0, len(items))
	for _, item := range items {
		n, err := parseField(item, nField)
		if err != nil {
			return nil, err
		}
		e, err := parseField(item, eField)
		if err != nil {
			return nil, err
		}
		d, err := parseField(item, dField)
		if err != nil {
			return nil, err
		}
		key, err := NewKeyMaterial(n, e, d)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func parseField(item map[string]interface{}, field string) (*big.Int, error) {
	val, ok := item[field]
	if !ok {
		return nil, errors.Errorf("rsacrt: missing %s field", field)
	}
	z, err := parseBigInt(val)
	if err != nil {
		return nil, errors.Wrapf(err, "rsacrt: failed to parse %s", field)
	}
	return z, nil
}

// CSVParser parses key material from CSV files.
type CSVParser struct {
	NCol string // Column name for the modulus (default: "n")
	ECol string // Column name for the public exponent (default: "e")
	DCol string // Column name for the private exponent (default: "d")
}

// ParseKeyMaterial parses key material from a CSV file with a header row.
func (p *CSVParser) ParseKeyMaterial(csvFile string) ([]*KeyMaterial, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, errors.Wrap(err, "rsacrt: failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "rsacrt: failed to read header")
	}

	nCol := p.NCol
	if nCol == "" {
		nCol = "n"
	}
	eCol := p.ECol
	if eCol == "" {
		eCol = "e"
	}
	dCol := p.DCol
	if dCol == "" {
		dCol = "d"
	}

	nIdx, eIdx, dIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case nCol:
			nIdx = i
		case eCol:
			eIdx = i
		case dCol:
			dIdx = i
		}
	}
	if nIdx == -1 || eIdx == -1 || dIdx == -1 {
		return nil, errors.New("rsacrt: missing required columns: n, e or d")
	}

	var keys []*KeyMaterial
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "rsacrt: failed to read record")
		}
		if nIdx >= len(record) || eIdx >= len(record) || dIdx >= len(record) {
			return nil, errors.New("rsacrt: column index out of range")
		}

		n, err := parseBigInt(record[nIdx])
		if err != nil {
			return nil, errors.Wrap(err, "rsacrt: failed to parse n")
		}
		e, err := parseBigInt(record[eIdx])
		if err != nil {
			return nil, errors.Wrap(err, "rsacrt: failed to parse e")
		}
		d, err := parseBigInt(record[dIdx])
		if err != nil {
			return nil, errors.Wrap(err, "rsacrt: failed to parse d")
		}
		key, err := NewKeyMaterial(n, e, d)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// parseBigInt parses a big integer from various formats (hex string, decimal
// string, number). A 0x prefix forces hex; without it, strings that contain
// hex letters or are longer than 20 characters are tried as hex first.
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			z, ok := new(big.Int).SetString(s[2:], 16)
			if !ok {
				return nil, errors.Errorf("invalid hex number: %s", v)
			}
			return z, nil
		}

		if strings.ContainsAny(s, "abcdefABCDEF") || len(s) > 20 {
			if z, ok := new(big.Int).SetString(s, 16); ok {
				return z, nil
			}
		}

		z, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case json.Number:
		z, ok := new(big.Int).SetString(string(v), 10)
		if !ok {
			return nil, errors.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		return big.NewInt(int64(v)), nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	default:
		return nil, errors.Errorf("unsupported type: %T", val)
	}
}
