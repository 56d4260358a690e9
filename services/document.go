package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

// Format selects the encoding of a problem document.
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatCBOR
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "auto", "":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return FormatAuto, fmt.Errorf("unknown document format %q", s)
	}
}

// KeysField is the reserved document key holding n and k.
const KeysField = "keys"

// Share is one encoded share as read from a document.
type Share struct {
	ID    string
	X     *big.Int
	Base  int
	Value string
}

// Problem is a parsed document: the parameters and every share present.
type Problem struct {
	N      int
	K      int
	Shares []Share
}

// Degree of the polynomial being reconstructed.
func (p *Problem) Degree() int {
	return p.K - 1
}

type keysRecord struct {
	N *int `json:"n" cbor:"n"`
	K *int `json:"k" cbor:"k"`
}

type shareRecord struct {
	Base  *string `json:"base" cbor:"base"`
	Value *string `json:"value" cbor:"value"`
}

// ParseDocument reads a problem document. Every key other than "keys" is a
// share whose id is its decimal x-coordinate.
func ParseDocument(data []byte, format Format) (*Problem, error) {
	if format == FormatAuto {
		format = detectFormat(data)
	}

	var (
		fields    map[string][]byte
		unmarshal func([]byte, any) error
	)

	switch format {
	case FormatJSON:
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &MalformedInputError{Field: "document", Reason: err.Error()}
		}
		fields = make(map[string][]byte, len(raw))
		for k, v := range raw {
			fields[k] = v
		}
		unmarshal = json.Unmarshal
	case FormatCBOR:
		var raw map[string]cbor.RawMessage
		if err := cbor.Unmarshal(data, &raw); err != nil {
			return nil, &MalformedInputError{Field: "document", Reason: err.Error()}
		}
		fields = make(map[string][]byte, len(raw))
		for k, v := range raw {
			fields[k] = v
		}
		unmarshal = cbor.Unmarshal
	default:
		return nil, fmt.Errorf("parse document: unsupported format %v", format)
	}

	problem, err := parseKeys(fields[KeysField], unmarshal)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		if id != KeysField {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	problem.Shares = make([]Share, 0, len(ids))
	for _, id := range ids {
		share, err := parseShare(id, fields[id], unmarshal)
		if err != nil {
			return nil, err
		}
		problem.Shares = append(problem.Shares, share)
	}
	return problem, nil
}

func parseKeys(raw []byte, unmarshal func([]byte, any) error) (*Problem, error) {
	if raw == nil {
		return nil, &MalformedInputError{Field: KeysField, Reason: "missing"}
	}

	var keys keysRecord
	if err := unmarshal(raw, &keys); err != nil {
		return nil, &MalformedInputError{Field: KeysField, Reason: err.Error()}
	}
	if keys.N == nil {
		return nil, &MalformedInputError{Field: "keys.n", Reason: "missing"}
	}
	if keys.K == nil {
		return nil, &MalformedInputError{Field: "keys.k", Reason: "missing"}
	}

	n, k := *keys.N, *keys.K
	if k < 1 {
		return nil, &MalformedInputError{Field: "keys.k", Reason: fmt.Sprintf("threshold %d is below 1", k)}
	}
	if k > n {
		return nil, &MalformedInputError{Field: "keys.k", Reason: fmt.Sprintf("threshold %d exceeds share count %d", k, n)}
	}
	return &Problem{N: n, K: k}, nil
}

func parseShare(id string, raw []byte, unmarshal func([]byte, any) error) (Share, error) {
	x, ok := new(big.Int).SetString(id, 10)
	if !ok {
		return Share{}, &MalformedInputError{Field: id, Reason: "share id is not a decimal integer"}
	}
	if x.Sign() <= 0 {
		return Share{}, &MalformedInputError{Field: id, Reason: "share id must be positive"}
	}

	var rec shareRecord
	if err := unmarshal(raw, &rec); err != nil {
		return Share{}, &MalformedInputError{Field: id, Reason: err.Error()}
	}
	if rec.Base == nil {
		return Share{}, &MalformedInputError{Field: id + ".base", Reason: "missing"}
	}
	if rec.Value == nil || *rec.Value == "" {
		return Share{}, &MalformedInputError{Field: id + ".value", Reason: "missing"}
	}

	base, err := strconv.Atoi(*rec.Base)
	if err != nil {
		return Share{}, &MalformedInputError{Field: id + ".base", Reason: fmt.Sprintf("%q is not a decimal integer", *rec.Base)}
	}
	if base < 2 {
		return Share{}, &MalformedInputError{Field: id + ".base", Reason: fmt.Sprintf("base %d is below 2", base)}
	}

	return Share{ID: id, X: x, Base: base, Value: *rec.Value}, nil
}

// detectFormat picks CBOR when the document starts with a CBOR map header
// (major type 5) and JSON otherwise.
func detectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0]>>5 == 5 {
		return FormatCBOR
	}
	return FormatJSON
}
