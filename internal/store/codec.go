package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"salvadanaio/internal/core"
)

var (
	// ErrNotJSON marks input that does not parse as JSON at all.
	ErrNotJSON = errors.New("not valid JSON")

	// ErrNotArray marks valid JSON whose top-level value is not the
	// expected array of piggy banks.
	ErrNotArray = errors.New("not an array of piggy banks")
)

// IsFormatError reports whether err marks a blob that could not be
// decoded, as opposed to an I/O failure.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrNotJSON) || errors.Is(err, ErrNotArray)
}

// DecodeCollection parses a JSON blob into the bank collection,
// distinguishing malformed JSON from a wrong top-level shape. Every
// total is recomputed so imported or hand-edited blobs self-heal.
func DecodeCollection(data []byte) ([]core.Bank, error) {
	if !json.Valid(data) {
		return nil, ErrNotJSON
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var banks []core.Bank
	if err := json.Unmarshal(trimmed, &banks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	core.RecalculateAll(banks)
	return banks, nil
}

// EncodeCollection serializes the collection as formatted JSON, the
// exact shape written to disk and offered as the export artifact.
func EncodeCollection(banks []core.Bank) ([]byte, error) {
	if banks == nil {
		banks = []core.Bank{}
	}
	data, err := json.MarshalIndent(banks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return append(data, '\n'), nil
}
