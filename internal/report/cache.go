package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"surge/internal/blame"
)

// cacheSchemaVersion guards against decoding a report cache written by
// an incompatible release; bump it whenever Payload's shape changes.
const cacheSchemaVersion uint16 = 1

// Payload is what gets serialized to a check-report cache file: never
// a raw value.Value or a Sealed envelope, only the flattened
// diagnostic fields of blame.Report.
type Payload struct {
	Schema  uint16
	Reports []blame.Report
}

// WriteMsgpack serializes reports to w in the binary cache format used
// by `nlc check --report-format=msgpack` for CI reuse.
func WriteMsgpack(w io.Writer, reports []blame.Report) error {
	payload := Payload{Schema: cacheSchemaVersion, Reports: reports}
	return msgpack.NewEncoder(w).Encode(&payload)
}

// ReadMsgpack deserializes a report cache previously written by
// WriteMsgpack.
func ReadMsgpack(r io.Reader) ([]blame.Report, error) {
	var payload Payload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("report: decode msgpack cache: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, fmt.Errorf("report: cache schema %d, want %d", payload.Schema, cacheSchemaVersion)
	}
	return payload.Reports, nil
}

// WriteJSON serializes reports to w as a JSON array, for
// `nlc check --report-format=json`.
func WriteJSON(w io.Writer, reports []blame.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// SaveMsgpackFile atomically writes a report cache to path, the same
// temp-file-then-rename idiom the teacher's disk cache uses.
func SaveMsgpackFile(path string, reports []blame.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "nlc-report-*.mp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := WriteMsgpack(tmp, reports); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadMsgpackFile reads a report cache previously written by
// SaveMsgpackFile.
func LoadMsgpackFile(path string) ([]blame.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMsgpack(f)
}
