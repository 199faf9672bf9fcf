package codec

import (
	"encoding/json"
	"io"
)

// JSON is the standard-library JSON codec, kept for byte-for-byte
// comparison with tools that re-encode reports through encoding/json.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.MarshalIndent(v, "", indent) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSON) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	return enc.Encode(v)
}

// Name returns "json".
func (JSON) Name() string { return "json" }
