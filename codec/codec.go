// Package codec centralizes encoding of run reports.
//
// The CLI selects a codec by name; go-json is the default.
package codec

import (
	"fmt"
	"io"
)

// Codec encodes/decodes values as indented JSON.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Encode writes v to w followed by a newline.
	Encode(w io.Writer, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, error) {
	switch name {
	case "", GoJSON{}.Name():
		return GoJSON{}, nil
	case JSON{}.Name():
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

const indent = "  "
