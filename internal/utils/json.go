package utils

import (
	"io"

	gojson "github.com/goccy/go-json"
)

// HTML escaping and UTF-8 normalization are off.
var encodeOptions = []gojson.EncodeOptionFunc{gojson.DisableHTMLEscape(), gojson.DisableNormalizeUTF8()}

func MarshalJSON(val any) ([]byte, error) {
	return gojson.MarshalWithOption(val, encodeOptions...)
}

func UnmarshalJSON(data []byte, val any) error {
	return gojson.UnmarshalWithOption(data, val)
}

// WriteJSON writes val to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, val any, indent string) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	return enc.EncodeWithOption(val, gojson.DisableNormalizeUTF8())
}
