package scoring

import (
	"encoding/base64"

	"github.com/jukevis/jukevis/internal/errors"
)

// Marker is one 2-bit play-quality marker from the musicbar encoding.
type Marker byte

const (
	MarkerNone   Marker = 0 // no data for this note
	MarkerGray   Marker = 1
	MarkerBlue   Marker = 2
	MarkerYellow Marker = 3
)

// markersPerByte is fixed by the wire format: four 2-bit markers per byte,
// least significant pair first.
const markersPerByte = 4

// DecodeMusicbar decodes a base64-encoded packed musicbar into its marker
// sequence. For each byte b the markers are b&3, (b>>2)&3, (b>>4)&3, (b>>6)&3
// in that order. A malformed base64 payload is a decoding error. If any
// decoded marker is MarkerNone the submission carried incomplete play data
// and the whole bar is treated as absent: the result is empty, not partial.
func DecodeMusicbar(encoded string) ([]Marker, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.New(err).
			Component("scoring").
			Category(errors.CategoryDecoding).
			Context("operation", "decode_musicbar").
			Context("payload_length", len(encoded)).
			Build()
	}

	markers := make([]Marker, 0, len(raw)*markersPerByte)
	for _, b := range raw {
		for shift := 0; shift < 8; shift += 2 {
			m := Marker((b >> shift) & 3)
			if m == MarkerNone {
				return []Marker{}, nil
			}
			markers = append(markers, m)
		}
	}
	return markers, nil
}

// EncodeMusicbar packs a marker sequence into the base64 wire form, the
// inverse of DecodeMusicbar. The marker count must be a multiple of four;
// trailing positions of a short final group are packed as MarkerNone.
func EncodeMusicbar(markers []Marker) string {
	raw := make([]byte, 0, (len(markers)+markersPerByte-1)/markersPerByte)
	for i := 0; i < len(markers); i += markersPerByte {
		var b byte
		for j := 0; j < markersPerByte && i+j < len(markers); j++ {
			b |= byte(markers[i+j]&3) << (2 * j)
		}
		raw = append(raw, b)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// NoGray reports whether the bar is non-empty and contains no gray marker.
func NoGray(markers []Marker) bool {
	if len(markers) == 0 {
		return false
	}
	for _, m := range markers {
		if m == MarkerGray {
			return false
		}
	}
	return true
}

// AllYellow reports whether the bar is non-empty and every marker is yellow.
func AllYellow(markers []Marker) bool {
	if len(markers) == 0 {
		return false
	}
	for _, m := range markers {
		if m == MarkerGray || m == MarkerBlue {
			return false
		}
	}
	return true
}
