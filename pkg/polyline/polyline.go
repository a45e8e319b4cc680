// Package polyline implements the encoded polyline algorithm format used
// by routing services to ship coordinate sequences as compact strings.
package polyline

import (
	"math"

	"transmap/pkg/geo"
)

// Decode decodes an encoded polyline at the standard precision of 5
// decimal places.
func Decode(encoded string) []geo.Coordinate {
	return DecodePrecision(encoded, 5)
}

// DecodePrecision decodes an encoded polyline with a custom precision
// (number of decimal places). On truncated input it returns whatever it
// could decode up to the malformed point; it never panics.
func DecodePrecision(encoded string, precision int) []geo.Coordinate {
	scale := math.Pow10(precision)

	var coords []geo.Coordinate
	index, lat, lon := 0, 0, 0

	for index < len(encoded) {
		latDelta, next, ok := decodeChunk(encoded, index)
		if !ok {
			return coords
		}
		index = next
		lat += latDelta

		lonDelta, next, ok := decodeChunk(encoded, index)
		if !ok {
			return coords
		}
		index = next
		lon += lonDelta

		coords = append(coords, geo.Coordinate{
			Lat: float64(lat) / scale,
			Lon: float64(lon) / scale,
		})
	}

	return coords
}

// decodeChunk reads one zig-zag encoded delta starting at index. ok is
// false when the chunk runs off the end of the string before its
// continuation bit clears.
func decodeChunk(encoded string, index int) (value int, next int, ok bool) {
	shift, result := 0, 0

	for {
		if index >= len(encoded) {
			return 0, index, false
		}
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Zig-zag: lowest bit is the sign
	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}

// Encode encodes a coordinate sequence at precision 5. It exists for the
// exporter and for round-trip tests; the engine itself only decodes.
func Encode(coords []geo.Coordinate) string {
	buf := make([]byte, 0, len(coords)*4)
	prevLat, prevLon := 0, 0

	for _, c := range coords {
		lat := int(math.Round(c.Lat * 1e5))
		lon := int(math.Round(c.Lon * 1e5))

		buf = encodeValue(buf, lat-prevLat)
		buf = encodeValue(buf, lon-prevLon)

		prevLat, prevLon = lat, lon
	}

	return string(buf)
}

func encodeValue(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	return append(buf, byte(value)+63)
}
