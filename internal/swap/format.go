package swap

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// decodeLEUint64s interprets data according to a Python struct-style little
// endian format string (e.g. "<48sQ", "<8sQQ"): a leading '<' marker,
// followed by digit-prefixed 's' segments (raw byte skips) and digit-prefixed
// 'Q' segments (uint64 reads, defaulting to a count of 1). It returns every
// decoded uint64 in order of appearance.
func decodeLEUint64s(data []byte, format string) ([]uint64, error) {
	i := 0
	if len(format) > 0 && format[0] == '<' {
		i = 1
	}
	offset := 0
	var values []uint64
	for i < len(format) {
		start := i
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}
		count := 1
		if i > start {
			n, err := strconv.Atoi(format[start:i])
			if err != nil {
				return nil, fmt.Errorf("swap: invalid format count in %q", format)
			}
			count = n
		}
		if i >= len(format) {
			return nil, fmt.Errorf("swap: truncated format %q", format)
		}
		switch format[i] {
		case 's':
			offset += count
		case 'Q':
			for k := 0; k < count; k++ {
				if offset+8 > len(data) {
					return nil, fmt.Errorf("swap: data too short for format %q", format)
				}
				values = append(values, binary.LittleEndian.Uint64(data[offset:offset+8]))
				offset += 8
			}
		default:
			return nil, fmt.Errorf("swap: unsupported format token %q", string(format[i]))
		}
		i++
	}
	return values, nil
}
