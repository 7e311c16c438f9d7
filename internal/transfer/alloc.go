package transfer

import (
	"fmt"
	"math"
)

// Allocate returns a zeroed buffer of exactly size bytes. It fails instead
// of panicking when size exceeds limit (if non-zero), the address space,
// or what the runtime is willing to allocate.
func Allocate(size, limit uint64) (buf []byte, err error) {
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%d bytes exceeds the buffer limit of %d", size, limit)
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("%d bytes exceeds addressable memory", size)
	}

	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("allocate %d bytes: %v", size, r)
		}
	}()
	return make([]byte, int(size)), nil
}
