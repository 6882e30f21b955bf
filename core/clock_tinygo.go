//go:build tinygo

package core

import "time"

var bootTime = time.Now()

// getMicros returns microseconds since boot, truncated to 32 bits
func getMicros() uint32 {
	return uint32(time.Since(bootTime).Microseconds())
}
