//go:build !tinygo

package core

var microsValue uint32

// getMicros returns the current microsecond clock (host implementation)
func getMicros() uint32 {
	return microsValue
}

// SetMicros sets the microsecond clock (for testing)
func SetMicros(us uint32) {
	microsValue = us
}

// AdvanceMicros moves the microsecond clock forward (for testing)
func AdvanceMicros(us uint32) {
	microsValue += us
}
