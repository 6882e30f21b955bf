package core

// Micros returns a free-running microsecond counter. It wraps roughly every
// 71 minutes; consumers must compare elapsed time via unsigned subtraction,
// never by absolute comparison.
func Micros() uint32 {
	return getMicros()
}
