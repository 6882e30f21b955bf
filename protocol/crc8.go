package protocol

// CRC8 calculates the CRC-8 checksum used on bus frames (polynomial 0x07,
// zero init, no reflection). This matches the implementation on the bus
// master side.
func CRC8(data []byte) uint8 {
	crc := uint8(0)
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
