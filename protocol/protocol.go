// Package protocol implements the request/response frame layer of the
// sensor board bus.
package protocol

// Status is the result code carried in the first byte of every response
// frame. Codes match what the bus master expects.
type Status uint8

const (
	StatusCommandOK           Status = 0x00
	StatusCommandFailed       Status = 0x01
	StatusCommandNotSupported Status = 0x02
	StatusInvalidArguments    Status = 0x04
	StatusInvalidCRC          Status = 0x05
)

func (s Status) String() string {
	switch s {
	case StatusCommandOK:
		return "ok"
	case StatusCommandFailed:
		return "command failed"
	case StatusCommandNotSupported:
		return "command not supported"
	case StatusInvalidArguments:
		return "invalid arguments"
	case StatusInvalidCRC:
		return "invalid crc"
	default:
		return "unknown status"
	}
}

// Frame layout constants.
const (
	// MaxPacketLength is the largest frame either side may send. The bus
	// master requires at least 32-byte packets.
	MaxPacketLength = 32

	// Request frame: command byte, arguments, CRC8.
	RequestOverhead = 2

	// Response frame: status byte, payload length byte, payload, CRC8.
	ResponseHeader  = 2
	ResponseTrailer = 1

	// MaxResponseData is the payload room left in a response frame.
	MaxResponseData = MaxPacketLength - ResponseHeader - ResponseTrailer
)
