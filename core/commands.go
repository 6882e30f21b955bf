package core

import "hopperboard/protocol"

// Command codes understood by the board.
const (
	CmdGetLastMeasurement uint8 = 0x80
	CmdGetLastStatus      uint8 = 0x81
)

// Device singletons wired in by the target at boot.
var (
	boardEncoder *ButtonEncoder
	boardHopper  *HopperSensor
)

// InitBoardCommands registers the board's bus commands with the command
// registry and binds them to the given devices.
func InitBoardCommands(encoder *ButtonEncoder, hopper *HopperSensor) {
	boardEncoder = encoder
	boardHopper = hopper

	RegisterCommand(CmdGetLastMeasurement, "get_last_measurement", handleGetLastMeasurement)
	RegisterCommand(CmdGetLastStatus, "get_last_status", handleGetLastStatus)
}

// handleGetLastMeasurement returns the two raw hopper sensor readings (LED on,
// LED off) as big-endian 16-bit values.
func handleGetLastMeasurement(args []byte, resp []byte) (int, protocol.Status) {
	if len(args) != 0 || len(resp) < 4 {
		return 0, protocol.StatusInvalidArguments
	}

	on, off := boardHopper.LastMeasurement()
	resp[0] = byte(on >> 8)
	resp[1] = byte(on)
	resp[2] = byte(off >> 8)
	resp[3] = byte(off)
	return 4, protocol.StatusCommandOK
}

// handleGetLastStatus drains both event counters and returns them as two
// bytes: press count (bits 0-6) with the hopper-empty flag in bit 7, and the
// net detent delta as a signed 8-bit value.
//
// This runs inside the bus interrupt, so the drains cannot race the command
// handler itself; only the encoder pin interrupts can interleave.
func handleGetLastStatus(args []byte, resp []byte) (int, protocol.Status) {
	if len(args) != 0 || len(resp) < 2 {
		return 0, protocol.StatusInvalidArguments
	}

	// Servicing a status read acknowledges the pending events, so drop the
	// line before draining.
	ClearEvent()

	presses := boardEncoder.DrainPresses()
	detents := boardEncoder.DrainDetents()

	// DrainPresses already clamps to 7 bits, keeping bit 7 free for the
	// hopper sensor flag.
	resp[0] = presses
	if boardHopper.Empty() {
		resp[0] |= 0x80
	}
	resp[1] = byte(detents)

	// An edge can land between the clear above and the drains. Re-assert the
	// line for anything still queued so the host polls again instead of the
	// notification getting lost.
	if boardEncoder.Pending() {
		AssertEvent()
	}

	return 2, protocol.StatusCommandOK
}
