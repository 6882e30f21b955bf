// Package board implements the host side of the sensor board bus protocol,
// talking to the board through a serial bus bridge.
package board

import (
	"fmt"
	"io"

	"hopperboard/host/serial"
	"hopperboard/protocol"
)

// Command codes, mirroring the firmware's registry.
const (
	CmdGetLastMeasurement uint8 = 0x80
	CmdGetLastStatus      uint8 = 0x81
)

// Status is one drained status report from the board.
type Status struct {
	// Presses is the number of button presses since the previous read,
	// saturated to 127 by the firmware.
	Presses uint8

	// Detents is the net detent delta since the previous read. Positive is
	// clockwise.
	Detents int8

	// HopperEmpty is the level sensor flag carried in bit 7 of the first
	// status byte.
	HopperEmpty bool
}

func (s Status) String() string {
	return fmt.Sprintf("presses=%d detents=%d hopper_empty=%t", s.Presses, s.Detents, s.HopperEmpty)
}

// Measurement holds the raw hopper sensor readings.
type Measurement struct {
	LedOn  uint16
	LedOff uint16
}

// Client frames commands for the board and decodes its responses.
type Client struct {
	port serial.Port
}

// NewClient creates a client on an open bridge port.
func NewClient(port serial.Port) *Client {
	return &Client{port: port}
}

// roundTrip sends one request frame and reads back one response frame.
func (c *Client) roundTrip(cmd uint8, args []byte) ([]byte, error) {
	frame := make([]byte, 0, len(args)+protocol.RequestOverhead)
	frame = append(frame, cmd)
	frame = append(frame, args...)
	frame = append(frame, protocol.CRC8(frame))

	if _, err := c.port.Write(frame); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}
	if err := c.port.Flush(); err != nil {
		return nil, fmt.Errorf("flush request: %w", err)
	}

	// Response: status byte, payload length, payload, CRC8.
	header := make([]byte, protocol.ResponseHeader)
	if _, err := io.ReadFull(c.port, header); err != nil {
		return nil, fmt.Errorf("read response header: %w", err)
	}

	n := int(header[1])
	if n > protocol.MaxResponseData {
		return nil, fmt.Errorf("response payload length %d exceeds protocol maximum", n)
	}

	rest := make([]byte, n+protocol.ResponseTrailer)
	if _, err := io.ReadFull(c.port, rest); err != nil {
		return nil, fmt.Errorf("read response payload: %w", err)
	}

	full := append(header, rest...)
	if protocol.CRC8(full[:len(full)-1]) != full[len(full)-1] {
		return nil, fmt.Errorf("response CRC mismatch")
	}

	if status := protocol.Status(header[0]); status != protocol.StatusCommandOK {
		return nil, fmt.Errorf("board returned status %d (%s)", uint8(status), status)
	}

	return full[protocol.ResponseHeader : protocol.ResponseHeader+n], nil
}

// LastStatus drains the board's event counters. Reading acknowledges the
// events: the board clears its attention line and resets the counters.
func (c *Client) LastStatus() (Status, error) {
	payload, err := c.roundTrip(CmdGetLastStatus, nil)
	if err != nil {
		return Status{}, err
	}
	if len(payload) != 2 {
		return Status{}, fmt.Errorf("status payload is %d bytes, want 2", len(payload))
	}

	return Status{
		Presses:     payload[0] & 0x7F,
		HopperEmpty: payload[0]&0x80 != 0,
		Detents:     int8(payload[1]),
	}, nil
}

// LastMeasurement reads the raw readings of the board's most recent sensor
// poll (LED on, LED off).
func (c *Client) LastMeasurement() (Measurement, error) {
	payload, err := c.roundTrip(CmdGetLastMeasurement, nil)
	if err != nil {
		return Measurement{}, err
	}
	if len(payload) != 4 {
		return Measurement{}, fmt.Errorf("measurement payload is %d bytes, want 4", len(payload))
	}

	return Measurement{
		LedOn:  uint16(payload[0])<<8 | uint16(payload[1]),
		LedOff: uint16(payload[2])<<8 | uint16(payload[3]),
	}, nil
}
