package board

import (
	"bytes"
	"testing"

	"hopperboard/protocol"
)

// loopPort is an in-memory serial.Port fed with canned responses.
type loopPort struct {
	written bytes.Buffer
	reply   bytes.Buffer
}

func (p *loopPort) Read(b []byte) (int, error)  { return p.reply.Read(b) }
func (p *loopPort) Write(b []byte) (int, error) { return p.written.Write(b) }
func (p *loopPort) Close() error                { return nil }
func (p *loopPort) Flush() error                { return nil }

func respond(status protocol.Status, payload ...byte) []byte {
	frame := []byte{byte(status), byte(len(payload))}
	frame = append(frame, payload...)
	return append(frame, protocol.CRC8(frame))
}

func TestClientLastStatus(t *testing.T) {
	port := &loopPort{}
	port.reply.Write(respond(protocol.StatusCommandOK, 0x83, 0xFE))

	client := NewClient(port)
	status, err := client.LastStatus()
	if err != nil {
		t.Fatalf("LastStatus() error: %v", err)
	}

	if status.Presses != 3 {
		t.Errorf("Presses = %d, want 3", status.Presses)
	}
	if status.Detents != -2 {
		t.Errorf("Detents = %d, want -2", status.Detents)
	}
	if !status.HopperEmpty {
		t.Error("HopperEmpty = false, want true")
	}

	// Verify the request frame on the wire: command, CRC.
	want := []byte{CmdGetLastStatus, protocol.CRC8([]byte{CmdGetLastStatus})}
	if !bytes.Equal(port.written.Bytes(), want) {
		t.Errorf("request frame = % x, want % x", port.written.Bytes(), want)
	}
}

func TestClientLastMeasurement(t *testing.T) {
	port := &loopPort{}
	port.reply.Write(respond(protocol.StatusCommandOK, 0x01, 0x23, 0x04, 0x56))

	client := NewClient(port)
	m, err := client.LastMeasurement()
	if err != nil {
		t.Fatalf("LastMeasurement() error: %v", err)
	}

	if m.LedOn != 0x0123 || m.LedOff != 0x0456 {
		t.Errorf("measurement = (0x%04X, 0x%04X), want (0x0123, 0x0456)", m.LedOn, m.LedOff)
	}
}

func TestClientErrorStatus(t *testing.T) {
	port := &loopPort{}
	port.reply.Write(respond(protocol.StatusCommandNotSupported))

	client := NewClient(port)
	if _, err := client.LastStatus(); err == nil {
		t.Error("expected error for non-ok board status")
	}
}

func TestClientCorruptResponse(t *testing.T) {
	port := &loopPort{}
	frame := respond(protocol.StatusCommandOK, 0x00, 0x00)
	frame[2] ^= 0xFF // corrupt payload without fixing CRC
	port.reply.Write(frame)

	client := NewClient(port)
	if _, err := client.LastStatus(); err == nil {
		t.Error("expected error for corrupt response frame")
	}
}
