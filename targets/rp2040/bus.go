//go:build rp2040

package main

import (
	"machine"

	"hopperboard/protocol"
)

// busLoop services the command bus in I2C target mode. The controller raises
// the receive/request events from its interrupt; WaitForEvent hands them to
// us in order, so requests are handled one at a time.
func busLoop() {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		SDA:  pinBusSDA,
		SCL:  pinBusSCL,
		Mode: machine.I2CModeTarget,
	})
	if err != nil {
		panic(err)
	}
	if err := i2c.Listen(busAddress); err != nil {
		panic(err)
	}

	buf := make([]byte, protocol.MaxPacketLength)
	var pending []byte

	for {
		evt, n, err := i2c.WaitForEvent(buf)
		if err != nil {
			continue
		}

		switch evt {
		case machine.I2CReceive:
			// A write transaction carries one request frame.
			pending = transport.HandleRequest(buf[:n])

		case machine.I2CRequest:
			if pending == nil {
				// Read without a preceding request: nothing to say.
				i2c.Reply([]byte{byte(protocol.StatusCommandFailed)})
				break
			}
			i2c.Reply(pending)
			pending = nil

		case machine.I2CFinish:
		}
	}
}
