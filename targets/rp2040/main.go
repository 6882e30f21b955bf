//go:build rp2040

package main

import (
	"machine"
	"time"

	"hopperboard/core"
	"hopperboard/protocol"
)

// Board pin map.
const (
	// Command bus (I2C target mode)
	pinBusSDA = machine.GPIO0
	pinBusSCL = machine.GPIO1

	// Rotary encoder with push button, external pullups on all three lines
	pinEncA  = machine.GPIO2
	pinEncB  = machine.GPIO3
	pinEncSW = machine.GPIO4

	// Event signal output to the host ("poll me")
	pinStatus = machine.GPIO5

	// Hopper sensor LED; the phototransistor is on ADC channel 0 (GPIO26)
	pinHopperLed = machine.GPIO6

	// Display power sequencing
	pinEnable3V3    = machine.GPIO7
	pinEnableBoost  = machine.GPIO8
	pinDisplayReset = machine.GPIO9

	// Display I2C
	pinDispSDA = machine.GPIO10
	pinDispSCL = machine.GPIO11
)

const (
	// Bus address this board answers on.
	busAddress = 0x08

	// Debouncing the encoder switch for a certain time, since the
	// Schmitt-trigger on the switch line is not enough to debounce or is
	// not available at all.
	debounceTimeUS = 5000

	hopperChannel   core.ADCChannelID = 0
	hopperThreshold                   = 20
)

var (
	encoder   *core.ButtonEncoder
	hopper    *core.HopperSensor
	transport *protocol.Transport
)

func main() {
	core.SetGPIODriver(NewRPGPIODriver())
	core.SetADCDriver(NewRPAdcDriver())

	if err := core.SetEventPin(core.GPIOPin(pinStatus)); err != nil {
		panic(err)
	}

	encoder = core.NewButtonEncoder(core.EncoderConfig{
		ButtonPin:    core.GPIOPin(pinEncSW),
		PinA:         core.GPIOPin(pinEncA),
		PinB:         core.GPIOPin(pinEncB),
		DebounceTime: debounceTimeUS,
	})
	if err := encoder.Configure(); err != nil {
		panic(err)
	}

	hopper = core.NewHopperSensor(core.HopperConfig{
		LedPin:    core.GPIOPin(pinHopperLed),
		Channel:   hopperChannel,
		Threshold: hopperThreshold,
	}, func() { time.Sleep(10 * time.Millisecond) })
	if err := hopper.Configure(); err != nil {
		panic(err)
	}

	core.InitBoardCommands(encoder, hopper)
	transport = protocol.NewTransport(core.DispatchCommand)

	// Monitor both edges on both quadrature lines and the button line. The
	// interrupt controller masks a source while its handler runs, so each
	// handler is serialized against itself.
	pinEncA.SetInterrupt(machine.PinToggle, func(machine.Pin) { encoder.EncoderISR() })
	pinEncB.SetInterrupt(machine.PinToggle, func(machine.Pin) { encoder.EncoderISR() })
	pinEncSW.SetInterrupt(machine.PinToggle, func(machine.Pin) { encoder.ButtonISR() })

	startDisplay()

	go busLoop()

	// Foreground: keep sampling the hopper sensor.
	for {
		if err := hopper.Poll(); err != nil {
			// ADC trouble is not recoverable from here; keep the last
			// measurement and try again next round.
			time.Sleep(100 * time.Millisecond)
		}
	}
}
