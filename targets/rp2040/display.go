//go:build rp2040

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
)

// startDisplay powers up the display.
//
// The display's reset pin has an external pullup to 3v3, so it would come out
// of reset the moment the 3v3 rail powers up. Hold reset low first, then
// follow the datasheet sequence: enable the 3v3 logic supply, release the
// reset, then power up the boost converter for the LED supply. The delays are
// a lot slower than the datasheet minimum.
func startDisplay() {
	pinDisplayReset.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinDisplayReset.Low()

	pinEnable3V3.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinEnable3V3.High()
	time.Sleep(time.Millisecond)

	// Switch to input to let the external 3v3 pullup release the reset,
	// instead of driving it high (which would be 5v).
	pinDisplayReset.Configure(machine.PinConfig{Mode: machine.PinInput})
	time.Sleep(time.Millisecond)

	pinEnableBoost.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinEnableBoost.High()
	time.Sleep(5 * time.Millisecond)

	err := machine.I2C1.Configure(machine.I2CConfig{
		SDA:       pinDispSDA,
		SCL:       pinDispSCL,
		Frequency: 400_000,
	})
	if err != nil {
		return
	}

	display := ssd1306.NewI2C(machine.I2C1)
	display.Configure(ssd1306.Config{
		Width:   128,
		Height:  32,
		Address: 0x3C,
	})
	display.ClearDisplay()
}
