//go:build rp2040

package main

import (
	"errors"
	"machine"

	"hopperboard/core"
)

// adcChannelPins maps logical ADC channels to the RP2040's ADC-capable pins.
var adcChannelPins = map[core.ADCChannelID]machine.Pin{
	0: machine.ADC0, // GPIO26
	1: machine.ADC1, // GPIO27
	2: machine.ADC2, // GPIO28
	3: machine.ADC3, // GPIO29
}

// RPAdcDriver implements core.ADCDriver using TinyGo's machine.ADC.
type RPAdcDriver struct {
	channels map[core.ADCChannelID]machine.ADC
}

// NewRPAdcDriver initializes the ADC peripheral and returns the driver.
func NewRPAdcDriver() *RPAdcDriver {
	machine.InitADC()
	return &RPAdcDriver{
		channels: make(map[core.ADCChannelID]machine.ADC),
	}
}

// ConfigureChannel puts the channel's pin in analog mode.
func (d *RPAdcDriver) ConfigureChannel(ch core.ADCChannelID) error {
	pin, ok := adcChannelPins[ch]
	if !ok {
		return errors.New("adc: no such channel")
	}

	a := machine.ADC{Pin: pin}
	a.Configure(machine.ADCConfig{})
	d.channels[ch] = a
	return nil
}

// ReadRaw performs a one-shot sample. machine.ADC.Get returns a 16-bit
// left-adjusted value, matching the core's ADCValue convention.
func (d *RPAdcDriver) ReadRaw(ch core.ADCChannelID) (core.ADCValue, error) {
	a, ok := d.channels[ch]
	if !ok {
		return 0, errors.New("adc: channel not configured")
	}
	return core.ADCValue(a.Get()), nil
}
