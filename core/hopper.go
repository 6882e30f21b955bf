package core

// Optical hopper level sensor: an LED shining at a phototransistor across the
// hopper. Each poll takes one reading with the LED on and one with it off;
// comparing the two cancels out ambient light. A lower reading means more
// light, so a large on/off difference means nothing blocks the beam and the
// hopper is empty.

// HopperConfig holds the wiring and detection threshold for a HopperSensor.
type HopperConfig struct {
	LedPin  GPIOPin
	Channel ADCChannelID

	// Threshold is the minimum on/off ADC difference that counts as an
	// unobstructed beam.
	Threshold uint16
}

// HopperSensor polls the optical level sensor from the foreground loop and
// publishes the raw readings and the empty flag to the bus command handlers,
// which run in bus interrupt context.
type HopperSensor struct {
	cfg    HopperConfig
	settle func()

	// Shared with bus interrupt context, hence the critical sections.
	measurement [2]uint16
	empty       bool

	prevEmpty bool
}

// NewHopperSensor creates a hopper sensor. settle is called after switching
// the LED and before sampling, to let the phototransistor stabilise; the
// target passes a 10ms sleep, tests pass a no-op.
func NewHopperSensor(cfg HopperConfig, settle func()) *HopperSensor {
	return &HopperSensor{
		cfg:    cfg,
		settle: settle,
	}
}

// Configure sets up the LED pin and ADC channel.
func (h *HopperSensor) Configure() error {
	if err := MustGPIO().ConfigureOutput(h.cfg.LedPin); err != nil {
		return err
	}
	return MustADC().ConfigureChannel(h.cfg.Channel)
}

// Poll takes one on/off measurement pair, updates the empty flag and raises
// the event signal when the flag changes. Runs in the foreground loop only.
func (h *HopperSensor) Poll() error {
	gpio := MustGPIO()
	adc := MustADC()

	if err := gpio.SetPin(h.cfg.LedPin, true); err != nil {
		return err
	}
	h.settle()
	on, err := adc.ReadRaw(h.cfg.Channel)
	if err != nil {
		return err
	}

	if err := gpio.SetPin(h.cfg.LedPin, false); err != nil {
		return err
	}
	h.settle()
	off, err := adc.ReadRaw(h.cfg.Channel)
	if err != nil {
		return err
	}

	empty := on < off && uint16(off-on) > h.cfg.Threshold

	// The bus interrupt reads these through LastMeasurement/Empty.
	state := disableInterrupts()
	h.measurement[0] = uint16(on)
	h.measurement[1] = uint16(off)
	h.empty = empty
	restoreInterrupts(state)

	if empty != h.prevEmpty {
		h.prevEmpty = empty
		AssertEvent()
	}

	return nil
}

// LastMeasurement returns the raw readings of the most recent poll
// (LED on, LED off).
func (h *HopperSensor) LastMeasurement() (on, off uint16) {
	state := disableInterrupts()
	on = h.measurement[0]
	off = h.measurement[1]
	restoreInterrupts(state)
	return on, off
}

// Empty reports whether the beam currently reaches the sensor unobstructed.
func (h *HopperSensor) Empty() bool {
	state := disableInterrupts()
	empty := h.empty
	restoreInterrupts(state)
	return empty
}
