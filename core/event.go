package core

// Event signal output: a single "poll me now" line to the host, shared by
// every event source (encoder detents, button presses, hopper level changes).
// There is no per-source bookkeeping; the line is an OR of all pending
// conditions and is cleared once per serviced status request.

var (
	eventPin    GPIOPin
	eventPinSet bool
)

// SetEventPin registers the output pin used for the event signal and drives
// it low. Called once by the target during boot, before any interrupt source
// is armed.
func SetEventPin(pin GPIOPin) error {
	gpio := MustGPIO()
	if err := gpio.ConfigureOutput(pin); err != nil {
		return err
	}
	eventPin = pin
	eventPinSet = true
	return gpio.SetPin(pin, false)
}

// AssertEvent raises the event signal. Safe to call from interrupt context.
func AssertEvent() {
	if eventPinSet {
		_ = MustGPIO().SetPin(eventPin, true)
	}
}

// ClearEvent drops the event signal. Called by the status request handler
// only; any event arriving after the clear must be re-asserted by whoever
// observes it.
func ClearEvent() {
	if eventPinSet {
		_ = MustGPIO().SetPin(eventPin, false)
	}
}
