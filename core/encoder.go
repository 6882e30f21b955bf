// Rotary encoder with integrated push button.
//
// The encoder has both outputs high when idle (at a detent) and runs through
// a full quadrature cycle per detent moved, so the tracked value is divisible
// by four exactly when the knob rests at a detent. Both edges on both pins
// are monitored; triggering on rising edges alone would fire spurious events
// when the knob is turned slightly past a detent and back.
//
// Decoding uses a lookup table indexed by the previous and current pin pair.
// The common form of this table codes invalid transitions (both pins changed
// at once) as 0, which silently shifts the tracked value out of step with the
// mechanical position. Here they are coded as 2 and -2 instead: the direction
// is a guess and the absolute position may end up off by a multiple of four,
// but the value stays divisible by four at rest no matter what is read, so
// detents are never detected off-by-one. Single-pin noise self-corrects on
// the next valid reading.
package core

// EncoderConfig holds the pin assignment and debounce threshold for a
// ButtonEncoder. All pins are expected to have external pullups.
type EncoderConfig struct {
	ButtonPin GPIOPin
	PinA      GPIOPin
	PinB      GPIOPin

	// DebounceTime is the minimum spacing in microseconds between button
	// edges for an edge to be counted. Needed even with a hardware filter,
	// since noise at an indeterminate filter voltage still bounces.
	DebounceTime uint32
}

// quadTable maps prevReading<<2|reading to the change in encoder value.
// Clockwise rotation gives positive changes.
var quadTable = [16]int8{0, -1, 1, 2, 1, 0, 2, -1, -1, -2, 0, 1, -2, 1, -1, 0}

// ButtonEncoder tracks a quadrature encoder and its push button from pin
// change interrupts, and exposes the accumulated event counts through atomic
// drain operations.
//
// The interrupt routines are the only writers of the counters; the drains may
// run in any other context (including the bus interrupt) and briefly mask
// interrupts while they read and reset.
type ButtonEncoder struct {
	cfg EncoderConfig

	// Quadrature decoder state, owned by EncoderISR.
	prevReading uint8
	value       int8

	// Button debounce state, owned by ButtonISR.
	prevButton   bool
	prevEdgeTime uint32

	// Event counters, shared with the drain operations.
	detents int8
	presses uint8
}

// NewButtonEncoder creates an encoder in the at-rest state. The previous
// reading starts at 3 (both lines high, i.e. at a detent); if that guess is
// wrong it resynchronises on the first edge.
func NewButtonEncoder(cfg EncoderConfig) *ButtonEncoder {
	return &ButtonEncoder{
		cfg:         cfg,
		prevReading: 3,
		prevButton:  true,
	}
}

// Configure sets up the three pins as floating inputs (external pullups are
// present) through the GPIO driver. Interrupt attachment is target-specific
// and done by the caller.
func (e *ButtonEncoder) Configure() error {
	gpio := MustGPIO()
	if err := gpio.ConfigureInput(e.cfg.ButtonPin); err != nil {
		return err
	}
	if err := gpio.ConfigureInput(e.cfg.PinA); err != nil {
		return err
	}
	return gpio.ConfigureInput(e.cfg.PinB)
}

// EncoderISR handles a level change on either quadrature line. Must be called
// from the pin change interrupt for both lines; it is not reentrant, which the
// interrupt controller guarantees by masking the source during its own
// handler.
func (e *ButtonEncoder) EncoderISR() {
	gpio := MustGPIO()

	var reading uint8
	if gpio.ReadPin(e.cfg.PinA) {
		reading |= 2
	}
	if gpio.ReadPin(e.cfg.PinB) {
		reading |= 1
	}

	e.value += quadTable[e.prevReading<<2|reading]
	e.prevReading = reading

	// Emit an event whenever the value has moved a full detent. The table
	// can contribute at most 2 per edge, but normalize in a loop so the
	// at-rest invariant holds from any state.
	for e.value >= 4 {
		e.detents++
		e.value -= 4
		AssertEvent()
	}
	for e.value <= -4 {
		e.detents--
		e.value += 4
		AssertEvent()
	}
}

// ButtonISR handles a level change on the button line. Falling edges count as
// presses once debounced; the debounce timer restarts on every physical edge,
// counted or not, so a bounce train only needs one quiet gap to register.
func (e *ButtonEncoder) ButtonISR() {
	level := MustGPIO().ReadPin(e.cfg.ButtonPin)
	if level == e.prevButton {
		// Duplicate or noise callback, no edge to process.
		return
	}

	now := Micros()
	// Unsigned subtraction keeps this correct across clock wraparound.
	if now-e.prevEdgeTime > e.cfg.DebounceTime {
		if e.prevButton {
			// Falling edge: released -> pressed.
			e.presses++
			AssertEvent()
		}
	}
	e.prevEdgeTime = now
	e.prevButton = level
}

// DrainDetents returns the net detent count since the previous drain and
// resets it, as one indivisible operation.
func (e *ButtonEncoder) DrainDetents() int8 {
	state := disableInterrupts()
	detents := e.detents
	e.detents = 0
	restoreInterrupts(state)
	return detents
}

// DrainPresses returns the press count since the previous drain and resets
// it. The result is saturated to 7 bits: bit 7 of the status byte this feeds
// carries the hopper flag, so the count clamps rather than wraps into it.
func (e *ButtonEncoder) DrainPresses() uint8 {
	state := disableInterrupts()
	presses := e.presses
	e.presses = 0
	restoreInterrupts(state)

	if presses > 0x7F {
		presses = 0x7F
	}
	return presses
}

// Pending reports whether undrained events remain. The status handler uses
// this to re-assert the event line for edges that landed during the read.
func (e *ButtonEncoder) Pending() bool {
	state := disableInterrupts()
	pending := e.detents != 0 || e.presses != 0
	restoreInterrupts(state)
	return pending
}
