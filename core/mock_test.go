package core

// Mock HAL drivers for host tests. Installed through the same setter hooks
// the targets use.

type mockGPIO struct {
	levels  map[GPIOPin]bool
	inputs  map[GPIOPin]bool
	outputs map[GPIOPin]bool
}

func newMockGPIO() *mockGPIO {
	return &mockGPIO{
		levels:  make(map[GPIOPin]bool),
		inputs:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
	}
}

func (m *mockGPIO) ConfigureOutput(pin GPIOPin) error {
	m.outputs[pin] = true
	return nil
}

func (m *mockGPIO) ConfigureInput(pin GPIOPin) error {
	m.inputs[pin] = true
	return nil
}

func (m *mockGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	m.inputs[pin] = true
	return nil
}

func (m *mockGPIO) SetPin(pin GPIOPin, value bool) error {
	m.levels[pin] = value
	return nil
}

func (m *mockGPIO) GetPin(pin GPIOPin) (bool, error) {
	return m.levels[pin], nil
}

func (m *mockGPIO) ReadPin(pin GPIOPin) bool {
	return m.levels[pin]
}

type mockADC struct {
	// samples are returned in order, one per ReadRaw call
	samples []ADCValue
}

func (m *mockADC) ConfigureChannel(ch ADCChannelID) error {
	return nil
}

func (m *mockADC) ReadRaw(ch ADCChannelID) (ADCValue, error) {
	if len(m.samples) == 0 {
		return 0, nil
	}
	v := m.samples[0]
	m.samples = m.samples[1:]
	return v, nil
}

// Test pin assignment, arbitrary but stable across the core tests.
const (
	testButtonPin GPIOPin = 5
	testPinA      GPIOPin = 1
	testPinB      GPIOPin = 2
	testEventPin  GPIOPin = 7
	testLedPin    GPIOPin = 9
)

// setupEncoder installs a fresh mock GPIO driver with all encoder lines idle
// (high) and returns it together with a new encoder.
func setupEncoder() (*mockGPIO, *ButtonEncoder) {
	gpio := newMockGPIO()
	gpio.levels[testButtonPin] = true
	gpio.levels[testPinA] = true
	gpio.levels[testPinB] = true
	SetGPIODriver(gpio)
	SetMicros(0)

	if err := SetEventPin(testEventPin); err != nil {
		panic(err)
	}

	enc := NewButtonEncoder(EncoderConfig{
		ButtonPin:    testButtonPin,
		PinA:         testPinA,
		PinB:         testPinB,
		DebounceTime: 5000,
	})
	if err := enc.Configure(); err != nil {
		panic(err)
	}
	return gpio, enc
}

// quadStep applies one quadrature line state and fires the encoder interrupt.
func quadStep(gpio *mockGPIO, enc *ButtonEncoder, a, b bool) {
	gpio.levels[testPinA] = a
	gpio.levels[testPinB] = b
	enc.EncoderISR()
}

// cwCycle walks one full clockwise quadrature cycle (A leads B).
func cwCycle(gpio *mockGPIO, enc *ButtonEncoder) {
	quadStep(gpio, enc, false, true)
	quadStep(gpio, enc, false, false)
	quadStep(gpio, enc, true, false)
	quadStep(gpio, enc, true, true)
}

// ccwCycle walks one full counter-clockwise quadrature cycle (B leads A).
func ccwCycle(gpio *mockGPIO, enc *ButtonEncoder) {
	quadStep(gpio, enc, true, false)
	quadStep(gpio, enc, false, false)
	quadStep(gpio, enc, false, true)
	quadStep(gpio, enc, true, true)
}

// buttonEdge moves the clock to the given time, sets the button level and
// fires the button interrupt.
func buttonEdge(gpio *mockGPIO, enc *ButtonEncoder, level bool, at uint32) {
	SetMicros(at)
	gpio.levels[testButtonPin] = level
	enc.ButtonISR()
}
