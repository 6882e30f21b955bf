package protocol

// Dispatcher routes a decoded command to its handler. args holds the command
// arguments (CRC already stripped), resp is the room available for response
// payload. It returns the payload length and a status code.
type Dispatcher func(cmd uint8, args []byte, resp []byte) (int, Status)

// Transport turns raw request frames from the bus layer into response frames.
// The bus hardware handles addressing; by the time a frame reaches
// HandleRequest it is known to be for us.
//
// Request frame:  command byte, arguments, CRC8.
// Response frame: status byte, payload length, payload, CRC8.
type Transport struct {
	dispatch Dispatcher
	resp     [MaxPacketLength]byte
}

// NewTransport creates a Transport that routes commands through dispatch.
func NewTransport(dispatch Dispatcher) *Transport {
	return &Transport{dispatch: dispatch}
}

// HandleRequest processes one request frame and returns the response frame to
// send back. The returned slice aliases the Transport's internal buffer and is
// valid until the next call.
//
// Note that this runs in bus interrupt context on the target, so it must not
// block or allocate.
func (t *Transport) HandleRequest(frame []byte) []byte {
	if len(frame) < RequestOverhead || len(frame) > MaxPacketLength {
		return t.respond(StatusInvalidCRC, 0)
	}

	if CRC8(frame[:len(frame)-1]) != frame[len(frame)-1] {
		return t.respond(StatusInvalidCRC, 0)
	}

	cmd := frame[0]
	args := frame[1 : len(frame)-1]

	n, status := t.dispatch(cmd, args, t.resp[ResponseHeader:ResponseHeader+MaxResponseData])
	if status != StatusCommandOK || n < 0 || n > MaxResponseData {
		// Failed commands report a status only, never a partial payload.
		n = 0
	}

	return t.respond(status, n)
}

func (t *Transport) respond(status Status, n int) []byte {
	t.resp[0] = byte(status)
	t.resp[1] = byte(n)
	end := ResponseHeader + n
	t.resp[end] = CRC8(t.resp[:end])
	return t.resp[:end+1]
}
