package frame

import "bytes"

// scan lays out a message as [payload][0xFF], with no length prefix.
// Reads cost O(len) because the reader scans forward for the
// terminator. Payload bytes must not contain 0xFF under this variant;
// the queue does not escape them.
type scan struct{}

// Scan is the scan Framing variant.
var Scan Framing = scan{}

func (scan) Name() string { return "scan" }

func (scan) FrameSize(payloadLen int) int {
	return payloadLen + 1
}

func (scan) Reserve(start, payloadLen, capacity int) (fits bool, sentinelAt int, writeSentinel bool) {
	if start+payloadLen < capacity-1 {
		return true, 0, false
	}
	// Doesn't fit. Mark end-of-page for future readers, unless even
	// the single sentinel byte would itself overrun the buffer.
	return false, start, start < capacity-1
}

func (scan) Encode(buf []byte, start int, payload []byte) {
	n := copy(buf[start:], payload)
	buf[start+n] = Terminator
}

func (scan) IsEndOfPage(buf []byte, cursor int) bool {
	return buf[cursor] == EndOfPage
}

func (scan) Decode(buf []byte, cursor, horizon int) Result {
	i := bytes.IndexByte(buf[cursor:horizon], Terminator)
	if i < 0 {
		// The buffer is corrupt or the horizon was misjudged: a
		// terminator must exist somewhere before a horizon the reader
		// trusts. Diagnostic, not expected under correct use.
		return Result{Status: StatusError}
	}

	return Result{
		Len:    i,
		Data:   buf[cursor : cursor+i],
		Status: StatusSuccess,
	}
}
