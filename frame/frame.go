// Package frame implements the Framing Policy: the on-buffer byte
// layout of one message. Two variants exist, LengthPrefixed and Scan;
// a Queue picks one when it opens a page and both ends of an IPC pair
// must agree on it out of band, same as the source project's
// build-time CONSTANT_TIME_READ switch, expressed here as a value
// instead of a preprocessor flag (see DESIGN.md Open Questions).
package frame

// Terminator marks the end of a published message. It must not appear
// inside a payload under the Scan variant (a caller invariant — the
// queue never escapes payload bytes).
const Terminator = 0xFF

// EndOfPage is written as the first byte of an aborted reservation
// that did not fit, under the Scan variant only. Readers that see it
// at their cursor stop reading the page.
const EndOfPage = 0xFD

// Status reports the outcome of decoding one message.
type Status int

const (
	// StatusSuccess means Result.Data holds one full message.
	StatusSuccess Status = 0
	// StatusFinished means the page is sealed at this cursor; stop
	// reading it.
	StatusFinished Status = 1
	// StatusEmpty means no new message is available yet at this
	// cursor; retry later with the same cursor.
	StatusEmpty Status = 2
	// StatusError means an internal invariant was violated (the
	// terminator was not found within the horizon). Diagnostic only;
	// per the source project, this was inconsistently -1 in one
	// translation unit and -12 in another — this port picks -1 as the
	// single stable value.
	StatusError Status = -1
)

// Result is the outcome of one Pop call.
type Result struct {
	// Len is the payload length in bytes.
	Len int
	// Data aliases the page's mapped buffer. It is valid only as long
	// as the owning Page stays mapped, is read-only from the
	// consumer's perspective, and must not be retained past the next
	// Pop or Close call on the same Page.
	Data []byte
	// Status classifies the outcome.
	Status Status
}

// Framing is the strategy a Queue uses to lay messages into a page's
// buffer and read them back.
type Framing interface {
	// Name identifies the variant, for logging and CLI flags.
	Name() string

	// FrameSize returns the total number of buffer bytes a message of
	// the given payload length occupies once written, including any
	// length prefix and the terminator byte.
	FrameSize(payloadLen int) int

	// Reserve checks whether a reservation starting at start for a
	// payload of payloadLen fits within a buffer of the given
	// capacity. When it does not fit, writeSentinel reports whether a
	// 0xFD end-of-page sentinel must be written before the reservation
	// is abandoned, and sentinelAt is the buffer offset to write it at.
	Reserve(start, payloadLen, capacity int) (fits bool, sentinelAt int, writeSentinel bool)

	// Encode writes payload as one frame into buf starting at start.
	// The caller guarantees Reserve already confirmed it fits.
	Encode(buf []byte, start int, payload []byte)

	// Decode reads one message out of buf starting at cursor, given a
	// horizon (the largest offset known to be fully committed).
	Decode(buf []byte, cursor, horizon int) Result

	// IsEndOfPage reports whether cursor points at an end-of-page
	// sentinel. Only the Scan variant ever writes one; LengthPrefixed
	// always returns false, since its first frame byte is a length
	// word that could otherwise collide with the 0xFD sentinel value.
	IsEndOfPage(buf []byte, cursor int) bool
}
