package frame

import "encoding/binary"

// lenSize is the width of the length prefix: a host-native machine
// word, matching the composite header word width used elsewhere on
// the page.
const lenSize = 8

// lengthPrefixed lays out a message as [len:word][payload][0xFF]. It
// trades lenSize bytes of per-message overhead for an O(1) read: the
// reader never scans, it just trusts the length prefix.
type lengthPrefixed struct{}

// LengthPrefixed is the length-prefixed Framing variant.
var LengthPrefixed Framing = lengthPrefixed{}

func (lengthPrefixed) Name() string { return "length-prefixed" }

func (lengthPrefixed) FrameSize(payloadLen int) int {
	return lenSize + payloadLen + 1
}

func (lengthPrefixed) Reserve(start, payloadLen, capacity int) (fits bool, sentinelAt int, writeSentinel bool) {
	// No end-of-page sentinel in this variant. The frame occupies
	// lenSize+payloadLen+1 bytes; the fit check covers the full frame
	// so no reservation can straddle byte C.
	return start+lenSize+payloadLen+1 <= capacity, 0, false
}

func (lengthPrefixed) Encode(buf []byte, start int, payload []byte) {
	binary.NativeEndian.PutUint64(buf[start:], uint64(len(payload)))
	n := copy(buf[start+lenSize:], payload)
	buf[start+lenSize+n] = Terminator
}

func (lengthPrefixed) IsEndOfPage(buf []byte, cursor int) bool {
	// This variant never writes a 0xFD sentinel (Reserve never sets
	// writeSentinel), and its first frame byte is part of a length
	// word that can legitimately equal 0xFD, so it must never be
	// mistaken for one.
	return false
}

func (lengthPrefixed) Decode(buf []byte, cursor, horizon int) Result {
	length := int(binary.NativeEndian.Uint64(buf[cursor:]))
	payloadStart := cursor + lenSize
	payloadEnd := payloadStart + length

	if payloadEnd >= len(buf) || buf[payloadEnd] != Terminator {
		// The length prefix is visible but the terminator isn't: the
		// writer reserved unusually close to the reader's observed
		// horizon and hasn't finished its copy yet from this
		// decoder's point of view. Treat it like nothing is there yet.
		return Result{Status: StatusEmpty}
	}

	return Result{
		Len:    length,
		Data:   buf[payloadStart:payloadEnd],
		Status: StatusSuccess,
	}
}
