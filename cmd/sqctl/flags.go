package main

import (
	"fmt"

	"github.com/c2h5oh/datasize"

	"github.com/yanet-platform/shmqueue/frame"
)

// byteSizeValue adapts datasize.ByteSize (which already knows how to
// parse strings like "32MB" via encoding.TextUnmarshaler) to
// pflag.Value, so --capacity can take the same human-readable sizes
// other module configs in this codebase use for memory sizing.
type byteSizeValue struct {
	v *datasize.ByteSize
}

func (b *byteSizeValue) String() string {
	if b.v == nil {
		return ""
	}
	return b.v.HumanReadable()
}

func (b *byteSizeValue) Set(s string) error {
	return b.v.UnmarshalText([]byte(s))
}

func (b *byteSizeValue) Type() string {
	return "size"
}

// framingValue adapts the frame.Framing selection to pflag.Value so
// --framing accepts the two variant names by their wire-format
// shorthand: "scan" and "length-prefixed".
type framingValue struct {
	v *frame.Framing
}

func (f *framingValue) String() string {
	if f.v == nil || *f.v == nil {
		return ""
	}
	return (*f.v).Name()
}

func (f *framingValue) Set(s string) error {
	switch s {
	case "scan":
		*f.v = frame.Scan
	case "length-prefixed":
		*f.v = frame.LengthPrefixed
	default:
		return fmt.Errorf("unknown framing %q, want \"scan\" or \"length-prefixed\"", s)
	}
	return nil
}

func (f *framingValue) Type() string {
	return "framing"
}
