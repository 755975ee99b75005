// Package vlq reads and writes the integer encodings used inside MIDI files:
// variable-length quantities and fixed-width big-endian fields.
package vlq

import (
	"errors"
	"fmt"
	"io"
)

// ErrStarved is returned when the byte source runs out before a value is
// complete. It wraps io.ErrUnexpectedEOF.
var ErrStarved = fmt.Errorf("vlq: starved byte source: %w", io.ErrUnexpectedEOF)

// ErrOverflow is returned when a variable-length value does not fit in 64 bits.
var ErrOverflow = errors.New("vlq: value overflows uint64")

// Encode returns the minimal variable-length encoding of n.
// 0 encodes as a single zero byte.
func Encode(n uint64) []byte {
	var buf [10]byte
	i := len(buf) - 1
	buf[i] = byte(n & 0x7F)
	n >>= 7
	for n > 0 {
		i--
		buf[i] = byte(n&0x7F) | 0x80
		n >>= 7
	}
	out := make([]byte, len(buf)-i)
	copy(out, buf[i:])
	return out
}

// AppendEncoded appends the encoding of n to dst.
func AppendEncoded(dst []byte, n uint64) []byte {
	return append(dst, Encode(n)...)
}

// Decode reads one variable-length quantity from r.
func Decode(r io.ByteReader) (uint64, error) {
	var n uint64
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, starved(err)
		}
		if n>>57 != 0 {
			return 0, ErrOverflow
		}
		n = n<<7 | uint64(b&0x7F)
		if b&0x80 == 0 {
			return n, nil
		}
	}
}

// ReadFixed reads an n-byte big-endian unsigned integer (n <= 8).
func ReadFixed(r io.ByteReader, n int) (uint64, error) {
	if n < 0 || n > 8 {
		return 0, fmt.Errorf("vlq: fixed width %d out of range", n)
	}
	var v uint64
	for i := 0; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, starved(err)
		}
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// PutFixed returns v as an n-byte big-endian field, truncating high bytes.
func PutFixed(v uint64, n int) []byte {
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

// ReadBytes reads exactly n bytes from r.
func ReadBytes(r io.ByteReader, n uint64) ([]byte, error) {
	out := make([]byte, 0, min(n, 4096))
	for i := uint64(0); i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, starved(err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Signed reinterprets a byte as a two's-complement int8.
func Signed(b byte) int8 {
	return int8(b)
}

// Unsigned is the inverse of Signed.
func Unsigned(v int8) byte {
	return byte(v)
}

func starved(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrStarved
	}
	return err
}
