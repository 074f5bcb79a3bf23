package crypto

import (
	"encoding/binary"
	"math/bits"
)

const (
	SHA1_NAME = "SHA-1"
	SHA1_SIZE = 20
)

// per-round additive constants
const (
	sha1_y1 = 0x5a827999
	sha1_y2 = 0x6ed9eba1
	sha1_y3 = 0x8f1bbcdc
	sha1_y4 = 0xca62c1d6
)

// SHA1Digest computes SHA-1 over an incremental byte stream. The word
// engine drives buffering and padding; this type supplies the 80-word
// expansion and the 4x20 round compression. Not safe for concurrent use.
type SHA1Digest struct {
	wordEngine
	h    [5]uint32
	x    [80]uint32
	xOff int
}

func NewSHA1() *SHA1Digest {
	d := new(SHA1Digest)
	d.wordEngine.c = d
	d.initState()
	return d
}

// Branch deep-copies an in-progress digest so the original and the copy
// can be finalized independently with no shared state.
func (d *SHA1Digest) Branch() *SHA1Digest {
	n := new(SHA1Digest)
	*n = *d
	n.wordEngine.c = n
	return n
}

func (d *SHA1Digest) AlgorithmName() string {
	return SHA1_NAME
}

func (d *SHA1Digest) DigestSize() int {
	return SHA1_SIZE
}

func (d *SHA1Digest) DoFinal(out []byte, off int) (int, error) {
	if off < 0 || off+SHA1_SIZE > len(out) {
		return 0, OUT_OF_RANGE.Apply("digest output needs 20 bytes")
	}
	d.finish()
	for i, h := range d.h {
		binary.BigEndian.PutUint32(out[off+4*i:], h)
	}
	d.Reset()
	return SHA1_SIZE, nil
}

func (d *SHA1Digest) Reset() {
	d.resetWords()
	d.initState()
}

func (d *SHA1Digest) initState() {
	d.h = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}
	d.x = [80]uint32{}
	d.xOff = 0
}

func (d *SHA1Digest) processWord(w uint32) {
	d.x[d.xOff] = w
	d.xOff++
	if d.xOff == 16 {
		d.processBlock()
	}
}

func (d *SHA1Digest) processLength(bitLen uint64) {
	// no room for two length words in this block
	if d.xOff > 14 {
		d.processBlock()
	}
	d.x[14] = uint32(bitLen >> 32)
	d.x[15] = uint32(bitLen)
}

// F = (u&v) | (^u&w), rounds 1
// H = u^v^w,          rounds 2 and 4
// G = (u&v)|(u&w)|(v&w), round 3
func sha1_f(u, v, w uint32) uint32 {
	return (u & v) | (^u & w)
}

func sha1_h(u, v, w uint32) uint32 {
	return u ^ v ^ w
}

func sha1_g(u, v, w uint32) uint32 {
	return (u & v) | (u & w) | (v & w)
}

func (d *SHA1Digest) processBlock() {
	x := &d.x
	// expand 16 words to 80
	for i := 16; i < 80; i++ {
		x[i] = bits.RotateLeft32(x[i-3]^x[i-8]^x[i-14]^x[i-16], 1)
	}

	a, b, c, e, f := d.h[0], d.h[1], d.h[2], d.h[3], d.h[4]

	i := 0
	for ; i < 20; i++ {
		t := bits.RotateLeft32(a, 5) + sha1_f(b, c, e) + f + x[i] + sha1_y1
		f, e, c, b, a = e, c, bits.RotateLeft32(b, 30), a, t
	}
	for ; i < 40; i++ {
		t := bits.RotateLeft32(a, 5) + sha1_h(b, c, e) + f + x[i] + sha1_y2
		f, e, c, b, a = e, c, bits.RotateLeft32(b, 30), a, t
	}
	for ; i < 60; i++ {
		t := bits.RotateLeft32(a, 5) + sha1_g(b, c, e) + f + x[i] + sha1_y3
		f, e, c, b, a = e, c, bits.RotateLeft32(b, 30), a, t
	}
	for ; i < 80; i++ {
		t := bits.RotateLeft32(a, 5) + sha1_h(b, c, e) + f + x[i] + sha1_y4
		f, e, c, b, a = e, c, bits.RotateLeft32(b, 30), a, t
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += e
	d.h[4] += f

	d.xOff = 0
	d.x = [80]uint32{}
}

// SHA1Sum is the one-shot convenience form.
func SHA1Sum(data []byte) [SHA1_SIZE]byte {
	var sum [SHA1_SIZE]byte
	d := NewSHA1()
	d.BlockUpdate(data, 0, len(data))
	d.DoFinal(sum[:], 0)
	return sum
}
