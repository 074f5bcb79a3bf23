package crypto

import (
	"encoding/binary"
	"fmt"

	"github.com/gatekeep/Trident.RPC-sub004/exception"
)

var (
	NULL_ARGUMENT     = exception.New("Null argument:")
	INVALID_PARAMETER = exception.New("Invalid parameter:")
	OUT_OF_RANGE      = exception.New("Out of range:")
)

// Digest is an incremental message digest engine. One instance computes
// one digest at a time; DoFinal resets it for the next computation.
// Instances are not safe for concurrent use.
type Digest interface {
	// AlgorithmName returns the canonical algorithm name, e.g. "SHA-1".
	AlgorithmName() string
	// DigestSize returns the output length in bytes.
	DigestSize() int
	// Update feeds one byte into the engine.
	Update(b byte)
	// BlockUpdate feeds data[off:off+n] into the engine.
	BlockUpdate(data []byte, off, n int) error
	// DoFinal pads, compresses the tail, writes DigestSize() bytes into
	// out starting at off, resets the engine and returns bytes written.
	DoFinal(out []byte, off int) (int, error)
	// Reset restores the engine to its post-construction state.
	Reset()
}

// compressor is the algorithm-specific half of a Merkle-Damgard digest.
// The word engine owns byte buffering, the running byte count and the
// padding discipline; the compressor owns the word block and the hash
// state.
type compressor interface {
	// processWord accepts the next big-endian 32-bit word. The
	// compressor runs a block compression once 16 words accumulate.
	processWord(w uint32)
	// processLength stores the total input bit count into the last two
	// words of the final block, wrapping into an extra block when the
	// padding left the block past word 14.
	processLength(bitLen uint64)
	// processBlock compresses the pending word block into the hash state.
	processBlock()
}

// wordEngine assembles an unbounded byte stream into big-endian 32-bit
// words and applies MD-style padding at finalization. Concrete digests
// embed it and plug themselves in as the compressor.
type wordEngine struct {
	c         compressor
	buf       [4]byte
	bufOff    int
	byteCount uint64
}

func (e *wordEngine) Update(b byte) {
	e.buf[e.bufOff] = b
	e.bufOff++
	if e.bufOff == len(e.buf) {
		e.c.processWord(binary.BigEndian.Uint32(e.buf[:]))
		e.bufOff = 0
	}
	e.byteCount++
}

func (e *wordEngine) BlockUpdate(data []byte, off, n int) error {
	if off < 0 || n < 0 || off+n > len(data) || off+n < 0 {
		return OUT_OF_RANGE.Apply(fmt.Sprintf("off=%d n=%d len=%d", off, n, len(data)))
	}
	// drain the partial word first
	for e.bufOff != 0 && n > 0 {
		e.Update(data[off])
		off++
		n--
	}
	// whole words straight from the input
	for n >= 4 {
		e.c.processWord(binary.BigEndian.Uint32(data[off:]))
		off += 4
		n -= 4
		e.byteCount += 4
	}
	// trailing fragment
	for n > 0 {
		e.Update(data[off])
		off++
		n--
	}
	return nil
}

// finish closes the stream: 0x80 sentinel, zero fill to a word
// boundary, bit-length words, final compression. The bit length is
// captured before the sentinel so padding bytes are not counted.
func (e *wordEngine) finish() {
	bitLen := e.byteCount << 3
	e.Update(0x80)
	for e.bufOff != 0 {
		e.Update(0)
	}
	e.c.processLength(bitLen)
	e.c.processBlock()
}

func (e *wordEngine) resetWords() {
	e.byteCount = 0
	e.bufOff = 0
	e.buf = [4]byte{}
}
