package crypto

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/dchest/siphash"
)

// Private exponents shorter than this are rejected by default.
const DH_DEFAULT_MINIMUM_LENGTH = 160

var (
	bigTwo = big.NewInt(2)
)

// siphash key for parameter identity hashing, fixed so fingerprints
// are stable across processes.
const (
	dhHashK0 = 0x7472696472706301
	dhHashK1 = 0x6468706172616d73
)

// DHValidationParameters carries the seed material proving p and g were
// derived verifiably. Its structure is opaque to parameter validation
// and it is excluded from parameter identity.
type DHValidationParameters struct {
	seed    []byte
	counter int
}

func NewDHValidationParameters(seed []byte, counter int) *DHValidationParameters {
	return &DHValidationParameters{
		seed:    append([]byte(nil), seed...),
		counter: counter,
	}
}

func (v *DHValidationParameters) Seed() []byte {
	return append([]byte(nil), v.seed...)
}

func (v *DHValidationParameters) Counter() int {
	return v.counter
}

func (v *DHValidationParameters) Equal(o *DHValidationParameters) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.counter == o.counter && bytes.Equal(v.seed, o.seed)
}

// DHParameters is an immutable, validated description of a
// Diffie-Hellman group. All range checks run once at construction; a
// built instance never becomes invalid and is safe to share read-only
// across goroutines.
//
//	p: odd prime modulus
//	g: generator in [2, p-2]
//	q: optional prime subgroup order, bitlen(q) < bitlen(p)
//	j: optional cofactor, j >= 2
//	m: minimum private exponent bit length
//	l: optional exact private exponent bit length, m <= l < bitlen(p)
//
// Identity (Equal, HashCode) covers (p, g, q) only; m, l, j and the
// validation seed never participate.
//
// Known relaxation kept from the reference behavior: p = j*q + 1 is NOT
// cross-checked even when both q and j are supplied. Adding the check
// would silently change the set of accepted parameter files.
type DHParameters struct {
	p, g, q, j *big.Int
	m, l       int
	validation *DHValidationParameters
}

func NewDHParameters(p, g *big.Int) (*DHParameters, error) {
	return NewDHParametersFull(p, g, nil, nil, defaultMinimumLength(0), 0, nil)
}

func NewDHParametersSubgroup(p, g, q *big.Int) (*DHParameters, error) {
	return NewDHParametersFull(p, g, q, nil, defaultMinimumLength(0), 0, nil)
}

func NewDHParametersWithLength(p, g, q *big.Int, l int) (*DHParameters, error) {
	return NewDHParametersFull(p, g, q, nil, defaultMinimumLength(l), l, nil)
}

func NewDHParametersFull(p, g, q, j *big.Int, m, l int, validation *DHValidationParameters) (*DHParameters, error) {
	if p == nil {
		return nil, NULL_ARGUMENT.Apply("p")
	}
	if g == nil {
		return nil, NULL_ARGUMENT.Apply("g")
	}
	if p.Bit(0) != 1 {
		return nil, INVALID_PARAMETER.Apply("p - field must be an odd prime")
	}
	if g.Cmp(bigTwo) < 0 || g.Cmp(new(big.Int).Sub(p, bigTwo)) > 0 {
		return nil, INVALID_PARAMETER.Apply("g - generator must be in the range [2, p - 2]")
	}
	if q != nil && q.BitLen() >= p.BitLen() {
		return nil, INVALID_PARAMETER.Apply("q - too big to be a factor of (p-1)")
	}
	if m >= p.BitLen() {
		return nil, INVALID_PARAMETER.Apply("m - value must be < bitlength of p")
	}
	if l != 0 {
		if l >= p.BitLen() {
			return nil, INVALID_PARAMETER.Apply("l - value must be < bitlength of p")
		}
		if l < m {
			return nil, INVALID_PARAMETER.Apply("l - value may not be less than m value")
		}
	}
	if j != nil && j.Cmp(bigTwo) < 0 {
		return nil, INVALID_PARAMETER.Apply("j - subgroup factor must be >= 2")
	}
	return &DHParameters{p: p, g: g, q: q, j: j, m: m, l: l, validation: validation}, nil
}

// l == 0 means no explicit exponent length; the default minimum applies
// but never exceeds an explicit l.
func defaultMinimumLength(l int) int {
	if l == 0 || l >= DH_DEFAULT_MINIMUM_LENGTH {
		return DH_DEFAULT_MINIMUM_LENGTH
	}
	return l
}

func (d *DHParameters) P() *big.Int { return d.p }
func (d *DHParameters) G() *big.Int { return d.g }
func (d *DHParameters) Q() *big.Int { return d.q }
func (d *DHParameters) J() *big.Int { return d.j }
func (d *DHParameters) M() int      { return d.m }
func (d *DHParameters) L() int      { return d.l }

func (d *DHParameters) ValidationParameters() *DHValidationParameters {
	return d.validation
}

// Equal compares (p, g, q) only. An absent q is distinct from any
// concrete subgroup order.
func (d *DHParameters) Equal(o *DHParameters) bool {
	if o == nil {
		return false
	}
	if (d.q == nil) != (o.q == nil) {
		return false
	}
	if d.q != nil && d.q.Cmp(o.q) != 0 {
		return false
	}
	return d.p.Cmp(o.p) == 0 && d.g.Cmp(o.g) == 0
}

// HashCode is a 64-bit identity hash over (p, g, q), stable across
// processes. Equal parameter sets always share a hash code.
func (d *DHParameters) HashCode() uint64 {
	var enc bytes.Buffer
	writeLV := func(i *big.Int) {
		if i == nil {
			enc.WriteByte(0)
			return
		}
		b := i.Bytes()
		enc.WriteByte(1)
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(b)))
		enc.Write(n[:])
		enc.Write(b)
	}
	writeLV(d.p)
	writeLV(d.g)
	writeLV(d.q)
	return siphash.Hash(dhHashK0, dhHashK1, enc.Bytes())
}
