package crypto

import (
	"crypto/rand"
	"io"
	"math/big"

	log "github.com/golang/glog"
)

// primality certainty for the safe-prime test
const dhGenCertainty = 20

// GenerateDHParameters produces a safe-prime group: p = 2q + 1 with p
// and q prime, generator g a quadratic residue so that g generates the
// order-q subgroup, cofactor j = 2. The result passes the normal
// construction validation. bits must leave room for the default
// minimum exponent length. Generation can take a while for large
// moduli; this is an offline operation.
func GenerateDHParameters(bits int, random io.Reader) (*DHParameters, error) {
	if bits <= DH_DEFAULT_MINIMUM_LENGTH {
		return nil, INVALID_PARAMETER.Apply("bits - modulus too small for default exponent minimum")
	}
	if random == nil {
		random = DefaultRandom()
	}

	one := big.NewInt(1)
	for attempt := 1; ; attempt++ {
		q, err := rand.Prime(random, bits-1)
		if err != nil {
			return nil, err
		}
		p := new(big.Int).Lsh(q, 1)
		p.Add(p, one)
		if !p.ProbablyPrime(dhGenCertainty) {
			if log.V(LV_GEN_RETRY) {
				log.Infof("dhgen: attempt %d, 2q+1 composite", attempt)
			}
			continue
		}
		g, err := selectGenerator(p, random)
		if err != nil {
			return nil, err
		}
		if log.V(LV_GEN_FOUND) {
			log.Infof("dhgen: safe prime found after %d attempts, %d bits", attempt, p.BitLen())
		}
		return NewDHParametersFull(p, g, q, bigTwo, defaultMinimumLength(0), 0, nil)
	}
}

// selectGenerator draws h uniformly from [2, p-2] and squares it mod p.
// For a safe prime the square is a generator of the q-order subgroup
// unless it collapses to 1.
func selectGenerator(p *big.Int, random io.Reader) (*big.Int, error) {
	one := big.NewInt(1)
	// h in [2, p-2] <=> 2 + [0, p-4]; rand.Int excludes its bound
	span := new(big.Int).Sub(p, big.NewInt(3))
	for {
		h, err := rand.Int(random, span)
		if err != nil {
			return nil, err
		}
		h.Add(h, bigTwo)
		g := h.Mul(h, h).Mod(h, p)
		if g.Cmp(one) != 0 {
			return g, nil
		}
	}
}
