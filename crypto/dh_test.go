package crypto

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func mustGroup(t *testing.T, name string) *DHParameters {
	t.Helper()
	params, err := StandardGroup(name)
	if err != nil {
		t.Fatal(err)
	}
	return params
}

// toy groups keep m at zero; the 160-bit default minimum only fits
// real-sized moduli
func toyParams(t *testing.T, p, g int64) (*DHParameters, error) {
	t.Helper()
	return NewDHParametersFull(big.NewInt(p), big.NewInt(g), nil, nil, 0, 0, nil)
}

func Test_dh_generator_range(t *testing.T) {
	if _, err := toyParams(t, 23, 1); !INVALID_PARAMETER.Is(err) {
		t.Error("g=1 accepted:", err)
	}
	if _, err := toyParams(t, 23, 22); !INVALID_PARAMETER.Is(err) {
		t.Error("g=p-1 accepted:", err)
	}
	if _, err := toyParams(t, 23, 0); !INVALID_PARAMETER.Is(err) {
		t.Error("g=0 accepted:", err)
	}
	params, err := toyParams(t, 23, 5)
	if err != nil {
		t.Fatal("g=5 rejected:", err)
	}
	if params.Q() != nil || params.J() != nil || params.L() != 0 {
		t.Error("optional fields not absent")
	}
}

func Test_dh_null_arguments(t *testing.T) {
	if _, err := NewDHParameters(nil, big.NewInt(2)); !NULL_ARGUMENT.Is(err) {
		t.Error("nil p:", err)
	}
	if _, err := NewDHParameters(big.NewInt(23), nil); !NULL_ARGUMENT.Is(err) {
		t.Error("nil g:", err)
	}
}

func Test_dh_modulus_odd(t *testing.T) {
	if _, err := NewDHParametersFull(big.NewInt(24), big.NewInt(5), nil, nil, 0, 0, nil); !INVALID_PARAMETER.Is(err) {
		t.Error("even p accepted:", err)
	}
}

func Test_dh_subgroup_order(t *testing.T) {
	p := big.NewInt(23) // 5 bits
	if _, err := NewDHParametersFull(p, big.NewInt(5), big.NewInt(29), nil, 0, 0, nil); !INVALID_PARAMETER.Is(err) {
		t.Error("bitlen(q) >= bitlen(p) accepted:", err)
	}
	if _, err := NewDHParametersFull(p, big.NewInt(5), big.NewInt(11), nil, 0, 0, nil); err != nil {
		t.Error("valid q rejected:", err)
	}
}

func Test_dh_exponent_lengths(t *testing.T) {
	p := big.NewInt(23) // 5 bits
	g := big.NewInt(5)
	if _, err := NewDHParametersFull(p, g, nil, nil, 5, 0, nil); !INVALID_PARAMETER.Is(err) {
		t.Error("m == bitlen(p) accepted:", err)
	}
	if _, err := NewDHParametersFull(p, g, nil, nil, 0, 5, nil); !INVALID_PARAMETER.Is(err) {
		t.Error("l == bitlen(p) accepted:", err)
	}
	if _, err := NewDHParametersFull(p, g, nil, nil, 3, 2, nil); !INVALID_PARAMETER.Is(err) {
		t.Error("l < m accepted:", err)
	}
	params, err := NewDHParametersFull(p, g, nil, nil, 2, 4, nil)
	if err != nil {
		t.Fatal("valid m/l rejected:", err)
	}
	if params.M() != 2 || params.L() != 4 {
		t.Error("m/l accessors:", params.M(), params.L())
	}

	// the simple constructor applies the 160-bit default minimum, so a
	// toy modulus is rejected via the m rule
	if _, err := NewDHParameters(p, g); !INVALID_PARAMETER.Is(err) {
		t.Error("default minimum not applied:", err)
	}
	// and an explicit small l caps the default
	if _, err := NewDHParametersWithLength(p, g, nil, 4); err != nil {
		t.Error("capped default minimum rejected:", err)
	}
}

func Test_dh_cofactor(t *testing.T) {
	p := big.NewInt(23)
	g := big.NewInt(5)
	if _, err := NewDHParametersFull(p, g, nil, big.NewInt(1), 0, 0, nil); !INVALID_PARAMETER.Is(err) {
		t.Error("j=1 accepted:", err)
	}
	params, err := NewDHParametersFull(p, g, big.NewInt(11), bigTwo, 0, 0, nil)
	if err != nil {
		t.Fatal("j=2 rejected:", err)
	}
	if params.J().Cmp(bigTwo) != 0 {
		t.Error("j accessor")
	}
}

// p = j*q + 1 is deliberately not cross-checked; inconsistent (q, j)
// pairs pass validation by design
func Test_dh_no_cofactor_cross_check(t *testing.T) {
	p := big.NewInt(23)
	// 23 != 5*7 + 1, still accepted
	if _, err := NewDHParametersFull(p, big.NewInt(5), big.NewInt(7), big.NewInt(5), 0, 0, nil); err != nil {
		t.Error("documented relaxation no longer holds:", err)
	}
}

func Test_dh_equality(t *testing.T) {
	p, g, q := big.NewInt(227), big.NewInt(5), big.NewInt(113)

	a, err := NewDHParametersFull(p, g, q, nil, 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	// same (p, g, q), different l, j and seed
	seed := NewDHValidationParameters([]byte{1, 2, 3}, 42)
	b, err := NewDHParametersFull(new(big.Int).Set(p), new(big.Int).Set(g), new(big.Int).Set(q), bigTwo, 2, 6, seed)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("identity must cover (p, g, q) only")
	}
	if a.HashCode() != b.HashCode() {
		t.Error("equal parameters with different hash codes")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprint mismatch")
	}

	// absent q is distinct from any concrete q
	c, err := NewDHParametersFull(p, g, nil, nil, 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) || c.Equal(a) {
		t.Error("absent q compared equal to concrete q")
	}
	if a.Equal(nil) {
		t.Error("equal to nil")
	}

	d, _ := NewDHParametersFull(p, big.NewInt(7), q, nil, 0, 0, nil)
	if a.Equal(d) {
		t.Error("different g compared equal")
	}
}

func Test_dh_validation_parameters(t *testing.T) {
	seed := []byte{0xde, 0xad, 0xbe, 0xef}
	v := NewDHValidationParameters(seed, 7)
	seed[0] = 0 // caller mutation must not reach the stored copy
	if v.Seed()[0] != 0xde || v.Counter() != 7 {
		t.Error("seed not copied at construction")
	}
	got := v.Seed()
	got[1] = 0
	if v.Seed()[1] != 0xad {
		t.Error("accessor leaked internal seed")
	}
	if !v.Equal(NewDHValidationParameters([]byte{0xde, 0xad, 0xbe, 0xef}, 7)) {
		t.Error("equal validation params compared unequal")
	}
	if v.Equal(NewDHValidationParameters([]byte{0xde, 0xad, 0xbe, 0xef}, 8)) {
		t.Error("different counter compared equal")
	}
}

func Test_parameters_with_random(t *testing.T) {
	group := mustGroup(t, "modp1024")

	if _, err := NewParametersWithRandom(nil, rand.Reader); !NULL_ARGUMENT.Is(err) {
		t.Error("nil parameters:", err)
	}
	if _, err := NewParametersWithRandom(group, nil); !NULL_ARGUMENT.Is(err) {
		t.Error("nil random:", err)
	}

	pr, err := NewParametersWithRandom(group, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	// identity, not copies
	if pr.Parameters() != group {
		t.Error("parameters copied")
	}
	if pr.Random() != rand.Reader {
		t.Error("random source copied")
	}

	pr, err = NewParametersWithDefaultRandom(group)
	if err != nil {
		t.Fatal(err)
	}
	if pr.Random() == nil || pr.Random() != DefaultRandom() {
		t.Error("default source not attached")
	}
}

func Test_standard_groups(t *testing.T) {
	sizes := map[string]int{
		"modp768":  768,
		"modp1024": 1024,
		"modp1536": 1536,
		"modp2048": 2048,
	}
	for _, name := range StandardGroupNames() {
		params := mustGroup(t, name)
		if params.P().BitLen() != sizes[name] {
			t.Errorf("%s: bitlen=%d", name, params.P().BitLen())
		}
		if params.G().Cmp(bigTwo) != 0 {
			t.Errorf("%s: g=%v", name, params.G())
		}
		// cached lookups share the validated instance
		if again := mustGroup(t, name); again != params {
			t.Errorf("%s: cache returned a new instance", name)
		}
	}
	if _, err := StandardGroup("modp9999"); !NO_SUCH_GROUP.Is(err) {
		t.Error("unknown group:", err)
	}
}

func Test_generate_parameters(t *testing.T) {
	if testing.Short() {
		t.Skip("prime generation is slow")
	}
	if _, err := GenerateDHParameters(160, rand.Reader); !INVALID_PARAMETER.Is(err) {
		t.Fatal("undersized modulus accepted:", err)
	}

	params, err := GenerateDHParameters(256, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	p, q, g := params.P(), params.Q(), params.G()
	if p.BitLen() != 256 {
		t.Error("p bitlen:", p.BitLen())
	}
	if !p.ProbablyPrime(32) || !q.ProbablyPrime(32) {
		t.Error("p or q not prime")
	}
	// p = 2q + 1
	expect := new(big.Int).Lsh(q, 1)
	expect.Add(expect, big.NewInt(1))
	if p.Cmp(expect) != 0 {
		t.Error("p != 2q+1")
	}
	if params.J().Cmp(bigTwo) != 0 {
		t.Error("cofactor:", params.J())
	}
	// g generates the q-order subgroup: g^q mod p == 1, g != 1
	if new(big.Int).Exp(g, q, p).Cmp(big.NewInt(1)) != 0 {
		t.Error("g does not have order q")
	}
}

func Test_dh_hashcode_distinct(t *testing.T) {
	a := mustGroup(t, "modp1024")
	b := mustGroup(t, "modp2048")
	if a.HashCode() == b.HashCode() {
		t.Error("distinct groups share a hash code")
	}
}
