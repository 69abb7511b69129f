package person

import (
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
)

// identifier alphabet: digits, lowercase, uppercase
const (
	idChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// IDLen is the length of a generated record identifier.
	IDLen = 40
)

// Generator produces random people records. It is not safe for
// concurrent use.
type Generator struct {
	rand  *rand.Rand
	faker *gofakeit.Faker
}

// New creates a generator with a random seed.
func New() *Generator {
	return NewWithSource(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeeded creates a generator whose output is fully determined by seed.
func NewSeeded(seed uint64) *Generator {
	return NewWithSource(rand.NewPCG(seed, seed))
}

// NewWithSource creates a generator drawing all randomness from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{
		rand:  rand.New(src),
		faker: gofakeit.NewFaker(src, false),
	}
}

// Generate produces a complete random record.
func (g *Generator) Generate() Record {
	return Record{
		ID:       g.ID(),
		Email:    g.Email(),
		Name:     g.Name(),
		IsParent: g.IsParent(),
	}
}

// ID generates an IDLen character alphanumeric identifier, one uniformly
// random character per position.
func (g *Generator) ID() string {
	buf := make([]byte, IDLen)
	for i := range buf {
		buf[i] = idChars[g.rand.IntN(len(idChars))]
	}
	return string(buf)
}

// Email generates a fake email address.
func (g *Generator) Email() string {
	return g.faker.Email()
}

// Name generates a fake full name.
func (g *Generator) Name() string {
	return g.faker.Name()
}

// IsParent returns a random boolean.
func (g *Generator) IsParent() bool {
	return g.faker.Bool()
}

// IsID reports whether s has the shape of a generated identifier.
func IsID(s string) bool {
	if len(s) != IDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}
