package separation

import (
	"fmt"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Kind tags the variable families of the model.
type Kind uint8

const (
	KindY   Kind = iota + 1 // vertex in prefix
	KindU                   // boundary vertex
	KindZ                   // width charge
	KindAux                 // cardinality encoding
)

func (k Kind) String() string {
	switch k {
	case KindY:
		return "y"
	case KindU:
		return "u"
	case KindZ:
		return "z"
	case KindAux:
		return "aux"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Key names one boolean variable. Vertex is empty for KindZ and KindAux;
// for KindAux, Step holds the auxiliary serial number.
type Key struct {
	Kind   Kind
	Vertex string
	Step   int
}

// Y returns the key of y(v,t).
func Y(v string, t int) Key { return Key{Kind: KindY, Vertex: v, Step: t} }

// U returns the key of u(v,t).
func U(v string, t int) Key { return Key{Kind: KindU, Vertex: v, Step: t} }

// Z returns the key of z(t).
func Z(t int) Key { return Key{Kind: KindZ, Step: t} }

func (k Key) String() string {
	switch k.Kind {
	case KindY, KindU:
		return fmt.Sprintf("%s(%s,%d)", k.Kind, k.Vertex, k.Step)
	}
	return fmt.Sprintf("%s(%d)", k.Kind, k.Step)
}

// Pool maps keys to dense variable IDs starting at 1. IDs are allocated on
// first use and never released.
type Pool struct {
	ids  map[Key]int
	keys []Key // keys[id-1]
	aux  int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{ids: make(map[Key]int)}
}

// ID returns the variable ID of k, allocating one if k is new.
func (p *Pool) ID(k Key) int {
	if id, ok := p.ids[k]; ok {
		return id
	}
	p.keys = append(p.keys, k)
	id := len(p.keys)
	p.ids[k] = id
	return id
}

// Lookup returns the ID of k without allocating.
func (p *Pool) Lookup(k Key) (int, bool) {
	id, ok := p.ids[k]
	return id, ok
}

// Fresh allocates an anonymous auxiliary variable.
func (p *Pool) Fresh() int {
	p.aux++
	return p.ID(Key{Kind: KindAux, Step: p.aux})
}

// Key returns the key allocated under id.
func (p *Pool) Key(id int) (Key, error) {
	if id < 1 || id > len(p.keys) {
		return Key{}, hcerrors.New(hcerrors.ErrCodeEncoding, "no variable allocated for id %d (pool size %d)", id, len(p.keys))
	}
	return p.keys[id-1], nil
}

// Len returns the number of allocated variables.
func (p *Pool) Len() int { return len(p.keys) }
