package rlwe

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/hestore/hestore/ring"
	"github.com/hestore/hestore/utils/buffer"
)

// ParmsID identifies one level of a [Context]: a ring degree together with
// an RNS basis. It is the blake3 hash of that pair.
type ParmsID [4]uint64

// ParmsIDZero is the identifier of no parameters. A [Ciphertext]
// carrying it is unbound.
var ParmsIDZero = ParmsID{}

// String returns the hexadecimal representation of the identifier.
func (id ParmsID) String() string {
	return fmt.Sprintf("%016x%016x%016x%016x", id[0], id[1], id[2], id[3])
}

// NewParmsID returns the identifier of the ring degree N with the RNS basis moduli.
func NewParmsID(N int, moduli ring.Moduli) (id ParmsID) {

	buf := buffer.NewBufferSize(16 + 8*len(moduli))

	if _, err := buffer.WriteUint64(buf, uint64(N)); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	if _, err := buffer.WriteUint64(buf, uint64(len(moduli))); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	if _, err := buffer.WriteUint64Slice(buf, moduli); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	sum := blake3.Sum256(buf.Bytes())

	for i := range id {
		id[i] = binary.LittleEndian.Uint64(sum[i<<3:])
	}

	return
}

// ShapeProvider is the view of a parameter context needed to bind
// a [Ciphertext] to a shape.
type ShapeProvider interface {
	// Shape returns the ring degree N and the number of RNS moduli K of the
	// parameters identified by id. It returns an error if id is unknown.
	Shape(id ParmsID) (N, K int, err error)

	// FirstParmsID returns the identifier of the highest data level.
	FirstParmsID() ParmsID
}

// ModuliProvider is a [ShapeProvider] that also exposes the RNS basis of
// each of its levels. It is needed to regenerate or validate residues.
type ModuliProvider interface {
	ShapeProvider

	// CoeffModulus returns the RNS basis of the parameters identified by id.
	// It returns an error if id is unknown.
	CoeffModulus(id ParmsID) ([]uint64, error)
}

// ContextData stores the pre-computed data of one level of a [Context].
type ContextData struct {
	parmsID     ParmsID
	n           int
	moduli      ring.Moduli
	prevParmsID ParmsID
	nextParmsID ParmsID
}

// ParmsID returns the identifier of the level.
func (c *ContextData) ParmsID() ParmsID {
	return c.parmsID
}

// Level returns the index of the last modulus of the level.
func (c *ContextData) Level() int {
	return len(c.moduli) - 1
}

// N returns the ring degree.
func (c *ContextData) N() int {
	return c.n
}

// CoeffModulus returns a copy of the RNS basis of the level.
func (c *ContextData) CoeffModulus() []uint64 {
	return append([]uint64{}, c.moduli...)
}

// CoeffModulusSize returns the number of moduli of the level.
func (c *ContextData) CoeffModulusSize() int {
	return len(c.moduli)
}

// LogQ returns the size in bits of the modulus of the level.
func (c *ContextData) LogQ() float64 {
	return c.moduli.LogModuli()
}

// PrevParmsID returns the identifier of the level above, or ParmsIDZero
// if the level is the key level.
func (c *ContextData) PrevParmsID() ParmsID {
	return c.prevParmsID
}

// NextParmsID returns the identifier of the level below, or ParmsIDZero
// if the level is the last one.
func (c *ContextData) NextParmsID() ParmsID {
	return c.nextParmsID
}

// Context is the chain of levels derived from a set of [Parameters].
// The key level holds all moduli of Q and P. The data levels follow,
// starting with all of Q (the first level) and dropping the last modulus
// of Q at each step down to a single modulus (the last level).
// When P is empty, the key level and the first level coincide.
//
// A Context is immutable once created and safe for concurrent use.
type Context struct {
	params       Parameters
	data         map[ParmsID]*ContextData
	chain        []ParmsID
	keyParmsID   ParmsID
	firstParmsID ParmsID
	lastParmsID  ParmsID
}

// NewContext builds the chain of levels of params.
func NewContext(params Parameters) (*Context, error) {

	if params.QCount() == 0 {
		return nil, fmt.Errorf("cannot NewContext: %w: uninitialized parameters", ErrInvalidArgument)
	}

	ctx := &Context{
		params: params,
		data:   map[ParmsID]*ContextData{},
	}

	N := params.N()

	var bases []ring.Moduli

	if params.PCount() != 0 {
		bases = append(bases, append(append(ring.Moduli{}, params.qi...), params.pi...))
	}

	for level := params.MaxLevel(); level >= 0; level-- {
		bases = append(bases, params.qi.AtLevel(level))
	}

	var prev ParmsID
	for _, moduli := range bases {

		id := NewParmsID(N, moduli)

		ctx.data[id] = &ContextData{
			parmsID:     id,
			n:           N,
			moduli:      moduli,
			prevParmsID: prev,
		}

		if prev != ParmsIDZero {
			ctx.data[prev].nextParmsID = id
		}

		ctx.chain = append(ctx.chain, id)
		prev = id
	}

	ctx.keyParmsID = ctx.chain[0]
	ctx.lastParmsID = ctx.chain[len(ctx.chain)-1]

	if params.PCount() != 0 {
		ctx.firstParmsID = ctx.chain[1]
	} else {
		ctx.firstParmsID = ctx.chain[0]
	}

	return ctx, nil
}

// Parameters returns the parameters the context was built from.
func (ctx *Context) Parameters() Parameters {
	return ctx.params
}

// KeyParmsID returns the identifier of the key level.
func (ctx *Context) KeyParmsID() ParmsID {
	return ctx.keyParmsID
}

// FirstParmsID returns the identifier of the highest data level.
func (ctx *Context) FirstParmsID() ParmsID {
	return ctx.firstParmsID
}

// LastParmsID returns the identifier of the lowest data level.
func (ctx *Context) LastParmsID() ParmsID {
	return ctx.lastParmsID
}

// ParmsIDs returns the identifiers of all levels, from the key level down
// to the last level.
func (ctx *Context) ParmsIDs() []ParmsID {
	return append([]ParmsID{}, ctx.chain...)
}

// GetContextData returns the data of the level identified by id.
func (ctx *Context) GetContextData(id ParmsID) (*ContextData, error) {
	if c, ok := ctx.data[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("cannot GetContextData: %w: unknown ParmsID %s", ErrInvalidArgument, id)
}

// Shape returns the ring degree and the number of moduli of the level identified by id.
func (ctx *Context) Shape(id ParmsID) (N, K int, err error) {
	c, err := ctx.GetContextData(id)
	if err != nil {
		return 0, 0, err
	}
	return c.n, len(c.moduli), nil
}

// CoeffModulus returns a copy of the RNS basis of the level identified by id.
func (ctx *Context) CoeffModulus(id ParmsID) ([]uint64, error) {
	c, err := ctx.GetContextData(id)
	if err != nil {
		return nil, err
	}
	return c.CoeffModulus(), nil
}
