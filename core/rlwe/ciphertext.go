package rlwe

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/hestore/hestore/utils"
)

// CiphertextSizeMin is the smallest number of polynomials of a non-empty ciphertext.
const CiphertextSizeMin = 2

// Ciphertext stores the residues of a ciphertext of two or more polynomials.
// Each polynomial is kept in RNS form with respect to the K factors of the
// coefficient modulus: N residues modulo q_0, then N residues modulo q_1, and
// so on. The polynomials are packed contiguously in a single [DynArray],
// hence a ciphertext of size T needs exactly T*N*K uint64 of memory.
//
// The size of a ciphertext is the number of polynomials it holds, whereas
// its capacity is the number of polynomials that fit in the current
// allocation. Reserving enough capacity up front avoids reallocations when
// operations change the size.
//
// The shape (ParmsID, N, K) only changes through the reserve and resize
// methods, which take it from a [ShapeProvider]. All methods are synchronous.
// A Ciphertext is not safe for concurrent use: it may be read by several
// goroutines only as long as none of them mutates it.
type Ciphertext struct {
	metaData MetaData

	parmsID           ParmsID
	size              int
	polyModulusDegree int
	coeffModulusSize  int

	data DynArray
}

// NewCiphertext returns a new empty ciphertext allocating no memory.
func NewCiphertext() *Ciphertext {
	return &Ciphertext{metaData: NewMetaData()}
}

// NewCiphertextWithContext returns a new empty ciphertext with capacity 2,
// allocated for the first level of ctx.
func NewCiphertextWithContext(ctx ShapeProvider) (ct *Ciphertext, err error) {
	return NewCiphertextWithCapacity(ctx, ctx.FirstParmsID(), CiphertextSizeMin)
}

// NewCiphertextWithParmsID returns a new empty ciphertext with capacity 2,
// allocated for the level of ctx identified by id.
func NewCiphertextWithParmsID(ctx ShapeProvider, id ParmsID) (ct *Ciphertext, err error) {
	return NewCiphertextWithCapacity(ctx, id, CiphertextSizeMin)
}

// NewCiphertextWithCapacity returns a new empty ciphertext with the given
// capacity, allocated for the level of ctx identified by id.
func NewCiphertextWithCapacity(ctx ShapeProvider, id ParmsID, sizeCapacity int) (ct *Ciphertext, err error) {
	ct = NewCiphertext()
	if err = ct.ReserveWithParmsID(ctx, id, sizeCapacity); err != nil {
		return nil, fmt.Errorf("cannot NewCiphertextWithCapacity: %w", err)
	}
	return
}

func (ct *Ciphertext) stride() int {
	return ct.polyModulusDegree * ct.coeffModulusSize
}

func (ct *Ciphertext) shapeFor(ctx ShapeProvider, id ParmsID) (N, K int, err error) {

	if N, K, err = ctx.Shape(id); err != nil {
		return 0, 0, err
	}

	if N <= 0 || K <= 0 {
		return 0, 0, fmt.Errorf("%w: ParmsID %s has shape N=%d K=%d", ErrInvalidArgument, id, N, K)
	}

	return
}

// ReserveWithParmsID allocates enough memory to hold sizeCapacity
// polynomials of the level of ctx identified by id, and binds the
// ciphertext to that level.
//
// The size is left unchanged, unless the ciphertext was unbound in which
// case it is 0. Residues within the current size are preserved. The
// allocation only grows: if it is already large enough, no memory is
// allocated.
//
// It returns an error wrapping ErrInvalidArgument if id is unknown to ctx,
// if sizeCapacity is smaller than 2, or if the allocation would be too
// large. The ciphertext is left unmodified on error.
func (ct *Ciphertext) ReserveWithParmsID(ctx ShapeProvider, id ParmsID, sizeCapacity int) (err error) {
	N, K, err := ct.shapeFor(ctx, id)
	if err != nil {
		return wrapInvalidArgument("ReserveWithParmsID", err)
	}
	return ct.reserveInternal("ReserveWithParmsID", sizeCapacity, N, K, id)
}

// Reserve is [Ciphertext.ReserveWithParmsID] on the first level of ctx.
func (ct *Ciphertext) Reserve(ctx ShapeProvider, sizeCapacity int) (err error) {
	N, K, err := ct.shapeFor(ctx, ctx.FirstParmsID())
	if err != nil {
		return wrapInvalidArgument("Reserve", err)
	}
	return ct.reserveInternal("Reserve", sizeCapacity, N, K, ctx.FirstParmsID())
}

// ReserveCurrent is [Ciphertext.ReserveWithParmsID] on the level the
// ciphertext is already bound to. It returns an error wrapping ErrLogic if
// the ciphertext is unbound.
func (ct *Ciphertext) ReserveCurrent(sizeCapacity int) (err error) {
	if ct.stride() == 0 {
		return fmt.Errorf("cannot ReserveCurrent: %w: ciphertext is not bound to any parameters", ErrLogic)
	}
	return ct.reserveInternal("ReserveCurrent", sizeCapacity, ct.polyModulusDegree, ct.coeffModulusSize, ct.parmsID)
}

func (ct *Ciphertext) reserveInternal(op string, sizeCapacity, N, K int, id ParmsID) (err error) {

	if sizeCapacity < CiphertextSizeMin {
		return fmt.Errorf("cannot %s: %w: capacity %d is smaller than %d", op, ErrInvalidArgument, sizeCapacity, CiphertextSizeMin)
	}

	size := ct.size
	if ct.stride() == 0 {
		size = 0
	}

	stride, need, err := allocationLen(utils.Max(sizeCapacity, size), N, K)
	if err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	// Only allocation point: nothing is modified before it succeeds.
	if err = ct.data.Reserve(need); err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	// size*stride <= need <= capacity
	if err = ct.data.Resize(size * stride); err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	ct.data.AlignCapacity(stride)

	ct.parmsID = id
	ct.size = size
	ct.polyModulusDegree = N
	ct.coeffModulusSize = K

	return nil
}

// ResizeWithParmsID sets the size of the ciphertext to size polynomials of
// the level of ctx identified by id, reallocating if the capacity is too
// small, and binds the ciphertext to that level.
//
// Polynomials below min(old size, size) are preserved. If the capacity is
// large enough, the polynomials exposed by a growth are NOT zeroed and hold
// the residues last written at that position; callers that need zero
// polynomials must clear them. If the ciphertext reallocates, they are zero.
// Shrinking never releases memory.
//
// It fails under the same conditions as [Ciphertext.ReserveWithParmsID] and
// leaves the ciphertext unmodified on error.
func (ct *Ciphertext) ResizeWithParmsID(ctx ShapeProvider, id ParmsID, size int) (err error) {
	N, K, err := ct.shapeFor(ctx, id)
	if err != nil {
		return wrapInvalidArgument("ResizeWithParmsID", err)
	}
	return ct.resizeInternal("ResizeWithParmsID", size, N, K, id)
}

// Resize is [Ciphertext.ResizeWithParmsID] on the first level of ctx.
func (ct *Ciphertext) Resize(ctx ShapeProvider, size int) (err error) {
	N, K, err := ct.shapeFor(ctx, ctx.FirstParmsID())
	if err != nil {
		return wrapInvalidArgument("Resize", err)
	}
	return ct.resizeInternal("Resize", size, N, K, ctx.FirstParmsID())
}

// ResizeCurrent is [Ciphertext.ResizeWithParmsID] on the level the
// ciphertext is already bound to. It returns an error wrapping ErrLogic if
// the ciphertext is unbound.
func (ct *Ciphertext) ResizeCurrent(size int) (err error) {
	if ct.stride() == 0 {
		return fmt.Errorf("cannot ResizeCurrent: %w: ciphertext is not bound to any parameters", ErrLogic)
	}
	return ct.resizeInternal("ResizeCurrent", size, ct.polyModulusDegree, ct.coeffModulusSize, ct.parmsID)
}

func (ct *Ciphertext) resizeInternal(op string, size, N, K int, id ParmsID) (err error) {

	if size < CiphertextSizeMin {
		return fmt.Errorf("cannot %s: %w: size %d is smaller than %d", op, ErrInvalidArgument, size, CiphertextSizeMin)
	}

	stride, need, err := allocationLen(size, N, K)
	if err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	// Reallocates to exactly need if the capacity is too small.
	if err = ct.data.Resize(need); err != nil {
		return fmt.Errorf("cannot %s: %w", op, err)
	}

	ct.data.AlignCapacity(stride)

	ct.parmsID = id
	ct.size = size
	ct.polyModulusDegree = N
	ct.coeffModulusSize = K

	return nil
}

// allocationLen returns N*K and size*N*K, or an error if either overflows
// or exceeds MaxDynArrayLen.
func allocationLen(size, N, K int) (stride, total int, err error) {

	var ok bool
	if stride, ok = utils.MulSafe(N, K); !ok {
		return 0, 0, fmt.Errorf("%w: N=%d * K=%d overflows", ErrInvalidArgument, N, K)
	}

	if total, ok = utils.MulSafe(size, stride); !ok || total > MaxDynArrayLen {
		return 0, 0, fmt.Errorf("%w: %d polynomials of N=%d * K=%d residues exceed the maximum allocation", ErrInvalidArgument, size, N, K)
	}

	return
}

// Release frees the memory of the ciphertext and resets it to the empty,
// unbound state with default metadata.
func (ct *Ciphertext) Release() {
	ct.metaData = NewMetaData()
	ct.parmsID = ParmsIDZero
	ct.size = 0
	ct.polyModulusDegree = 0
	ct.coeffModulusSize = 0
	ct.data.Release()
}

// CopyNew returns a deep copy of the ciphertext.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{
		metaData:          ct.metaData,
		parmsID:           ct.parmsID,
		size:              ct.size,
		polyModulusDegree: ct.polyModulusDegree,
		coeffModulusSize:  ct.coeffModulusSize,
		data:              *ct.data.CopyNew(),
	}
}

// Copy sets the target to a deep copy of ctCopy.
func (ct *Ciphertext) Copy(ctCopy *Ciphertext) {
	if ct != ctCopy {
		*ct = *ctCopy.CopyNew()
	}
}

// MoveFrom transfers the memory and all fields of src to the target,
// whose previous memory is dropped, and leaves src empty and unbound.
func (ct *Ciphertext) MoveFrom(src *Ciphertext) {
	if ct != src {
		*ct = *src
		src.Release()
	}
}

// Equal returns true if both ciphertexts have the same shape, metadata and
// residues within their size.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	return ct.parmsID == other.parmsID &&
		ct.size == other.size &&
		ct.polyModulusDegree == other.polyModulusDegree &&
		ct.coeffModulusSize == other.coeffModulusSize &&
		ct.metaData.Equal(&other.metaData) &&
		cmp.Equal(ct.data.data, other.data.data)
}

// Data returns the whole allocation of the ciphertext, SizeCapacity()*N*K
// residues. The returned slice shares memory with the ciphertext and is
// invalidated by any later reallocation.
func (ct *Ciphertext) Data() []uint64 {
	return ct.data.Data()
}

// Poly returns the N*K residues of the polynomial at index polyIndex.
// It returns nil if the ciphertext is unbound, and an error wrapping
// ErrOutOfRange if polyIndex is not in [0, Size()). The returned slice
// shares memory with the ciphertext.
func (ct *Ciphertext) Poly(polyIndex int) ([]uint64, error) {

	stride := ct.stride()

	if stride == 0 {
		return nil, nil
	}

	if polyIndex < 0 || polyIndex >= ct.size {
		return nil, fmt.Errorf("cannot Poly: %w: polyIndex %d not in [0, %d)", ErrOutOfRange, polyIndex, ct.size)
	}

	start := polyIndex * stride
	return ct.data.data[start : start+stride : start+stride], nil
}

// PolyRNS returns the N residues modulo the j-th prime of the polynomial
// at index polyIndex. The returned slice shares memory with the ciphertext.
func (ct *Ciphertext) PolyRNS(polyIndex, j int) ([]uint64, error) {

	pol, err := ct.Poly(polyIndex)
	if err != nil || pol == nil {
		return pol, err
	}

	if j < 0 || j >= ct.coeffModulusSize {
		return nil, fmt.Errorf("cannot PolyRNS: %w: modulus index %d not in [0, %d)", ErrOutOfRange, j, ct.coeffModulusSize)
	}

	N := ct.polyModulusDegree
	return pol[j*N : (j+1)*N : (j+1)*N], nil
}

// At returns the residue at the flat index coeffIndex. The index ranges over
// the Size()*N*K residues of the ciphertext; residues allocated beyond the
// size are not reachable and yield an error wrapping ErrOutOfRange.
func (ct *Ciphertext) At(coeffIndex int) (uint64, error) {
	return ct.data.At(coeffIndex)
}

// Set sets the residue at the flat index coeffIndex to v. It has the same
// bounds as [Ciphertext.At].
func (ct *Ciphertext) Set(coeffIndex int, v uint64) error {
	return ct.data.Set(coeffIndex, v)
}

// MetaData returns a copy of the metadata of the ciphertext.
func (ct *Ciphertext) MetaData() MetaData {
	return ct.metaData
}

// SetMetaData replaces the metadata of the ciphertext.
func (ct *Ciphertext) SetMetaData(m MetaData) {
	ct.metaData = m
}

// IsNTT returns true if the polynomials are in the NTT domain.
func (ct *Ciphertext) IsNTT() bool {
	return ct.metaData.IsNTT
}

// SetNTT sets the NTT-domain flag.
func (ct *Ciphertext) SetNTT(isNTT bool) {
	ct.metaData.IsNTT = isNTT
}

// Scale returns the scale. It is only meaningful for approximate schemes.
func (ct *Ciphertext) Scale() float64 {
	return ct.metaData.Scale
}

// SetScale sets the scale.
func (ct *Ciphertext) SetScale(scale float64) {
	ct.metaData.Scale = scale
}

// CorrectionFactor returns the correction factor. It is only meaningful
// for exact schemes.
func (ct *Ciphertext) CorrectionFactor() uint64 {
	return ct.metaData.CorrectionFactor
}

// SetCorrectionFactor sets the correction factor.
func (ct *Ciphertext) SetCorrectionFactor(factor uint64) {
	ct.metaData.CorrectionFactor = factor
}

// ParmsID returns the identifier of the parameters the ciphertext is bound
// to, or ParmsIDZero if it is unbound.
func (ct *Ciphertext) ParmsID() ParmsID {
	return ct.parmsID
}

// PolyModulusDegree returns the ring degree N of the bound parameters.
func (ct *Ciphertext) PolyModulusDegree() int {
	return ct.polyModulusDegree
}

// CoeffModulusSize returns the number of moduli K of the bound parameters.
func (ct *Ciphertext) CoeffModulusSize() int {
	return ct.coeffModulusSize
}

// Size returns the number of polynomials of the ciphertext.
func (ct *Ciphertext) Size() int {
	return ct.size
}

// SizeCapacity returns the largest size the current allocation can hold
// with the bound parameters, 0 if the ciphertext is unbound.
func (ct *Ciphertext) SizeCapacity() int {
	if stride := ct.stride(); stride != 0 {
		return ct.data.Capacity() / stride
	}
	return 0
}

// IsTransparent returns true if the ciphertext can be decrypted without the
// secret key: when it is empty, when its size is below CiphertextSizeMin, or
// when every residue of its polynomials 1 to Size()-1 is zero. Ciphertexts
// from untrusted sources should be checked before use. A false result does
// not imply that the ciphertext is well formed.
func (ct *Ciphertext) IsTransparent() bool {
	if ct.data.Size() == 0 || ct.size < CiphertextSizeMin {
		return true
	}
	return utils.IsZero(ct.data.data[ct.stride():])
}
