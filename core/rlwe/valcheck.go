package rlwe

import (
	"fmt"
	"math"

	"github.com/hestore/hestore/ring"
)

// IsMetadataValidFor returns true if the shape and metadata of the
// ciphertext are consistent with ctx: the ParmsID is known to ctx with the
// same N and K, the size is either 0 (unbound) or at least CiphertextSizeMin,
// the scale is finite and positive and the correction factor is non-zero.
// The residues are not inspected.
func (ct *Ciphertext) IsMetadataValidFor(ctx ShapeProvider) bool {
	return ct.validateMetadata(ctx) == nil
}

// IsBufferValid returns true if the backing store matches the shape: its
// logical length is exactly Size()*N*K and its capacity is a multiple of N*K.
func (ct *Ciphertext) IsBufferValid() bool {
	return ct.validateBuffer() == nil
}

// IsDataValidFor returns true if the ciphertext is valid for ctx according
// to [Ciphertext.IsMetadataValidFor] and [Ciphertext.IsBufferValid], and
// every residue modulo q_j is smaller than q_j. A seeded ciphertext is never
// data-valid: it must be expanded first.
//
// The check is linear in the size of the ciphertext.
func (ct *Ciphertext) IsDataValidFor(ctx ModuliProvider) bool {
	return ct.Validate(ctx) == nil
}

// IsValidFor is an alias of [Ciphertext.IsDataValidFor].
func (ct *Ciphertext) IsValidFor(ctx ModuliProvider) bool {
	return ct.IsDataValidFor(ctx)
}

// Validate is [Ciphertext.IsDataValidFor] returning the reason of the
// failure, wrapping ErrInvalidArgument.
func (ct *Ciphertext) Validate(ctx ModuliProvider) (err error) {

	if err = ct.validateMetadata(ctx); err != nil {
		return fmt.Errorf("cannot Validate: %w", err)
	}

	if err = ct.validateBuffer(); err != nil {
		return fmt.Errorf("cannot Validate: %w", err)
	}

	if ct.stride() == 0 {
		return nil
	}

	moduli, err := ctx.CoeffModulus(ct.parmsID)
	if err != nil {
		return wrapInvalidArgument("Validate", err)
	}

	N := ct.polyModulusDegree
	basis := ring.Moduli(moduli)

	for i := 0; i < ct.size; i++ {
		pol, _ := ct.Poly(i)
		if !basis.IsReduced(N, pol) {
			return fmt.Errorf("cannot Validate: %w: polynomial %d has unreduced residues", ErrInvalidArgument, i)
		}
	}

	return nil
}

func (ct *Ciphertext) validateMetadata(ctx ShapeProvider) error {

	if ct.parmsID == ParmsIDZero {
		if ct.stride() != 0 || ct.size != 0 {
			return fmt.Errorf("%w: unbound ciphertext has a shape", ErrInvalidArgument)
		}
	} else {

		N, K, err := ctx.Shape(ct.parmsID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		if N != ct.polyModulusDegree || K != ct.coeffModulusSize {
			return fmt.Errorf("%w: shape N=%d K=%d does not match ParmsID %s (N=%d K=%d)", ErrInvalidArgument, ct.polyModulusDegree, ct.coeffModulusSize, ct.parmsID, N, K)
		}

		if ct.size != 0 && ct.size < CiphertextSizeMin {
			return fmt.Errorf("%w: size %d is smaller than %d", ErrInvalidArgument, ct.size, CiphertextSizeMin)
		}
	}

	if s := ct.metaData.Scale; math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return fmt.Errorf("%w: invalid scale %v", ErrInvalidArgument, s)
	}

	if ct.metaData.CorrectionFactor == 0 {
		return fmt.Errorf("%w: correction factor is zero", ErrInvalidArgument)
	}

	return nil
}

func (ct *Ciphertext) validateBuffer() error {

	stride := ct.stride()

	if stride == 0 {
		if ct.data.Capacity() != 0 {
			return fmt.Errorf("%w: unbound ciphertext holds %d residues", ErrInvalidArgument, ct.data.Capacity())
		}
		return nil
	}

	if ct.data.Size() != ct.size*stride {
		return fmt.Errorf("%w: buffer holds %d residues but size*N*K=%d", ErrInvalidArgument, ct.data.Size(), ct.size*stride)
	}

	if ct.data.Capacity()%stride != 0 {
		return fmt.Errorf("%w: capacity %d is not a multiple of N*K=%d", ErrInvalidArgument, ct.data.Capacity(), stride)
	}

	return nil
}
