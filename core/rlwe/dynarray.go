package rlwe

import (
	"fmt"

	"github.com/hestore/hestore/utils"
)

// MaxDynArrayLen is the largest number of uint64 a [DynArray] accepts to hold.
// Larger requests fail with ErrInvalidArgument before any allocation.
const MaxDynArrayLen = utils.MaxInt >> 3

// DynArray is a resizable array of uint64 with a logical size and a capacity.
//
// Growing the capacity reallocates: the first Size() elements are copied
// and the rest of the new allocation is zero. The capacity never shrinks,
// except through Release.
//
// Growing the size within the current capacity does not clear the elements
// that become visible: they hold whatever was last written there. Growing
// the size beyond the capacity reallocates to exactly the new size.
//
// The zero value is an empty array.
type DynArray struct {
	data []uint64
}

// NewDynArray allocates a new [DynArray] with the given capacity and size.
func NewDynArray(capacity, size int) (*DynArray, error) {
	if err := checkDynArrayLen(capacity); err != nil {
		return nil, fmt.Errorf("cannot NewDynArray: %w", err)
	}

	if err := checkDynArrayLen(size); err != nil {
		return nil, fmt.Errorf("cannot NewDynArray: %w", err)
	}

	if size > capacity {
		return nil, fmt.Errorf("cannot NewDynArray: %w: size=%d > capacity=%d", ErrInvalidArgument, size, capacity)
	}

	return &DynArray{data: make([]uint64, size, capacity)}, nil
}

func checkDynArrayLen(n int) error {
	if n < 0 || n > MaxDynArrayLen {
		return fmt.Errorf("%w: length %d not in [0, %d]", ErrInvalidArgument, n, MaxDynArrayLen)
	}
	return nil
}

// Size returns the logical number of elements.
func (d *DynArray) Size() int {
	return len(d.data)
}

// Capacity returns the number of allocated elements.
func (d *DynArray) Capacity() int {
	return cap(d.data)
}

// Data returns the whole allocation, Capacity() elements.
// The returned slice shares memory with the array.
func (d *DynArray) Data() []uint64 {
	return d.data[:cap(d.data)]
}

// Reserve grows the capacity to at least capacity elements.
// It does nothing if the current capacity is already large enough.
func (d *DynArray) Reserve(capacity int) error {

	if err := checkDynArrayLen(capacity); err != nil {
		return fmt.Errorf("cannot Reserve: %w", err)
	}

	if capacity <= cap(d.data) {
		return nil
	}

	data := make([]uint64, len(d.data), capacity)
	copy(data, d.data)
	d.data = data

	return nil
}

// Resize sets the logical size to size, reallocating if size exceeds the capacity.
func (d *DynArray) Resize(size int) error {

	if err := checkDynArrayLen(size); err != nil {
		return fmt.Errorf("cannot Resize: %w", err)
	}

	if size <= cap(d.data) {
		d.data = d.data[:size]
		return nil
	}

	data := make([]uint64, size)
	copy(data, d.data)
	d.data = data

	return nil
}

// AlignCapacity lowers the visible capacity to the largest multiple of
// stride that does not exceed it, without reallocating.
// The size must not exceed that multiple.
func (d *DynArray) AlignCapacity(stride int) {
	if stride <= 0 {
		return
	}
	c := cap(d.data) - cap(d.data)%stride
	d.data = d.data[:len(d.data):c]
}

// Release drops the allocation. The array is empty afterwards.
func (d *DynArray) Release() {
	d.data = nil
}

// At returns the element at index i.
func (d *DynArray) At(i int) (uint64, error) {
	if i < 0 || i >= len(d.data) {
		return 0, fmt.Errorf("cannot At: %w: index %d not in [0, %d)", ErrOutOfRange, i, len(d.data))
	}
	return d.data[i], nil
}

// Set sets the element at index i to v.
func (d *DynArray) Set(i int, v uint64) error {
	if i < 0 || i >= len(d.data) {
		return fmt.Errorf("cannot Set: %w: index %d not in [0, %d)", ErrOutOfRange, i, len(d.data))
	}
	d.data[i] = v
	return nil
}

// CopyNew returns a deep copy of the array, with the same size and capacity.
func (d *DynArray) CopyNew() *DynArray {
	if d.data == nil {
		return &DynArray{}
	}
	data := make([]uint64, len(d.data), cap(d.data))
	copy(data[:cap(data)], d.data[:cap(d.data)])
	return &DynArray{data: data}
}
