package pointcloud

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mask is a boolean mask over the stable point indices of a Store, backed by
// a roaring bitmap. Masks returned by queries are independent of the store
// and stay valid across flag changes.
type Mask struct {
	rb *roaring.Bitmap
}

// NewMask creates an empty mask.
func NewMask() *Mask {
	return &Mask{rb: roaring.New()}
}

// Add sets the bit for the given point index.
func (m *Mask) Add(i uint32) {
	m.rb.Add(i)
}

// Contains reports whether the point index is set.
func (m *Mask) Contains(i uint32) bool {
	return m.rb.Contains(i)
}

// Cardinality returns the number of set bits.
func (m *Mask) Cardinality() uint64 {
	return m.rb.GetCardinality()
}

// IsEmpty reports whether no bit is set.
func (m *Mask) IsEmpty() bool {
	return m.rb.IsEmpty()
}

// Or merges the other mask into m.
func (m *Mask) Or(other *Mask) {
	m.rb.Or(other.rb)
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	return &Mask{rb: m.rb.Clone()}
}

// Indices returns the set indices in ascending order.
func (m *Mask) Indices() []uint32 {
	return m.rb.ToArray()
}

// All returns an iterator over the set indices in ascending order.
func (m *Mask) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
