package dataset

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/mnistknn/internal/conv"
)

// Partition is a named, read-only subset of a Dataset.
type Partition struct {
	name    string
	parent  *Dataset
	indexes []int
	members *roaring.Bitmap
}

// Subset creates a partition from dataset positions, preserving their order.
func (d *Dataset) Subset(name string, indexes ...int) (*Partition, error) {
	members := roaring.New()
	for _, i := range indexes {
		if i < 0 || i >= len(d.samples) {
			return nil, fmt.Errorf("dataset: index %d out of range [0, %d)", i, len(d.samples))
		}
		u, err := conv.IntToUint32(i)
		if err != nil {
			return nil, err
		}
		if !members.CheckedAdd(u) {
			return nil, fmt.Errorf("%w: index %d repeated in %s", ErrOverlap, i, name)
		}
	}
	return &Partition{
		name:    name,
		parent:  d,
		indexes: append([]int(nil), indexes...),
		members: members,
	}, nil
}

// Name returns the partition name.
func (p *Partition) Name() string {
	return p.name
}

// Len returns the number of samples in the partition.
func (p *Partition) Len() int {
	return len(p.indexes)
}

// At returns a borrowed reference to the i-th sample of the partition.
func (p *Partition) At(i int) *Sample {
	return p.parent.At(p.indexes[i])
}

// Index returns the dataset position of the i-th sample.
func (p *Partition) Index(i int) int {
	return p.indexes[i]
}

// Dataset returns the dataset the partition draws from.
func (p *Partition) Dataset() *Dataset {
	return p.parent
}

// Contains reports whether dataset position i belongs to the partition.
func (p *Partition) Contains(i int) bool {
	u, err := conv.IntToUint32(i)
	if err != nil {
		return false
	}
	return p.members.Contains(u)
}

// Members returns a copy of the dataset positions in the partition.
func (p *Partition) Members() *roaring.Bitmap {
	return p.members.Clone()
}

// Disjoint verifies that partitions of one dataset share no sample.
func Disjoint(parts ...*Partition) error {
	for i := 0; i < len(parts); i++ {
		for j := i + 1; j < len(parts); j++ {
			a, b := parts[i], parts[j]
			if a.parent != b.parent {
				return fmt.Errorf("dataset: %s and %s belong to different datasets", a.name, b.name)
			}
			if a.members.Intersects(b.members) {
				shared := roaring.And(a.members, b.members)
				return fmt.Errorf("%w: %s and %s share %d samples", ErrOverlap, a.name, b.name, shared.GetCardinality())
			}
		}
	}
	return nil
}
