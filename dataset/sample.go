package dataset

// Sample is one labeled image.
type Sample struct {
	// Features holds the flattened pixel intensities.
	Features []uint8
	// RawLabel is the label as stored in the source file.
	RawLabel uint8
	// ClassIndex is the dense enumeration of RawLabel, in [0, NumClasses).
	ClassIndex int
}

// View is read-only indexed access to samples owned elsewhere.
//
// Both *Dataset and *Partition implement View. Returned samples are borrowed
// and must not be mutated.
type View interface {
	Len() int
	At(i int) *Sample
}

// Named is implemented by views that carry a partition name.
type Named interface {
	Name() string
}
