package dataset

// Dataset is an ordered, owned collection of samples with enumerated classes.
type Dataset struct {
	samples     []Sample
	classes     *ClassMap
	featureSize int
}

// New takes ownership of samples, validates that all feature vectors share
// one length and assigns class indexes in first-seen label order.
func New(samples []Sample) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, ErrEmpty
	}

	featureSize := len(samples[0].Features)
	for i := 1; i < len(samples); i++ {
		if n := len(samples[i].Features); n != featureSize {
			return nil, &ErrFeatureSizeMismatch{Index: i, Expected: featureSize, Actual: n}
		}
	}

	classes := Enumerate(samples)
	if err := classes.Apply(samples); err != nil {
		return nil, err
	}

	return &Dataset{
		samples:     samples,
		classes:     classes,
		featureSize: featureSize,
	}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.samples)
}

// At returns a borrowed reference to sample i.
func (d *Dataset) At(i int) *Sample {
	return &d.samples[i]
}

// Name implements Named.
func (d *Dataset) Name() string {
	return "all"
}

// FeatureSize returns the shared feature vector length.
func (d *Dataset) FeatureSize() int {
	return d.featureSize
}

// NumClasses returns the number of distinct raw labels.
func (d *Dataset) NumClasses() int {
	return d.classes.Len()
}

// Classes returns the label enumeration.
func (d *Dataset) Classes() *ClassMap {
	return d.classes
}
