package dataset

// ClassEntry pairs a raw label with its class index.
type ClassEntry struct {
	Label uint8
	Index int
}

// ClassMap is a bijection between raw labels and dense class indexes.
type ClassMap struct {
	index  map[uint8]int
	labels []uint8
}

// Enumerate builds a ClassMap over samples, assigning class indexes in the
// order labels are first seen.
func Enumerate(samples []Sample) *ClassMap {
	m := &ClassMap{index: make(map[uint8]int)}
	for i := range samples {
		label := samples[i].RawLabel
		if _, ok := m.index[label]; !ok {
			m.index[label] = len(m.labels)
			m.labels = append(m.labels, label)
		}
	}
	return m
}

// Len returns the number of classes.
func (m *ClassMap) Len() int {
	return len(m.labels)
}

// Index returns the class index of a raw label.
func (m *ClassMap) Index(label uint8) (int, bool) {
	idx, ok := m.index[label]
	return idx, ok
}

// Label returns the raw label of a class index.
func (m *ClassMap) Label(index int) (uint8, bool) {
	if index < 0 || index >= len(m.labels) {
		return 0, false
	}
	return m.labels[index], true
}

// Entries returns all pairs ordered by class index.
func (m *ClassMap) Entries() []ClassEntry {
	entries := make([]ClassEntry, len(m.labels))
	for i, label := range m.labels {
		entries[i] = ClassEntry{Label: label, Index: i}
	}
	return entries
}

// Apply sets ClassIndex on every sample.
func (m *ClassMap) Apply(samples []Sample) error {
	for i := range samples {
		idx, ok := m.index[samples[i].RawLabel]
		if !ok {
			return &ErrUnknownLabel{Label: samples[i].RawLabel}
		}
		samples[i].ClassIndex = idx
	}
	return nil
}
