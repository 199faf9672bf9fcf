// Package dataset holds labeled pixel samples and their partitions.
//
// A Dataset owns its samples by value. Construction validates that every
// feature vector has the same length and enumerates raw labels into dense
// class indexes in first-seen order over the whole dataset, so the mapping
// covers every sample of every later partition.
//
// Split reproduces the fixed 80/10/10 proportions with integer truncation:
// up to two samples that fall between the truncated sizes belong to no
// partition.
package dataset
