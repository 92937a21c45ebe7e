// Package types defines the entity types, lookup interfaces, and standard
// errors shared by the gardenplan placement engine and its storage backend.
//
// Calendar dates are carried as time.Time values at UTC midnight; use Date
// and ParseDate to construct them. Optional dates and grid positions are
// pointers, where nil means "not known".
package types
