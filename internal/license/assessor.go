package license

import (
	"iter"

	"github.com/eugenenazirov/license-counter/internal/installation"
)

// Assessor applies the desktop/laptop licensing rule: a license covers two
// machines of the same user as long as at least one of them is a laptop.
// Two laptops may therefore share a single license.
type Assessor struct{}

// New creates an Assessor.
func New() *Assessor {
	return &Assessor{}
}

// Assess returns the licenses required by the installations of one user.
// The sequence is consumed exactly once.
func (a *Assessor) Assess(records iter.Seq[installation.Installation]) int {
	return Summarize(records).Licenses()
}

// Summarize counts desktops and laptops in a single pass over records.
// It panics when records is nil: an absent collection is a caller bug and
// must not be mistaken for a user without installations.
func Summarize(records iter.Seq[installation.Installation]) Tally {
	if records == nil {
		panic("license: nil installation sequence")
	}

	var t Tally
	for inst := range records {
		switch inst.ComputerType {
		case installation.Desktop:
			t.Desktops++
		case installation.Laptop:
			t.Laptops++
		}
	}
	return t
}

// Count returns the licenses needed for the given machine counts. Every
// desktop takes a license and can absorb one laptop; the remaining laptops
// share licenses in pairs.
func Count(desktops, laptops int) int {
	if desktops < 0 {
		desktops = 0
	}
	if laptops < 0 {
		laptops = 0
	}

	licenses := desktops
	if excess := laptops - desktops; excess > 0 {
		licenses += (excess + 1) / 2
	}
	return licenses
}
