package report

import (
	"cmp"
	"slices"

	"github.com/eugenenazirov/license-counter/internal/installation"
)

// Conflict describes a computer that a report lists with more than one
// computer type. Conflicts point at bad source data or a parsing problem.
type Conflict struct {
	ComputerID int                         `json:"computerId"`
	Types      []installation.ComputerType `json:"types"`
}

// FindConflicts indexes records by computer id and returns the computers seen
// with differing computer types, ordered by computer id.
func FindConflicts(records []installation.Installation) []Conflict {
	byComputer := installation.NewIndexMap[installation.Installation]()
	for _, inst := range records {
		byComputer.Add(inst.ComputerID, inst)
	}

	var conflicts []Conflict
	for _, group := range byComputer.Groups() {
		types := make([]installation.ComputerType, 0, 2)
		for _, inst := range group {
			if !slices.Contains(types, inst.ComputerType) {
				types = append(types, inst.ComputerType)
			}
		}
		if len(types) < 2 {
			continue
		}
		slices.Sort(types)
		conflicts = append(conflicts, Conflict{ComputerID: group[0].ComputerID, Types: types})
	}

	slices.SortFunc(conflicts, func(a, b Conflict) int {
		return cmp.Compare(a.ComputerID, b.ComputerID)
	})
	return conflicts
}
