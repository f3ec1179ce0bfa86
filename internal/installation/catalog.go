package installation

import (
	"iter"
	"sync"
)

// Assessor converts the installations of one user into a license count.
// The sequence may only be iterated once.
type Assessor interface {
	Assess(records iter.Seq[Installation]) int
}

// Catalog indexes installations by user and sums the licenses each user needs.
type Catalog struct {
	mu    sync.Mutex
	index *IndexMap[Installation]
}

// NewCatalog creates a Catalog backed by index. A nil index is replaced with
// an empty one. The catalog takes ownership of the index.
func NewCatalog(index *IndexMap[Installation]) *Catalog {
	if index == nil {
		index = NewIndexMap[Installation]()
	}
	return &Catalog{index: index}
}

// AddAll indexes every record under its user id.
func (c *Catalog) AddAll(records []Installation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, inst := range records {
		c.index.Add(inst.UserID, inst)
	}
}

// CountLicenses filters each user's installations and sums what the assessor
// reports for them. Users left with no matching installations are still
// assessed. The groups are snapshotted under the lock, so filter and assessor
// run unlocked and may call back into the catalog.
func (c *Catalog) CountLicenses(filter Filter, assessor Assessor) (int, error) {
	if filter == nil {
		return 0, ErrNilFilter
	}
	if assessor == nil {
		return 0, ErrNilAssessor
	}

	c.mu.Lock()
	groups := c.index.Groups()
	c.mu.Unlock()

	total := 0
	for _, group := range groups {
		total += assessor.Assess(matching(group, filter))
	}
	return total, nil
}

// Users returns the number of distinct users in the catalog.
func (c *Catalog) Users() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.Len()
}

func matching(group []Installation, filter Filter) iter.Seq[Installation] {
	return func(yield func(Installation) bool) {
		for _, inst := range group {
			if !filter.Matches(inst) {
				continue
			}
			if !yield(inst) {
				return
			}
		}
	}
}
