package installation

// Filter decides whether an installation takes part in a license count.
type Filter interface {
	Matches(inst Installation) bool
}

// FilterFunc adapts an ordinary function to the Filter interface.
type FilterFunc func(Installation) bool

// Matches calls f(inst).
func (f FilterFunc) Matches(inst Installation) bool {
	return f(inst)
}

// ApplicationFilter keeps installations of a single application.
type ApplicationFilter struct {
	applicationID int
}

// NewApplicationFilter creates a filter for applicationID.
func NewApplicationFilter(applicationID int) ApplicationFilter {
	return ApplicationFilter{applicationID: applicationID}
}

// ApplicationID returns the application the filter keeps.
func (f ApplicationFilter) ApplicationID() int {
	return f.applicationID
}

// Matches reports whether inst belongs to the filtered application.
func (f ApplicationFilter) Matches(inst Installation) bool {
	return inst.ApplicationID == f.applicationID
}
