package license

// Tally holds the number of desktop and laptop installations of one user.
// Installations of unknown computer types are not counted.
type Tally struct {
	Desktops int
	Laptops  int
}

// Licenses returns the number of licenses the tally requires.
func (t Tally) Licenses() int {
	return Count(t.Desktops, t.Laptops)
}
