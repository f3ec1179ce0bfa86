package installation

import "testing"

func TestApplicationFilterMatches(t *testing.T) {
	t.Parallel()

	filter := NewApplicationFilter(374)
	if filter.ApplicationID() != 374 {
		t.Fatalf("expected application id 374, got %d", filter.ApplicationID())
	}

	tests := []struct {
		name string
		inst Installation
		want bool
	}{
		{name: "SameApplication", inst: Installation{ApplicationID: 374}, want: true},
		{name: "SameApplicationOtherFields", inst: Installation{ComputerID: 8, UserID: 3, ApplicationID: 374, ComputerType: Laptop}, want: true},
		{name: "OtherApplication", inst: Installation{ApplicationID: 375}, want: false},
		{name: "ZeroApplication", inst: Installation{}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := filter.Matches(tc.inst); got != tc.want {
				t.Fatalf("expected %t, got %t", tc.want, got)
			}
		})
	}
}

func TestFilterFunc(t *testing.T) {
	t.Parallel()

	laptops := FilterFunc(func(inst Installation) bool { return inst.ComputerType == Laptop })
	if !laptops.Matches(Installation{ComputerType: Laptop}) {
		t.Fatalf("expected laptop to match")
	}
	if laptops.Matches(Installation{ComputerType: Desktop}) {
		t.Fatalf("expected desktop not to match")
	}
}
