package installation

import (
	"errors"
	"testing"
)

func TestParseComputerType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    ComputerType
		wantErr error
	}{
		{name: "CleanDesktop", raw: "desktop", want: Desktop},
		{name: "CleanLaptop", raw: "laptop", want: Laptop},
		{name: "UpperCase", raw: "DESKTOP", want: Desktop},
		{name: "DirtyDesktop", raw: " DESKTop  ", want: Desktop},
		{name: "DirtyLaptop", raw: " LaptoP  ", want: Laptop},
		{name: "Unknown", raw: "surface 2", wantErr: ErrUnknownComputerType},
		{name: "Empty", raw: "", wantErr: ErrUnknownComputerType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseComputerType(tc.raw)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestComputerTypeString(t *testing.T) {
	t.Parallel()

	if Desktop.String() != "Desktop" || Laptop.String() != "Laptop" {
		t.Fatalf("unexpected names: %s, %s", Desktop, Laptop)
	}
	if got := ComputerType(7).String(); got != "ComputerType(7)" {
		t.Fatalf("unexpected name for unknown type: %s", got)
	}
	if ComputerType(7).Valid() {
		t.Fatalf("expected unknown type to be invalid")
	}
}

func TestInstallationEquality(t *testing.T) {
	t.Parallel()

	a := Installation{ComputerID: 1, UserID: 2, ApplicationID: 3, ComputerType: Laptop}
	b := a
	if a != b {
		t.Fatalf("expected copies to be equal")
	}
	b.ComputerType = Desktop
	if a == b {
		t.Fatalf("expected installations differing in computer type to differ")
	}
}

func TestComputerTypeText(t *testing.T) {
	t.Parallel()

	text, err := Laptop.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(text) != "Laptop" {
		t.Fatalf("expected Laptop, got %s", text)
	}

	var c ComputerType
	if err := c.UnmarshalText([]byte(" laptop ")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != Laptop {
		t.Fatalf("expected Laptop, got %s", c)
	}

	if _, err := ComputerType(5).MarshalText(); !errors.Is(err, ErrUnknownComputerType) {
		t.Fatalf("expected ErrUnknownComputerType, got %v", err)
	}
}
