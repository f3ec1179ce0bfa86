package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const header = "ComputerID,UserID,ApplicationID,ComputerType,Comment\n"

func writeReport(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(path, []byte(header+rows), 0o600); err != nil {
		t.Fatalf("write report: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("APPLICATION_ID", "")
	t.Setenv("LOG_LEVEL", "")

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunCountPrintsLicenses(t *testing.T) {
	path := writeReport(t, "1,1,374,Laptop,\n2,1,374,Laptop,\n3,1,374,Laptop,\n4,2,374,Desktop,\n")

	code, stdout, stderr := runCLI(t, "--log-level=error", "count", path)
	if code != exitOK {
		t.Fatalf("expected exit code %d, got %d (stderr: %s)", exitOK, code, stderr)
	}
	if strings.TrimSpace(stdout) != "3" {
		t.Fatalf("expected 3 licenses, got %q", stdout)
	}
}

func TestRunCountApplicationOverride(t *testing.T) {
	path := writeReport(t, "1,1,374,Desktop,\n2,1,606,Desktop,\n3,1,606,Desktop,\n")

	code, stdout, _ := runCLI(t, "--log-level=error", "count", "--application-id=606", path)
	if code != exitOK {
		t.Fatalf("expected exit code %d, got %d", exitOK, code)
	}
	if strings.TrimSpace(stdout) != "2" {
		t.Fatalf("expected 2 licenses, got %q", stdout)
	}
}

func TestRunCountVerbose(t *testing.T) {
	path := writeReport(t, "1,1,374,Desktop,\nbad,1,374,Desktop,\n")

	code, stdout, _ := runCLI(t, "--log-level=error", "count", "-v", path)
	if code != exitOK {
		t.Fatalf("expected exit code %d, got %d", exitOK, code)
	}
	for _, want := range []string{"records: 1", "skipped: 1", "users: 1", "licenses: 1"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in summary, got %q", want, stdout)
		}
	}
}

func TestRunCountMissingReport(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--log-level=error", "count", filepath.Join(t.TempDir(), "absent.csv"))
	if code != exitFailure {
		t.Fatalf("expected exit code %d, got %d", exitFailure, code)
	}
	if stdout != "" {
		t.Fatalf("expected no count on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "failed to count licenses") {
		t.Fatalf("expected failure message, got %q", stderr)
	}
}

func TestRunRejectsBadArguments(t *testing.T) {
	if code, _, _ := runCLI(t, "count"); code != exitFailure {
		t.Fatalf("expected failure without a report path, got %d", code)
	}
	if code, _, _ := runCLI(t, "frobnicate"); code != exitFailure {
		t.Fatalf("expected failure for unknown command, got %d", code)
	}
	if code, _, _ := runCLI(t, "--log-level=chatty", "count", "x.csv"); code != exitFailure {
		t.Fatalf("expected failure for invalid log level, got %d", code)
	}
}
