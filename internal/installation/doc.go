// Package installation models the application installations found in an
// inventory report and groups them per user so that license requirements can
// be assessed one user at a time.
package installation
