// Package report reads installation reports and turns them into license
// counts. A report is a CSV file with a header line followed by rows of
// ComputerID, UserID, ApplicationID, ComputerType and an optional comment.
// Rows that fail to parse are dropped and counted, never corrected.
package report
