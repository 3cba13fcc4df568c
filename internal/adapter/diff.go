package adapter

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders a unified diff between two documents. It returns "" when they are equal.
func Diff(expectedName, actualName string, expected, actual []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(actual)),
		FromFile: expectedName,
		ToFile:   actualName,
		Context:  3,
	})
}
