// Package gitutil extracts the staged diff that feeds commit message
// generation.
package gitutil

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoStagedChanges is returned when the staging area is empty.
var ErrNoStagedChanges = errors.New("no staged changes")

// StagedDiff returns the output of `git diff --cached` for the current
// working directory.
func StagedDiff() (string, error) {
	cmd := exec.Command("git", "diff", "--cached")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git diff failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	diff := string(output)
	if strings.TrimSpace(diff) == "" {
		return "", ErrNoStagedChanges
	}
	return diff, nil
}
