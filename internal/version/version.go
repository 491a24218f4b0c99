// Package version bumps the patch component of a version string inside a
// project file.
package version

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// IncrementPatch increments the patch component of a major.minor.patch
// version string.
func IncrementPatch(version string) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("version %q is not major.minor.patch", version)
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("version %q has non-numeric patch: %w", version, err)
	}
	return fmt.Sprintf("%s.%s.%d", parts[0], parts[1], patch+1), nil
}

// Bump finds the version in filePath using versionRegex (whose first capture
// group must be the version string), increments its patch component, and
// rewrites the file. Returns the old and new versions.
func Bump(filePath, versionRegex string) (string, string, error) {
	re, err := regexp.Compile(versionRegex)
	if err != nil {
		return "", "", fmt.Errorf("invalid version regex: %w", err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", "", err
	}

	match := re.FindSubmatch(content)
	if len(match) < 2 {
		return "", "", fmt.Errorf("version not found in %s", filePath)
	}

	current := string(match[1])
	next, err := IncrementPatch(current)
	if err != nil {
		return "", "", err
	}

	updated := strings.Replace(string(content), current, next, 1)
	if err := os.WriteFile(filePath, []byte(updated), 0o644); err != nil {
		return "", "", err
	}
	return current, next, nil
}
