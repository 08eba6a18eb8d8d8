// Package version parses and compares dotted version strings such as the
// output of `node --version`.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize strips a leading "v" and surrounding whitespace from a version
// string and validates that it has one to three numeric dotted components.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if trimmed == "" {
		return "", fmt.Errorf("empty version")
	}
	parts := strings.SplitN(trimmed, "-", 2)[0]
	fields := strings.Split(parts, ".")
	if len(fields) > 3 {
		return "", fmt.Errorf("invalid version %q", raw)
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return "", fmt.Errorf("invalid version %q", raw)
		}
	}
	return parts, nil
}

// Major returns the leading numeric component of a version string.
func Major(raw string) (int, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return 0, err
	}
	major, err := strconv.Atoi(strings.SplitN(normalized, ".", 2)[0])
	if err != nil {
		return 0, fmt.Errorf("invalid version %q", raw)
	}
	return major, nil
}

// Compare returns -1, 0, or 1 when a is less than, equal to, or greater
// than b. Missing components compare as zero, so "20" equals "20.0.0".
func Compare(a string, b string) (int, error) {
	av, err := components(a)
	if err != nil {
		return 0, err
	}
	bv, err := components(b)
	if err != nil {
		return 0, err
	}
	for i := 0; i < 3; i++ {
		switch {
		case av[i] < bv[i]:
			return -1, nil
		case av[i] > bv[i]:
			return 1, nil
		}
	}
	return 0, nil
}

func components(raw string) ([3]int, error) {
	var out [3]int
	normalized, err := Normalize(raw)
	if err != nil {
		return out, err
	}
	for i, f := range strings.Split(normalized, ".") {
		n, err := strconv.Atoi(f)
		if err != nil {
			return out, fmt.Errorf("invalid version %q", raw)
		}
		out[i] = n
	}
	return out, nil
}
