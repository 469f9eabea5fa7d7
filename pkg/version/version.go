// Package version handles driver build identifiers: dot-separated sequences
// of non-negative integers such as 120.0.6099.109.
package version

import (
	"sort"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/glorpus-work/getdriver/pkg/errutils"
)

const separator = "."

// Validate checks that every dot-separated segment of v is non-empty and
// made of ASCII digits only.
func Validate(v string) error {
	if v == "" {
		return errutils.ErrUnknownVersionWithDetails(v, "empty version")
	}
	for i, seg := range strings.Split(v, separator) {
		if seg == "" {
			return errutils.ErrUnknownVersionWithDetails(v, "segment "+strconv.Itoa(i+1)+" is empty")
		}
		for _, r := range seg {
			if r < '0' || r > '9' {
				return errutils.ErrUnknownVersionWithDetails(v, "segment "+strconv.Itoa(i+1)+" is not numeric")
			}
		}
	}
	return nil
}

// IsValid reports whether Validate accepts v.
func IsValid(v string) bool {
	return Validate(v) == nil
}

// BuildPrefix returns every segment but the last, joined with dots.
func BuildPrefix(v string) string {
	segs := strings.Split(v, separator)
	return strings.Join(segs[:len(segs)-1], separator)
}

// BuildCompatible reports whether a and b agree on all segments but the last.
func BuildCompatible(a, b string) bool {
	return BuildPrefix(a) == BuildPrefix(b)
}

// Major returns the numeric value of the first segment, or -1 when it is
// not a number.
func Major(v string) int {
	first, _, _ := strings.Cut(v, separator)
	n, err := strconv.Atoi(first)
	if err != nil {
		return -1
	}
	return n
}

// Dedupe drops repeated entries, keeping the first occurrence of each.
func Dedupe(versions []string) []string {
	seen := make(map[string]struct{}, len(versions))
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SortByMajor sorts versions ascending by their first segment only. Versions
// sharing a major keep their relative order, so 116.0.5845.96 may come
// before 116.0.5845.50 if that is how the catalogs listed them.
func SortByMajor(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return Major(versions[i]) < Major(versions[j])
	})
}

// HighestCompatible returns the highest candidate that is build-compatible
// with installed. The boolean is false when no candidate matches.
func HighestCompatible(installed string, candidates []string) (string, bool) {
	var (
		best    string
		bestVer *goversion.Version
		found   bool
	)
	for _, c := range candidates {
		if !BuildCompatible(installed, c) {
			continue
		}
		parsed, err := goversion.NewVersion(c)
		if err != nil {
			continue
		}
		if bestVer == nil || parsed.GreaterThan(bestVer) {
			best, bestVer, found = c, parsed, true
		}
	}
	return best, found
}
