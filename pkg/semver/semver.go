package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a release version MAJOR.MINOR.PATCH. Pre-release and build
// suffixes are not part of the release scheme and are rejected.
type Version struct {
	major int
	minor int
	patch int
}

// NewVersion parses a release version such as "2.0.3" or "v2.0.3".
func NewVersion(version string) (*Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(version), "v")

	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid version format: expected MAJOR.MINOR.PATCH, got %q", version)
	}

	nums, err := parseComponents(parts)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", version, err)
	}

	return &Version{major: nums[0], minor: nums[1], patch: nums[2]}, nil
}

// ParseLoose parses tool versions that may omit trailing components or carry
// a suffix, e.g. "24.0", "23.3.1" or "25.1.dev0". Missing components are zero
// and anything after the first non-numeric component is ignored.
func ParseLoose(version string) (*Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if trimmed == "" {
		return nil, fmt.Errorf("empty version")
	}

	var nums [3]int
	parts := strings.SplitN(trimmed, ".", 4)
	for i := 0; i < len(parts) && i < 3; i++ {
		digits := leadingDigits(parts[i])
		if digits == "" {
			if i == 0 {
				return nil, fmt.Errorf("invalid version %q", version)
			}
			break
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", version, err)
		}
		nums[i] = n
		if len(digits) != len(parts[i]) {
			break
		}
	}

	return &Version{major: nums[0], minor: nums[1], patch: nums[2]}, nil
}

func parseComponents(parts []string) ([]int, error) {
	names := []string{"major", "minor", "patch"}
	out := make([]int, len(parts))
	for i, p := range parts {
		if p == "" || leadingDigits(p) != p {
			return nil, fmt.Errorf("invalid %s version %q", names[i], p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s version: %w", names[i], err)
		}
		out[i] = n
	}
	return out, nil
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

func (v *Version) Major() int { return v.major }
func (v *Version) Minor() int { return v.minor }
func (v *Version) Patch() int { return v.patch }

// Compare returns -1, 0 or 1.
func (v *Version) Compare(other *Version) int {
	switch {
	case v.major != other.major:
		return sign(v.major - other.major)
	case v.minor != other.minor:
		return sign(v.minor - other.minor)
	default:
		return sign(v.patch - other.patch)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// GreaterThan returns true if v is greater than other
func (v *Version) GreaterThan(other *Version) bool {
	return v.Compare(other) > 0
}

func (v *Version) Equal(other *Version) bool {
	return v.Compare(other) == 0
}

func (v *Version) LessThan(other *Version) bool {
	return v.Compare(other) < 0
}

// AtLeast reports whether v >= other.
func (v *Version) AtLeast(other *Version) bool {
	return v.Compare(other) >= 0
}

// String returns "MAJOR.MINOR.PATCH" without a prefix.
func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// Tag returns the git tag name for v, e.g. "v2.0.3".
func (v *Version) Tag() string {
	return "v" + v.String()
}
