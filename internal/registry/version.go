package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Latest is the version spec selecting the highest published version.
const Latest = "latest"

// ParseSpec splits "name@version" into its parts. Scoped names keep their
// leading "@". A missing version yields Latest.
func ParseSpec(spec string) (name, version string) {
	spec = strings.TrimSpace(spec)
	scoped := strings.HasPrefix(spec, "@")
	rest := strings.TrimPrefix(spec, "@")

	name, version, found := strings.Cut(rest, "@")
	if scoped {
		name = "@" + name
	}
	if !found || version == "" {
		version = Latest
	}
	return name, version
}

// Resolve picks the version of p matching spec: Latest (or empty) selects
// the highest semver, an exact string selects that version, and anything
// else is treated as a semver constraint.
func (p *Plugin) Resolve(spec string) (*Version, error) {
	if p == nil || len(p.Versions) == 0 {
		return nil, ErrNotFound
	}
	if spec == "" {
		spec = Latest
	}

	if v, ok := p.Versions[spec]; ok {
		if v.Version == "" {
			v.Version = spec
		}
		return &v, nil
	}

	sorted := p.sorted()
	if spec == Latest {
		if len(sorted) == 0 {
			return nil, fmt.Errorf("%s has no semver versions: %w", p.Name, ErrNotFound)
		}
		return p.version(sorted[len(sorted)-1]), nil
	}

	c, err := semver.NewConstraint(spec)
	if err != nil {
		return nil, fmt.Errorf("%s@%s: %w", p.Name, spec, ErrNotFound)
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if c.Check(sorted[i]) {
			return p.version(sorted[i]), nil
		}
	}
	return nil, fmt.Errorf("no version of %s matches %s: %w", p.Name, spec, ErrNotFound)
}

// VersionList returns the published semver versions in ascending order.
func (p *Plugin) VersionList() []string {
	var out []string
	for _, v := range p.sorted() {
		out = append(out, v.Original())
	}
	return out
}

func (p *Plugin) sorted() []*semver.Version {
	var vs []*semver.Version
	for key := range p.Versions {
		v, err := semver.NewVersion(key)
		if err != nil {
			continue
		}
		vs = append(vs, v)
	}
	sort.Sort(semver.Collection(vs))
	return vs
}

func (p *Plugin) version(v *semver.Version) *Version {
	out := p.Versions[v.Original()]
	if out.Version == "" {
		out.Version = v.Original()
	}
	return &out
}

// Bump increments current by part ("major", "minor" or "patch"). An empty
// current starts at 0.0.0.
func Bump(current, part string) (string, error) {
	if current == "" {
		current = "0.0.0"
	}
	v, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return "", fmt.Errorf("parsing version %q: %w", current, err)
	}
	var next semver.Version
	switch part {
	case "major":
		next = v.IncMajor()
	case "minor":
		next = v.IncMinor()
	case "patch", "":
		next = v.IncPatch()
	default:
		return "", fmt.Errorf("unknown version part %q", part)
	}
	return next.String(), nil
}

// Satisfies reports whether version meets constraint. An empty constraint
// is always satisfied.
func Satisfies(version, constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return c.Check(v), nil
}
