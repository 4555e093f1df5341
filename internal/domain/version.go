package domain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultLatestVersion is the protocol version used when a caller does not pin one.
const DefaultLatestVersion = "1.3.0"

var (
	// Version1_0_0 is the oldest version with published deployments. Older
	// Safes resolve against it for minimum compatibility.
	Version1_0_0 = MustParseProtocolVersion("1.0.0")

	// Version1_3_0 is the first version with a dedicated L2 singleton.
	Version1_3_0 = MustParseProtocolVersion("1.3.0")
)

// KnownVersions lists the protocol versions published by safe-deployments,
// newest first.
var KnownVersions = []string{"1.5.0", "1.4.1", "1.3.0", "1.2.0", "1.1.1", "1.0.0"}

// ProtocolVersion is the semantic version of the Safe contract suite.
// Build metadata (e.g. "+L2") is kept for display only; comparisons use the
// major.minor.patch triple.
type ProtocolVersion struct {
	v        *semver.Version
	metadata string
}

// ParseProtocolVersion parses a Safe version string such as "1.3.0" or "1.3.0+L2".
func ParseProtocolVersion(s string) (ProtocolVersion, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return ProtocolVersion{}, &VersionError{Input: s, Reason: "empty version"}
	}

	parsed, err := semver.StrictNewVersion(raw)
	if err != nil {
		return ProtocolVersion{}, &VersionError{Input: s, Reason: err.Error()}
	}
	if parsed.Prerelease() != "" {
		return ProtocolVersion{}, &VersionError{Input: s, Reason: "pre-release versions are not protocol versions"}
	}

	core := semver.New(parsed.Major(), parsed.Minor(), parsed.Patch(), "", "")
	return ProtocolVersion{v: core, metadata: parsed.Metadata()}, nil
}

// MustParseProtocolVersion is like ParseProtocolVersion but panics on error.
func MustParseProtocolVersion(s string) ProtocolVersion {
	v, err := ParseProtocolVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the major.minor.patch triple without build metadata.
func (p ProtocolVersion) String() string {
	if p.v == nil {
		return ""
	}
	return p.v.String()
}

// Metadata returns the stripped build metadata, e.g. "L2".
func (p ProtocolVersion) Metadata() string {
	return p.metadata
}

// IsZero reports whether p was never parsed.
func (p ProtocolVersion) IsZero() bool {
	return p.v == nil
}

// Compare returns -1, 0 or 1. A zero version sorts before every parsed one.
func (p ProtocolVersion) Compare(o ProtocolVersion) int {
	switch {
	case p.v == nil && o.v == nil:
		return 0
	case p.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return p.v.Compare(o.v)
}

func (p ProtocolVersion) Equal(o ProtocolVersion) bool    { return p.Compare(o) == 0 }
func (p ProtocolVersion) LessThan(o ProtocolVersion) bool { return p.Compare(o) < 0 }
func (p ProtocolVersion) AtLeast(o ProtocolVersion) bool  { return p.Compare(o) >= 0 }

// MarshalText implements encoding.TextMarshaler.
func (p ProtocolVersion) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ProtocolVersion) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = ProtocolVersion{}
		return nil
	}
	v, err := ParseProtocolVersion(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// VersionError reports a malformed protocol version. It matches ErrInvalidVersion.
type VersionError struct {
	Input  string
	Reason string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%q is not a valid Safe version: %s", e.Input, e.Reason)
}

func (e *VersionError) Is(target error) bool {
	return target == ErrInvalidVersion
}
