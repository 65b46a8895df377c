// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package ontids

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidVersionedURL is returned when a string does not have the "<base>v/<version>"
// shape a VersionedUrl renders to.
var ErrInvalidVersionedURL = errors.New("ontids: could not parse versioned url")

// OntologyTypeVersion is a wrapping nonnegative integer. Conversion from a signed parameter
// fails if negative.
type OntologyTypeVersion uint32

// OntologyTypeVersionFromInt64 narrows a signed value, failing on negative input or overflow.
func OntologyTypeVersionFromInt64(v int64) (OntologyTypeVersion, error) {
	if v < 0 {
		return 0, fmt.Errorf("ontids: %w: %d", ErrNegativeVersion, v)
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("ontids: version %d overflows uint32", v)
	}
	return OntologyTypeVersion(v), nil
}

// VersionedUrl is a BaseUrl paired with a monotone version.
type VersionedUrl struct {
	Base    BaseUrl
	Version OntologyTypeVersion
}

// String renders "base/v/<version>" the way the block protocol type system does.
func (v VersionedUrl) String() string {
	return fmt.Sprintf("%sv/%d", v.Base.String(), v.Version)
}

// Equal reports whether two versioned URLs name the same edition.
func (v VersionedUrl) Equal(other VersionedUrl) bool {
	return v.Base.Equal(other.Base) && v.Version == other.Version
}

// ParseVersionedUrl parses "<base>v/<version>" into a VersionedUrl, validating the base
// with ParseBaseUrl and the version as a nonnegative integer. It is the inverse of String.
func ParseVersionedUrl(raw string) (VersionedUrl, error) {
	idx := strings.LastIndex(raw, "v/")
	if idx <= 0 || raw[idx-1] != '/' {
		return VersionedUrl{}, fmt.Errorf("%w: %q", ErrInvalidVersionedURL, raw)
	}

	base, err := ParseBaseUrl(raw[:idx])
	if err != nil {
		return VersionedUrl{}, fmt.Errorf("%w: %w", ErrInvalidVersionedURL, err)
	}

	versionPart := raw[idx+len("v/"):]
	version, err := strconv.ParseUint(versionPart, 10, 32)
	if err != nil {
		return VersionedUrl{}, fmt.Errorf("%w: version %q: %w", ErrInvalidVersionedURL, versionPart, err)
	}

	return VersionedUrl{Base: base, Version: OntologyTypeVersion(version)}, nil
}
