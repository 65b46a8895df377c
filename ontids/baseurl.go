// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ontids defines the identifier and temporal-axis types shared across the
// ontology, entity, filter, and graph store packages.
package ontids

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

var (
	// ErrEmptyURL is returned when a BaseUrl is constructed from an empty string.
	ErrEmptyURL = errors.New("ontids: base url must not be empty")
	// ErrInvalidURL is returned when a BaseUrl cannot be parsed as a URL.
	ErrInvalidURL = errors.New("ontids: could not parse url")
	// ErrNegativeVersion is returned when a VersionedUrl version would underflow.
	ErrNegativeVersion = errors.New("ontids: version must be nonnegative")
)

// LatestVersion is the virtual marker recognized only by the filter layer.
const LatestVersion = "latest"

// BaseUrl is a canonical URL naming an ontological concept: lowercased host,
// percent-normalized path, always terminated with a trailing slash the way the
// block protocol type system expects.
type BaseUrl struct {
	canonical string
}

// ParseBaseUrl normalizes and validates raw into a BaseUrl.
func ParseBaseUrl(raw string) (BaseUrl, error) {
	if raw == "" {
		return BaseUrl{}, ErrEmptyURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return BaseUrl{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	u.Host = strings.ToLower(u.Host)
	u.Path = path.Clean(u.EscapedPath())
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return BaseUrl{canonical: u.String()}, nil
}

// String returns the canonical form.
func (b BaseUrl) String() string { return b.canonical }

// IsZero reports whether b is the zero value.
func (b BaseUrl) IsZero() bool { return b.canonical == "" }

// Equal reports whether two base URLs are the same concept.
func (b BaseUrl) Equal(other BaseUrl) bool { return b.canonical == other.canonical }
