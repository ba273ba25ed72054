// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imageurl turns stored image references into publicly fetchable
// URLs. References come from different upload flows: some are full URLs,
// others bare bucket-relative paths. Normalization happens once, when rows
// leave the content repository.
package imageurl

import (
	"strings"
)

const (
	// PublicObjectPath is the storage API path under which public objects are served.
	PublicObjectPath = "/storage/v1/object/public/"

	// DefaultBucket is used when the configured bucket is empty.
	DefaultBucket = "images"
)

// Normalizer builds public object URLs for a single storage endpoint.
type Normalizer struct {
	baseURL string
	bucket  string
}

// NewNormalizer returns a Normalizer for the given storage base URL and
// default bucket. Trailing slashes on the base URL are ignored.
func NewNormalizer(baseURL, bucket string) *Normalizer {
	bucket = strings.Trim(bucket, "/")
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &Normalizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
	}
}

// Bucket returns the default bucket relative paths are namespaced under.
func (n *Normalizer) Bucket() string {
	return n.bucket
}

// Normalize maps a stored reference to an absolute URL. Empty input yields
// "". Absolute http(s) URLs and references already containing the public
// object path are returned unchanged; anything else is a bucket-relative path.
func (n *Normalizer) Normalize(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if isAbsolute(ref) || strings.Contains(ref, PublicObjectPath) {
		return ref
	}

	path := strings.TrimLeft(ref, "/")
	if path == "" {
		return ref
	}
	if !strings.HasPrefix(path, n.bucket+"/") {
		path = n.bucket + "/" + path
	}
	return n.baseURL + PublicObjectPath + path
}

// NormalizePtr is Normalize for nullable columns. A nil or empty reference
// stays nil.
func (n *Normalizer) NormalizePtr(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := n.Normalize(*ref)
	if v == "" {
		return nil
	}
	return &v
}

func isAbsolute(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
