// Package storage resolves object paths in public buckets to URLs.
package storage

import (
	"net/url"
	"strings"
)

// Resolver builds public object URLs in the layout
// <base>/storage/v1/object/public/<bucket>/<path>.
type Resolver struct {
	base string
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{base: strings.TrimRight(baseURL, "/")}
}

// PublicURL escapes each path segment; leading slashes on path are ignored.
func (r *Resolver) PublicURL(bucket, path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return r.base + "/storage/v1/object/public/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

// PublicURLOr returns fallback when path is empty.
func (r *Resolver) PublicURLOr(bucket, path, fallback string) string {
	if strings.TrimSpace(path) == "" {
		return fallback
	}
	return r.PublicURL(bucket, path)
}
