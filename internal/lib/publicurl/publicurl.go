// Package publicurl derives externally reachable URLs for stored objects.
//
// Two strategies are supported: a "friendly" CDN-style base configured for
// the deployment, or the raw S3 endpoint. The friendly base always wins
// when both are set.
package publicurl

import "strings"

type Resolver struct {
	FriendlyBase string
	Endpoint     string
	Bucket       string
}

// Resolve returns the public URL for objectKey, or "" when the key is
// empty or no strategy is configured. Pure string policy, no I/O.
func (r Resolver) Resolve(objectKey string) string {
	if objectKey == "" {
		return ""
	}

	cleanKey := strings.TrimPrefix(objectKey, "/")

	if base := strings.TrimSpace(r.FriendlyBase); base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return base + r.Bucket + "/" + cleanKey
	}

	if endpoint := strings.TrimSpace(r.Endpoint); endpoint != "" {
		endpoint = strings.TrimPrefix(endpoint, "https://")
		endpoint = strings.TrimPrefix(endpoint, "http://")
		return "https://" + endpoint + "/" + r.Bucket + "/" + cleanKey
	}

	return ""
}
