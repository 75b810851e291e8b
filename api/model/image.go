package model

import "regexp"

// NoSHAProvided is reported as the digest of images pinned by tag only.
const NoSHAProvided = "No SHA provided"

// imageRefRe splits "<repo>:<tag>[@sha256:<hex>]". Registries with a port
// and non-sha256 digests are not understood; consumers rely on that.
var imageRefRe = regexp.MustCompile(`^([^:]+):([^@]+)(?:@sha256:([a-f0-9]+))?$`)

// ParseImage decomposes an image reference as reported in an Application's
// status summary. The second result is false when s does not match.
func ParseImage(s string) (ImageRef, bool) {
	m := imageRefRe.FindStringSubmatch(s)
	if m == nil {
		return ImageRef{}, false
	}
	ref := ImageRef{Image: m[1], Tag: m[2], SHA: m[3]}
	if ref.SHA == "" {
		ref.SHA = NoSHAProvided
	}
	return ref, true
}
