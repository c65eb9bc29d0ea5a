package xuk

import (
	"net/url"
	"strings"
)

// RelativeURI expresses ref relative to base when both share scheme, host and
// user info. Otherwise, or when base is nil, ref is returned unchanged.
func RelativeURI(base *url.URL, ref string) string {
	if base == nil || ref == "" {
		return ref
	}
	target, err := url.Parse(ref)
	if err != nil || !target.IsAbs() {
		return ref
	}
	if !strings.EqualFold(target.Scheme, base.Scheme) || target.Host != base.Host || target.User.String() != base.User.String() {
		return ref
	}

	baseDir := strings.Split(base.Path, "/")
	baseDir = baseDir[:len(baseDir)-1]
	targetPath := strings.Split(target.Path, "/")

	common := 0
	for common < len(baseDir) && common < len(targetPath)-1 && baseDir[common] == targetPath[common] {
		common++
	}

	var parts []string
	for i := common; i < len(baseDir); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetPath[common:]...)
	rel := &url.URL{Path: strings.Join(parts, "/"), RawQuery: target.RawQuery, Fragment: target.Fragment}
	out := rel.String()
	if out == "" {
		return ref
	}
	return out
}

// ResolveURI resolves a relative ref against base. Absolute references and a
// nil base leave ref unchanged.
func ResolveURI(base *url.URL, ref string) string {
	if base == nil || ref == "" {
		return ref
	}
	target, err := url.Parse(ref)
	if err != nil || target.IsAbs() {
		return ref
	}
	return base.ResolveReference(target).String()
}
