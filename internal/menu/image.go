package menu

import "strings"

// ImageResolver turns stored image references into absolute URLs.
type ImageResolver struct {
	publicURL string
}

// NewImageResolver creates a resolver rooted at the site's public URL.
func NewImageResolver(publicURL string) ImageResolver {
	return ImageResolver{publicURL: strings.TrimRight(publicURL, "/")}
}

// Resolve passes absolute http(s) URLs through and joins anything else onto
// {publicURL}/images/.
func (r ImageResolver) Resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return r.publicURL + "/images/" + strings.TrimLeft(path, "/")
}
