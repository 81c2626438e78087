package menu

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"storefront/internal/model"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const slugIDSeparator = "-i."

// Slugify lowercases name, folds diacritics and joins words with dashes.
func Slugify(name string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == 'đ':
			b.WriteRune('d')
			dash = false
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugURL builds the "{slug}-i.{id}" path segment for a named entity.
func SlugURL(name string, id int) string {
	return fmt.Sprintf("%s%s%d", Slugify(name), slugIDSeparator, id)
}

// IDFromSlugURL extracts the id from a segment built by SlugURL.
func IDFromSlugURL(slug string) (int, error) {
	i := strings.LastIndex(slug, slugIDSeparator)
	if i < 0 {
		return 0, model.ErrInvalidSlug
	}
	id, err := strconv.Atoi(slug[i+len(slugIDSeparator):])
	if err != nil || id <= 0 {
		return 0, model.ErrInvalidSlug
	}
	return id, nil
}
