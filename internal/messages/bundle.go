package messages

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// Bundle holds the catalogue and language tag of every supported locale.
type Bundle struct {
	catalogues    map[string]Catalogue
	tags          map[string]language.Tag
	defaultLocale string
}

// FileName returns the catalogue file name of a locale.
func FileName(locale string) string {
	return locale + ".json"
}

// LoadBundle loads the catalogue of every locale concurrently. Any failure
// fails the whole bundle.
func LoadBundle(ctx context.Context, loader Loader, locales []string, defaultLocale string, logger zerolog.Logger) (*Bundle, error) {
	logger = logger.With().Str("component", "messages").Logger()

	b := &Bundle{
		catalogues:    make(map[string]Catalogue, len(locales)),
		tags:          make(map[string]language.Tag, len(locales)),
		defaultLocale: defaultLocale,
	}

	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		b.tags[locale] = tag
	}

	type loadResult struct {
		index     int
		catalogue Catalogue
		err       error
	}

	resultChan := make(chan loadResult, len(locales))
	var wg sync.WaitGroup

	for i, locale := range locales {
		wg.Add(1)
		go func(index int, locale string) {
			defer wg.Done()
			catalogue, err := loader.Load(ctx, FileName(locale))
			resultChan <- loadResult{index: index, catalogue: catalogue, err: err}
		}(i, locale)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(locales))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().Err(result.err).Str("locale", locales[i]).Msg("failed to load message catalogue")
			return nil, fmt.Errorf("failed to load messages for %s: %w", locales[i], result.err)
		}
		b.catalogues[locales[i]] = result.catalogue
	}

	if _, ok := b.catalogues[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q has no catalogue", defaultLocale)
	}

	logger.Info().Strs("locales", locales).Msg("message catalogues loaded")
	return b, nil
}

// NewBundle builds a bundle from catalogues already in memory.
func NewBundle(catalogues map[string]Catalogue, defaultLocale string) (*Bundle, error) {
	b := &Bundle{
		catalogues:    catalogues,
		tags:          make(map[string]language.Tag, len(catalogues)),
		defaultLocale: defaultLocale,
	}
	for locale := range catalogues {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		b.tags[locale] = tag
	}
	if _, ok := catalogues[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q has no catalogue", defaultLocale)
	}
	return b, nil
}

// For returns the catalogue of locale, or the default catalogue.
func (b *Bundle) For(locale string) Catalogue {
	if c, ok := b.catalogues[locale]; ok {
		return c
	}
	return b.catalogues[b.defaultLocale]
}

// Tag returns the language tag of locale, or of the default locale.
func (b *Bundle) Tag(locale string) language.Tag {
	if t, ok := b.tags[locale]; ok {
		return t
	}
	return b.tags[b.defaultLocale]
}

// Has reports whether locale has a catalogue.
func (b *Bundle) Has(locale string) bool {
	_, ok := b.catalogues[locale]
	return ok
}

// DefaultLocale returns the fallback locale.
func (b *Bundle) DefaultLocale() string {
	return b.defaultLocale
}
