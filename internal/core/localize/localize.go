// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

/*
Package localize picks the language variant of a catalogue entity to serve.

Every novel and chapter is stored once in its original language (the
canonical record). Translations are overlay rows keyed by language code. A
novel may additionally carry a site-default translated title/synopsis pair
that is not locale-tagged; the locale it is assumed to represent comes from
configuration (config.DefaultOverlayLocale).

Resolution is a pure function over already-loaded rows. It never errors: a
missing translation is a fallback trigger, not a failure.

Fallback chain, highest priority first:

 1. An active overlay matching the requested locale.
 2. The canonical record, when the requested locale IS the original language.
 3. The novel's site-default translated pair, served as the configured
    default overlay locale.
 4. The canonical record.
*/
package localize

// Canonical is the original-language projection of a novel or chapter.
type Canonical struct {
	Title    string
	Body     string // synopsis for novels, content for chapters
	Language string // original language code
}

// DefaultOverlay is a novel's site-default translated title/synopsis pair.
// It exists only on novels and is not locale-tagged in storage.
type DefaultOverlay struct {
	Title string
	Body  string
}

// Overlay is a locale-tagged translation row loaded for the requested locale.
type Overlay struct {
	// Title may be nil, in which case the canonical title is inherited.
	Title *string
	// Body is authoritative once the overlay exists.
	Body string
	// Locale is the overlay's language code.
	Locale string
	// Active reflects whether the overlay's language is currently active.
	// Inactive languages are excluded from resolution.
	Active bool
}

// Localized is the read-only projection returned to callers. It never
// feeds back into storage.
type Localized struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	ServedLocale string `json:"served_locale"`
}

// Resolve applies the fallback chain and returns the best available variant.
//
// # Parameters
//   - canonical: The original-language record (always present).
//   - siteDefault: The novel's default translated pair, nil for chapters or
//     novels without one.
//   - overlay: The translation row loaded for the requested locale, nil when
//     no locale was requested or no row exists.
//   - requested: The caller's locale, empty for "no preference".
//   - defaultLocale: The configured locale of siteDefault pairs.
func Resolve(canonical Canonical, siteDefault *DefaultOverlay, overlay *Overlay, requested, defaultLocale string) Localized {

	// 1. Exact overlay match wins outright.
	if requested != "" && overlay != nil && overlay.Active && overlay.Locale == requested {
		title := canonical.Title
		if overlay.Title != nil && *overlay.Title != "" {
			title = *overlay.Title
		}
		return Localized{Title: title, Body: overlay.Body, ServedLocale: requested}
	}

	// 2. The caller asked for the original language itself.
	if requested != "" && requested == canonical.Language {
		return Localized{Title: canonical.Title, Body: canonical.Body, ServedLocale: canonical.Language}
	}

	// 3. Site-default translated pair (novels only). The title drives the
	// decision; a missing translated synopsis inherits the canonical one.
	if siteDefault != nil && siteDefault.Title != "" {
		body := canonical.Body
		if siteDefault.Body != "" {
			body = siteDefault.Body
		}
		return Localized{Title: siteDefault.Title, Body: body, ServedLocale: defaultLocale}
	}

	// 4. Canonical record.
	return Localized{Title: canonical.Title, Body: canonical.Body, ServedLocale: canonical.Language}
}
