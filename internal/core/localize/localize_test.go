// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package localize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manovapp/manov/internal/core/localize"
	"github.com/manovapp/manov/pkg/pointer"
)

/*
TestResolve_FallbackChain walks the four-step fallback chain with a Chinese
canonical novel, a site-default English pair and a locale-tagged overlay.
*/
func TestResolve_FallbackChain(t *testing.T) {
	canonical := localize.Canonical{Title: "源", Body: "中文简介", Language: "zh"}
	siteDefault := &localize.DefaultOverlay{Title: "Origin", Body: "English synopsis"}
	overlay := &localize.Overlay{
		Title:  pointer.To("Origem"),
		Body:   "Sinopse em português",
		Locale: "pt",
		Active: true,
	}

	tests := []struct {
		name        string
		siteDefault *localize.DefaultOverlay
		overlay     *localize.Overlay
		requested   string
		want        localize.Localized
	}{
		{
			name:        "active_overlay_wins",
			siteDefault: siteDefault,
			overlay:     overlay,
			requested:   "pt",
			want:        localize.Localized{Title: "Origem", Body: "Sinopse em português", ServedLocale: "pt"},
		},
		{
			name:        "requested_original_language_serves_canonical",
			siteDefault: siteDefault,
			overlay:     nil,
			requested:   "zh",
			want:        localize.Localized{Title: "源", Body: "中文简介", ServedLocale: "zh"},
		},
		{
			name:        "missing_overlay_falls_to_site_default",
			siteDefault: siteDefault,
			overlay:     nil,
			requested:   "fr",
			want:        localize.Localized{Title: "Origin", Body: "English synopsis", ServedLocale: "en"},
		},
		{
			name:        "inactive_overlay_is_skipped",
			siteDefault: siteDefault,
			overlay:     &localize.Overlay{Title: pointer.To("Origem"), Body: "pt body", Locale: "pt", Active: false},
			requested:   "pt",
			want:        localize.Localized{Title: "Origin", Body: "English synopsis", ServedLocale: "en"},
		},
		{
			name:        "no_preference_prefers_site_default",
			siteDefault: siteDefault,
			overlay:     nil,
			requested:   "",
			want:        localize.Localized{Title: "Origin", Body: "English synopsis", ServedLocale: "en"},
		},
		{
			name:        "final_fallback_is_canonical",
			siteDefault: nil,
			overlay:     nil,
			requested:   "fr",
			want:        localize.Localized{Title: "源", Body: "中文简介", ServedLocale: "zh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := localize.Resolve(canonical, tt.siteDefault, tt.overlay, tt.requested, "en")
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestResolve_OverlayTitleInheritance checks that an overlay with no title of
its own serves the canonical title with the translated body.
*/
func TestResolve_OverlayTitleInheritance(t *testing.T) {
	canonical := localize.Canonical{Title: "武道巅峰", Body: "正文", Language: "zh"}
	overlay := &localize.Overlay{Title: nil, Body: "Translated body", Locale: "en", Active: true}

	got := localize.Resolve(canonical, nil, overlay, "en", "en")

	assert.Equal(t, "武道巅峰", got.Title)
	assert.Equal(t, "Translated body", got.Body)
	assert.Equal(t, "en", got.ServedLocale)
}

/*
TestResolve_SiteDefaultBodyInheritance checks that a site-default pair with
an empty synopsis inherits the canonical body.
*/
func TestResolve_SiteDefaultBodyInheritance(t *testing.T) {
	canonical := localize.Canonical{Title: "무림", Body: "한국어 줄거리", Language: "ko"}
	siteDefault := &localize.DefaultOverlay{Title: "Murim", Body: ""}

	got := localize.Resolve(canonical, siteDefault, nil, "fr", "en")

	assert.Equal(t, "Murim", got.Title)
	assert.Equal(t, "한국어 줄거리", got.Body)
	assert.Equal(t, "en", got.ServedLocale)
}
