package criteria

import (
	"strings"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/specs"
)

//nolint:gochecknoglobals // Static rule table
var tvSizes = namedBands{
	"32": {Min: 0, Max: 39},
	"43": {Min: 40, Max: 47},
	"50": {Min: 48, Max: 52},
	"55": {Min: 53, Max: 59},
	"65": {Min: 60, Max: 70},
	"75": {Min: 71, Max: 79},
	"85": {Min: 80, Max: 200},
}

//nolint:gochecknoglobals // Static rule table
var tvResolutions = map[string][]string{
	"8k":    {"8k", "4320"},
	"4k":    {"4k", "uhd", "ultra hd", "2160"},
	"1080p": {"1080", "full hd", "fhd"},
	"720p":  {"720", "hd ready"},
}

//nolint:gochecknoglobals // Static rule table
var tvResolutionOrder = []string{"720p", "1080p", "4k", "8k"}

//nolint:gochecknoglobals // Static rule table
var tvResolutionAliases = map[string]string{
	"8k": "8k", "4320p": "8k",
	"4k": "4k", "uhd": "4k", "ultra_hd": "4k", "2160p": "4k",
	"1080p": "1080p", "full_hd": "1080p", "fhd": "1080p",
	"720p": "720p", "hd": "720p",
}

// TVSizeBand returns the screen-size band for a TV size answer such as "65-inch".
func TVSizeBand(answer string) (band specs.Band, ok bool) {
	band, ok = tvSizes.lookup(answer)
	return band, ok
}

// SizeBand returns the screen-size band lookup of a category with built-in
// size labels, or nil when the category has none.
func SizeBand(category string) (lookup func(answer string) (specs.Band, bool)) {
	switch categoryKey(category) {
	case "tvs":
		lookup = tvSizes.lookup
	case "laptops":
		lookup = laptopSizes.lookup
	case "smartphones":
		lookup = phoneSizes.lookup
	}
	return lookup
}

// TVRules evaluates questions for the TVs category.
type TVRules struct{}

// Category implements RuleSet.
func (TVRules) Category() (name string) {
	name = "TVs"
	return name
}

// Evaluate implements RuleSet.
func (TVRules) Evaluate(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	switch ruleKey(q.ID) {
	case "screen_size", "size":
		verdict = tvScreenSize(q, answer, p)
	case "panel_type", "display_type", "panel":
		verdict = tvPanel(q, answer, p)
	case "resolution":
		verdict = tvResolution(q, answer, p)
	case "refresh_rate":
		min, ok := threshold(answer, specs.ParseNumeric)
		if !ok {
			return Unhandled
		}
		verdict = atLeast(specOf(p, q, specs.UnitPlain, "refresh_rate", "refresh"), min)
	case "smart_platform", "smart_tv", "platform", "os":
		verdict = keywordVerdict(specOf(p, q, specs.UnitPlain, "smart_platform", "smart_tv", "platform", "os").Text, spaced(answer)...)
	case "hdr":
		hdr := specOf(p, q, specs.UnitPlain, "hdr", "hdr_formats", "hdr_support")
		verdict = existence(answer, !hdr.Missing() && hdr.Truthy())
		if verdict == Unhandled && !hdr.Missing() {
			// A named format ("dolby vision") rather than yes/no.
			verdict = keywordVerdict(hdr.Text, spaced(answer)...)
		}
	}
	return verdict
}

// tvScreenSize matches listed sizes, falling back to the sizes of priced variants.
func tvScreenSize(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	bands, ok := tvSizes.bands(answer)
	if !ok {
		return Unhandled
	}

	size := specOf(p, q, specs.UnitPlain, "screen_size", "size", "screen")
	if size.Missing() {
		size = variantSizes(p, q.VariantKey, "screen_size", "size")
	}

	verdict = inAnyBand(size, bands)

	return verdict
}

func variantSizes(p catalog.Product, keys ...string) (value specs.Value) {
	sizes := make([]any, 0)
	for _, vp := range p.Prices() {
		for _, k := range keys {
			if k == "" {
				continue
			}
			if attr, ok := vp.Attribute(k); ok {
				sizes = append(sizes, attr)
				break
			}
		}
	}
	value = specs.Parse(sizes, specs.UnitPlain)
	return value
}

func tvPanel(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	panel := specOf(p, q, specs.UnitPlain, "panel_type", "display_type", "panel", "display").Text
	if panel == "" {
		return NoData
	}

	for _, v := range answer.Values() {
		var match bool
		switch ruleKey(v) {
		case "oled":
			match = containsFold(panel, "oled")
		case "qled":
			match = containsFold(panel, "qled", "quantum dot")
		case "mini_led", "miniled":
			match = containsFold(panel, "mini-led", "mini led", "miniled")
		case "led", "lcd", "led_lcd":
			match = containsFold(panel, "led", "lcd") && !containsFold(panel, "oled", "qled")
		default:
			match = containsFold(panel, v)
		}
		if match {
			return Pass
		}
	}

	return Fail
}

func tvResolution(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	res := specOf(p, q, specs.UnitPlain, "resolution", "display_resolution").Text
	if res == "" {
		return NoData
	}

	for _, v := range answer.Values() {
		group, ok := tvResolutionAliases[ruleKey(v)]
		if !ok {
			if containsFold(res, v) {
				return Pass
			}
			continue
		}
		if containsFold(res, tvResolutions[group]...) && !higherResolution(res, group) {
			return Pass
		}
	}

	return Fail
}

// higherResolution guards shared aliases ("hd", "uhd") from matching a panel of a
// higher class, so "8K UHD" does not satisfy a 4K answer.
func higherResolution(res, group string) (higher bool) {
	for i := len(tvResolutionOrder) - 1; i >= 0 && tvResolutionOrder[i] != group; i-- {
		if containsFold(res, tvResolutions[tvResolutionOrder[i]]...) {
			return true
		}
	}
	return higher
}

// spaced turns answer values like "google_tv" into keywords like "google tv".
func spaced(answer catalog.Answer) (keywords []string) {
	for _, v := range answer.Values() {
		keywords = append(keywords, strings.ReplaceAll(v, "_", " "))
	}
	return keywords
}
