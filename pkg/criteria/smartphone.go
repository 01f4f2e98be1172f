package criteria

import (
	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/specs"
)

const (
	goodCameraScore      = 120.0
	excellentCameraScore = 140.0
	goodCameraMP         = 12.0
	excellentCameraMP    = 48.0
)

//nolint:gochecknoglobals // Static rule table
var phoneSizes = namedBands{
	"compact":  {Min: 0, Max: 6.1},
	"standard": {Min: 6.1, Max: 6.5},
	"large":    {Min: 6.5, Max: 10},
}

// SmartphoneRules evaluates questions for the Smartphones category.
type SmartphoneRules struct{}

// Category implements RuleSet.
func (SmartphoneRules) Category() (name string) {
	name = "Smartphones"
	return name
}

// Evaluate implements RuleSet.
func (SmartphoneRules) Evaluate(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	switch ruleKey(q.ID) {
	case "camera_quality", "camera":
		verdict = phoneCamera(answer, p)
	case "storage":
		min, ok := threshold(answer, specs.ParseMemoryOrStorage)
		if !ok {
			return Unhandled
		}
		verdict = atLeast(specOf(p, q, specs.UnitMemory, "storage"), min)
	case "battery_life", "battery":
		verdict = phoneBattery(q, answer, p)
	case "screen_size", "size":
		bands, ok := phoneSizes.bands(answer)
		if !ok {
			return Unhandled
		}
		verdict = inAnyBand(specOf(p, q, specs.UnitPlain, "screen_size", "display_size", "display"), bands)
	case "os", "operating_system":
		verdict = phoneOS(q, answer, p)
	case "5g", "five_g":
		verdict = phone5G(q, answer, p)
	}
	return verdict
}

// phoneCamera prefers a camera benchmark score and falls back to megapixels.
func phoneCamera(answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	level, ok := levelOf(answer, "basic", "good", "excellent")
	if !ok {
		return Unhandled
	}
	if level == "basic" {
		return Pass
	}

	score := p.Spec(specs.UnitPlain, "camera_score", "camera_benchmark", "dxomark")
	if score.Numeric() {
		min := goodCameraScore
		if level == "excellent" {
			min = excellentCameraScore
		}
		verdict = atLeast(score, min)
		return verdict
	}

	min := goodCameraMP
	if level == "excellent" {
		min = excellentCameraMP
	}
	verdict = atLeast(p.Spec(specs.UnitPlain, "main_camera", "rear_camera", "camera", "megapixels"), min)

	return verdict
}

// maxPhoneBatteryHours bounds a plausible battery life; larger numbers are capacities.
const maxPhoneBatteryHours = 200.0

// phoneBattery compares hours. Capacities, whether quoted in mAh or as a bare
// number like 4000, are not durations.
func phoneBattery(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	min, ok := threshold(answer, specs.ParseDuration)
	if !ok {
		return Unhandled
	}

	battery := specOf(p, q, specs.UnitDuration, "battery_life", "battery")
	if containsFold(battery.Text, "mah") {
		return NoData
	}
	if hours, numeric := battery.Max(); numeric && hours > maxPhoneBatteryHours {
		return NoData
	}

	verdict = atLeast(battery, min)

	return verdict
}

func phoneOS(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	os := specOf(p, q, specs.UnitPlain, "os", "operating_system").Text
	if os == "" && containsFold(p.Brand, "apple") {
		os = "iOS"
	}
	verdict = aliasVerdict(os, operatingSystems, answer)
	return verdict
}

func phone5G(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	flag := specOf(p, q, specs.UnitPlain, "5g", "5g_support")
	present := !flag.Missing() && flag.Truthy()
	if flag.Missing() {
		network := p.Spec(specs.UnitPlain, "connectivity", "network", "cellular").Text
		present = containsFold(network, "5g")
	}
	verdict = existence(answer, present)
	return verdict
}
