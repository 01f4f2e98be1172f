package criteria

import (
	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/specs"
)

const (
	everydayRAMGB        = 8.0
	highPerformanceRAMGB = 16.0
	ultraportableKg      = 1.4
	portableKg           = 2.0
)

//nolint:gochecknoglobals // Static rule table
var dedicatedGraphics = []string{"nvidia", "geforce", "rtx", "gtx", "radeon rx", "radeon pro", "arc a", "dedicated", "discrete"}

//nolint:gochecknoglobals // Static rule table
var highTierProcessors = []string{
	"i7", "i9", "core ultra 7", "core ultra 9", "ultra 7", "ultra 9",
	"ryzen 7", "ryzen 9", "ryzen ai 9",
	"m1 pro", "m1 max", "m2 pro", "m2 max", "m3 pro", "m3 max", "m4 pro", "m4 max", "m1 ultra", "m2 ultra",
	"xeon",
}

//nolint:gochecknoglobals // Static rule table
var laptopSizes = namedBands{
	"small":  {Min: 0, Max: 13.9},
	"medium": {Min: 14, Max: 15.9},
	"large":  {Min: 16, Max: 20},
	"13":     {Min: 13, Max: 13.9},
	"14":     {Min: 14, Max: 14.9},
	"15":     {Min: 15, Max: 15.9},
	"16":     {Min: 16, Max: 16.9},
	"17":     {Min: 17, Max: 18.4},
}

//nolint:gochecknoglobals // Static rule table
var processorBrands = map[string][]string{
	"intel":    {"intel", "core i", "core ultra", "celeron", "pentium", "xeon"},
	"amd":      {"amd", "ryzen", "athlon"},
	"apple":    {"apple", "m1", "m2", "m3", "m4"},
	"qualcomm": {"qualcomm", "snapdragon"},
}

//nolint:gochecknoglobals // Static rule table
var operatingSystems = map[string][]string{
	"windows":  {"windows"},
	"macos":    {"macos", "mac os", "os x"},
	"mac":      {"macos", "mac os", "os x"},
	"chromeos": {"chromeos", "chrome os"},
	"chrome":   {"chromeos", "chrome os"},
	"linux":    {"linux", "ubuntu"},
	"ios":      {"ios"},
	"android":  {"android"},
}

// LaptopRules evaluates questions for the Laptops category.
type LaptopRules struct{}

// Category implements RuleSet.
func (LaptopRules) Category() (name string) {
	name = "Laptops"
	return name
}

// Evaluate implements RuleSet.
func (LaptopRules) Evaluate(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	switch ruleKey(q.ID) {
	case "performance", "use_case", "usage":
		verdict = laptopPerformance(answer, p)
	case "ram", "memory":
		min, ok := threshold(answer, specs.ParseMemoryOrStorage)
		if !ok {
			return Unhandled
		}
		verdict = atLeast(specOf(p, q, specs.UnitMemory, "ram", "memory"), min)
	case "storage":
		min, ok := threshold(answer, specs.ParseMemoryOrStorage)
		if !ok {
			return Unhandled
		}
		verdict = atLeast(specOf(p, q, specs.UnitMemory, "storage", "ssd"), min)
	case "screen_size", "size":
		bands, ok := laptopSizes.bands(answer)
		if !ok {
			return Unhandled
		}
		verdict = inAnyBand(specOf(p, q, specs.UnitPlain, "screen_size", "display_size", "display"), bands)
	case "battery_life", "battery":
		min, ok := threshold(answer, specs.ParseDuration)
		if !ok {
			return Unhandled
		}
		verdict = atLeast(specOf(p, q, specs.UnitDuration, "battery_life", "battery"), min)
	case "processor_brand", "processor", "cpu":
		verdict = aliasVerdict(specOf(p, q, specs.UnitPlain, "processor", "cpu", "processor_brand").Text, processorBrands, answer)
	case "os", "operating_system":
		verdict = aliasVerdict(specOf(p, q, specs.UnitPlain, "os", "operating_system").Text, operatingSystems, answer)
	case "portability", "weight":
		verdict = laptopPortability(q, answer, p)
	}
	return verdict
}

// laptopPerformance checks a usage tier against RAM, graphics and processor.
func laptopPerformance(answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	level, ok := levelOf(answer, "basic", "everyday", "high_performance", "gaming")
	if !ok {
		return Unhandled
	}

	ram := atLeast(p.Spec(specs.UnitMemory, "ram", "memory"), highPerformanceRAMGB)
	graphics := keywordVerdict(p.Spec(specs.UnitPlain, "graphics", "gpu", "graphics_card").Text, dedicatedGraphics...)
	processor := keywordVerdict(p.Spec(specs.UnitPlain, "processor", "cpu").Text, highTierProcessors...)

	switch level {
	case "basic":
		verdict = Pass
	case "everyday":
		verdict = atLeast(p.Spec(specs.UnitMemory, "ram", "memory"), everydayRAMGB)
	case "high_performance":
		verdict = all(ram, graphics, processor)
	case "gaming":
		verdict = all(ram, graphics)
	}

	return verdict
}

// all fails if any part fails, and reports NoData if any part lacks data.
func all(parts ...Verdict) (verdict Verdict) {
	verdict = Pass
	for _, v := range parts {
		switch v {
		case Fail:
			return Fail
		case NoData:
			verdict = NoData
		}
	}
	return verdict
}

func laptopPortability(q catalog.Question, answer catalog.Answer, p catalog.Product) (verdict Verdict) {
	level, ok := levelOf(answer, "ultraportable", "portable", "not_important", "desktop_replacement")
	if !ok {
		return Unhandled
	}

	weight := specOf(p, q, specs.UnitWeight, "weight")

	switch level {
	case "ultraportable":
		verdict = atMost(weight, ultraportableKg)
	case "portable":
		verdict = atMost(weight, portableKg)
	default:
		verdict = Pass
	}

	return verdict
}

// aliasVerdict matches text against the keyword group of each answer value,
// falling back to the answer itself for values outside the table.
func aliasVerdict(text string, aliases map[string][]string, answer catalog.Answer) (verdict Verdict) {
	keywords := make([]string, 0)
	for _, v := range answer.Values() {
		if group, ok := aliases[ruleKey(v)]; ok {
			keywords = append(keywords, group...)
			continue
		}
		keywords = append(keywords, v)
	}
	verdict = keywordVerdict(text, keywords...)
	return verdict
}
