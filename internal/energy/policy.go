package energy

// TipSet is an ordered list of energy saving tips for one temperature band.
type TipSet []string

// Band boundaries in degrees Celsius. Both are inclusive.
const (
	HotThreshold  = 30.0
	ColdThreshold = 15.0
)

var (
	hotTips = TipSet{
		"Use ceiling fans before switching on the AC.",
		"Keep curtains closed during the day to block heat.",
		"Hydrate well and avoid overusing cooling appliances.",
		"Set AC to 24°C for efficient cooling.",
		"Use solar shades or reflective window panels.",
	}
	coldTips = TipSet{
		"Use thick curtains to retain heat inside.",
		"Seal any window or door gaps to prevent heat loss.",
		"Wear layered clothing indoors instead of increasing heater usage.",
		"Use electric blankets instead of room heaters when possible.",
		"Bake or cook at home to warm the kitchen naturally.",
	}
	moderateTips = TipSet{
		"Take advantage of natural ventilation.",
		"Use programmable thermostats efficiently.",
		"Switch off appliances when not in use.",
		"Use public transport or cycle when possible.",
		"Maintain appliances for better energy performance.",
	}
)

// TipsFor selects the tip set for temp: >= 30 hot, <= 15 cold, otherwise moderate.
// The returned slice is a copy.
func TipsFor(temp float64) TipSet {
	var src TipSet
	switch {
	case temp >= HotThreshold:
		src = hotTips
	case temp <= ColdThreshold:
		src = coldTips
	default:
		src = moderateTips
	}
	out := make(TipSet, len(src))
	copy(out, src)
	return out
}
