// Package glossary holds the static meteorology glossary served for
// frontend tooltips and the glossary panel.
package glossary

import "strings"

// Entry is one glossary item.
type Entry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Category   string `json:"category"`
}

// entries are ordered for display: forecast basics first, then
// post-processing, simple physics, and NWP concepts.
var entries = []Entry{
	{Term: "forecast", Definition: "A prediction of what the weather will be at a place and time, based on models and recent observations.", Category: "Data & forecast basics"},
	{Term: "observation", Definition: "A real measurement (temperature, wind, etc.) from a sensor or station right now or in the past.", Category: "Data & forecast basics"},
	{Term: "station", Definition: "A fixed location (e.g. airport or buoy) where weather is measured and reported.", Category: "Data & forecast basics"},
	{Term: "dew point", Definition: "The temperature at which air would get saturated and dew forms; higher often means stickier, more humid air.", Category: "Data & forecast basics"},
	{Term: "wind chill", Definition: "\"Feels like\" temperature when wind blows on skin; stronger wind makes cold feel colder.", Category: "Data & forecast basics"},
	{Term: "heat index", Definition: "\"Feels like\" temperature in hot, humid conditions; humidity makes heat feel more intense.", Category: "Data & forecast basics"},
	{Term: "precipitation chance", Definition: "The probability (e.g. 30%) that measurable rain or snow will fall at that location in the given period.", Category: "Data & forecast basics"},
	{Term: "watch vs warning", Definition: "A watch means conditions are possible; a warning means they're happening or imminent—take action.", Category: "Data & forecast basics"},
	{Term: "NDFD", Definition: "National Digital Forecast Database; the NWS's gridded blend of human and model forecasts.", Category: "Data & forecast basics"},
	{Term: "GFS", Definition: "Global Forecast System; NOAA's global weather model that runs every 6 hours.", Category: "Data & forecast basics"},
	{Term: "bias correction", Definition: "Adjusting model output so it matches past observations on average (e.g. if the model is usually 2°F too warm, subtract 2°F).", Category: "Post-processing"},
	{Term: "downscaling", Definition: "Taking coarser model data and refining it to a finer grid or location so local detail is better.", Category: "Post-processing"},
	{Term: "ensemble", Definition: "Many slightly different model runs used together to show a range of possible outcomes instead of one single forecast.", Category: "Post-processing"},
	{Term: "spread", Definition: "How much the ensemble members differ; large spread often means more uncertainty.", Category: "Post-processing"},
	{Term: "percentile", Definition: "A value that a given percent of outcomes fall below (e.g. 90th percentile temperature = warmer than 90% of ensemble members).", Category: "Post-processing"},
	{Term: "raw vs corrected", Definition: "Raw is direct model output; corrected is after bias correction or other post-processing.", Category: "Post-processing"},
	{Term: "advection", Definition: "Something (e.g. temperature or moisture) being carried along by the wind.", Category: "Simple physics"},
	{Term: "diffusion", Definition: "Smoothing or spreading of a quantity (e.g. heat or smoke) from areas of high to low concentration.", Category: "Simple physics"},
	{Term: "sounding", Definition: "A vertical profile of the atmosphere (temperature, humidity, wind vs height) from a balloon or model.", Category: "Simple physics"},
	{Term: "skew-T", Definition: "A standard chart that shows a sounding; used to read stability and moisture with height.", Category: "Simple physics"},
	{Term: "CAPE", Definition: "Convective Available Potential Energy; a measure of how much \"fuel\" the atmosphere has for thunderstorms (higher = more potential).", Category: "Simple physics"},
	{Term: "CIN", Definition: "Convective Inhibition; a \"lid\" that can prevent storms from forming even when CAPE is present.", Category: "Simple physics"},
	{Term: "stability", Definition: "Whether air tends to stay in place (stable) or rise and form clouds/storms (unstable).", Category: "Simple physics"},
	{Term: "parcel", Definition: "A hypothetical blob of air that we track (e.g. lift it and see if it keeps rising) to understand stability.", Category: "Simple physics"},
	{Term: "primitive equations", Definition: "The core physics equations (motion, mass, energy) that full weather models solve to predict the atmosphere.", Category: "NWP concepts"},
	{Term: "pressure level", Definition: "A horizontal slice of the atmosphere at a fixed pressure (e.g. 500 mb), often used instead of height.", Category: "NWP concepts"},
	{Term: "boundary conditions", Definition: "Values at the edges of the model domain, usually from a larger model like GFS, that \"drive\" your run.", Category: "NWP concepts"},
	{Term: "data assimilation", Definition: "Blending new observations into the model's state so the forecast starts from a more accurate picture.", Category: "NWP concepts"},
	{Term: "cross-section", Definition: "A vertical slice through the atmosphere (e.g. along a line) showing how a variable changes with height and distance.", Category: "NWP concepts"},
	{Term: "model run", Definition: "One execution of the numerical model from a start time, producing a forecast over a set period.", Category: "NWP concepts"},
}

// Entries returns all glossary entries in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// ByCategory groups entries by category, preserving display order within
// each group.
func ByCategory() map[string][]Entry {
	out := make(map[string][]Entry)
	for _, e := range entries {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}

// Lookup finds a term, ignoring case and surrounding whitespace.
func Lookup(term string) (Entry, bool) {
	key := strings.ToLower(strings.TrimSpace(term))
	for _, e := range entries {
		if strings.ToLower(e.Term) == key {
			return e, true
		}
	}
	return Entry{}, false
}
