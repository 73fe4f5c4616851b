package textclean

import "golang.org/x/text/language"

// RouteLongName cleans route titles. Street types are written in full.
func RouteLongName(tag language.Tag, streets StreetTypes) Pipeline {
	return Pipeline{
		Recase(tag),
		Saint,
		ParenthesesInner,
		ParenthesesOuter,
		Null,
		streets.Expand,
		CleanLabel(tag),
	}
}

// Headsign cleans the destination part of a trip headsign once the direction
// marker has been taken off. abbreviations are the agency specific word rules.
func Headsign(tag language.Tag, abbreviations []Rule, streets StreetTypes) Pipeline {
	pipeline := Pipeline{Recase(tag)}
	pipeline = append(pipeline, abbreviations...)
	pipeline = append(pipeline,
		RemovePoints,
		streets.Abbreviate,
		CleanLabel(tag),
	)

	return pipeline
}

func StopName(tag language.Tag, streets StreetTypes) Pipeline {
	return Pipeline{
		Recase(tag),
		Func(TrimBounds),
		streets.Abbreviate,
		CleanLabel(tag),
	}
}
