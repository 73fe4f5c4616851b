package textclean

import "fmt"

// StreetTypes holds the two canonical renderings of street and road types for a
// locale: short forms for space constrained labels, full forms for titles.
type StreetTypes struct {
	Abbreviate Rule
	Expand     Rule
}

var StreetTypesFRCA = StreetTypes{
	Abbreviate: Pipeline{
		MustWords("Aut", `autoroute\.?`, `aut\.?`),
		MustWords("Boul", `boulevard\.?`, `boul\.?`, `blvd\.?`, `bd\.?`),
		MustWords("Av", `avenue\.?`, `ave\.?`, `av\.?`),
		MustWords("Ch", `chemin\.?`, `ch\.?`),
		MustWords("Mtée", `mont[ée]e\.?`, `mt[ée]e\.?`),
		MustWords("Prom", `promenade\.?`, `prom\.?`),
		MustWords("Rte", `route\.?`, `rte\.?`),
		MustWords("Rue", `rue\.?`),
	},
	Expand: Pipeline{
		MustWords("Autoroute", `autoroute\.?`, `aut\.?`),
		MustWords("Boulevard", `boulevard\.?`, `boul\.?`, `blvd\.?`, `bd\.?`),
		MustWords("Avenue", `avenue\.?`, `ave\.?`, `av\.?`),
		MustWords("Chemin", `chemin\.?`, `ch\.?`),
		MustWords("Montée", `mont[ée]e\.?`, `mt[ée]e\.?`),
		MustWords("Promenade", `promenade\.?`, `prom\.?`),
		MustWords("Route", `route\.?`, `rte\.?`),
		MustWords("Rue", `rue\.?`),
	},
}

var noStreetTypes = StreetTypes{
	Abbreviate: Pipeline{},
	Expand:     Pipeline{},
}

func LookupStreetTypes(name string) (StreetTypes, error) {
	switch name {
	case "":
		return noStreetTypes, nil
	case "fr-CA":
		return StreetTypesFRCA, nil
	default:
		return StreetTypes{}, fmt.Errorf("unknown street types %q", name)
	}
}
