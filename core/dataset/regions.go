package dataset

// aggregateRegions are OWID rows that describe regions rather than countries.
// They carry synthetic iso codes and would dwarf every real country on the
// map, so the cleaning step removes them.
var aggregateRegions = map[string]bool{
	"World":                   true,
	"Asia":                    true,
	"Europe":                  true,
	"North America":           true,
	"South America":           true,
	"International transport": true,
	"Micronesia (country)":    true,
}

// IsAggregateRegion reports whether the country name is an excluded aggregate.
func IsAggregateRegion(name string) bool { return aggregateRegions[name] }
