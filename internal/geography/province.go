package geography

// Province is a first-level administrative region of Mozambique, keyed by its
// normalized name.
type Province string

const (
	Maputo      Province = "maputo"
	MaputoCity  Province = "cidade de maputo"
	Gaza        Province = "gaza"
	Inhambane   Province = "inhambane"
	Sofala      Province = "sofala"
	Manica      Province = "manica"
	Tete        Province = "tete"
	Zambezia    Province = "zambezia"
	Nampula     Province = "nampula"
	CaboDelgado Province = "cabo delgado"
	Niassa      Province = "niassa"

	// Unknown is returned whenever an address cannot be classified.
	Unknown Province = "unknown"
)

// UnknownRank is the corridor rank of any province outside the corridor.
const UnknownRank = 99

// Region groups provinces for display.
type Region string

const (
	RegionSouth   Region = "south"
	RegionCenter  Region = "center"
	RegionNorth   Region = "north"
	RegionUnknown Region = "unknown"
)

type provinceInfo struct {
	display string
	rank    int
	region  Region
}

// knownProvinces lists the provinces south to north along the EN1/EN6/EN7 corridor.
var knownProvinces = []Province{
	Maputo, MaputoCity, Gaza, Inhambane, Sofala, Manica, Tete, Zambezia, Nampula, CaboDelgado, Niassa,
}

var provinceTable = map[Province]provinceInfo{
	Maputo:      {"Maputo", 1, RegionSouth},
	MaputoCity:  {"Cidade de Maputo", 1, RegionSouth},
	Gaza:        {"Gaza", 2, RegionSouth},
	Inhambane:   {"Inhambane", 3, RegionSouth},
	Sofala:      {"Sofala", 4, RegionCenter},
	Manica:      {"Manica", 5, RegionCenter},
	Tete:        {"Tete", 6, RegionCenter},
	Zambezia:    {"Zambézia", 7, RegionNorth},
	Nampula:     {"Nampula", 8, RegionNorth},
	CaboDelgado: {"Cabo Delgado", 9, RegionNorth},
	Niassa:      {"Niassa", 10, RegionNorth},
}

// KnownProvinces returns the eleven provinces in corridor order.
func KnownProvinces() []Province {
	out := make([]Province, len(knownProvinces))
	copy(out, knownProvinces)
	return out
}

// ParseProvince maps a province name in any spelling to a known Province.
func ParseProvince(name string) (Province, bool) {
	p := Province(Normalize(name))
	if _, ok := provinceTable[p]; ok {
		return p, true
	}
	return Unknown, false
}

// IsKnown reports whether p is one of the eleven provinces.
func (p Province) IsKnown() bool {
	_, ok := provinceTable[p]
	return ok
}

// Rank returns the corridor position, 1 for the southern terminus.
func (p Province) Rank() int {
	if info, ok := provinceTable[p]; ok {
		return info.rank
	}
	return UnknownRank
}

// Region returns the descriptive bucket of p.
func (p Province) Region() Region {
	if info, ok := provinceTable[p]; ok {
		return info.region
	}
	return RegionUnknown
}

// DisplayName returns the accented, title-cased name.
func (p Province) DisplayName() string {
	if info, ok := provinceTable[p]; ok {
		return info.display
	}
	return "Unknown"
}

func (p Province) String() string {
	return string(p)
}
