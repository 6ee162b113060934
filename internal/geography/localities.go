package geography

import (
	"strings"

	"github.com/richxcame/ridematch/pkg/geo"
)

type locality struct {
	key      string
	province Province
}

// localities maps normalized city and district names to their province.
// Matching walks the slice in order and stops at the first key contained in
// the address, so the order is part of the behaviour.
var localities = []locality{
	{"matola", Maputo}, {"boane", Maputo}, {"moamba", Maputo}, {"marracuene", Maputo},
	{"cidade da matola", Maputo}, {"cidade de maputo", Maputo},

	{"xai xai", Gaza}, {"bilene", Gaza}, {"chibuto", Gaza}, {"chokwe", Gaza}, {"manjacaze", Gaza},
	{"massingir", Gaza}, {"massangena", Gaza},

	{"inharrime", Inhambane}, {"vilanculos", Inhambane}, {"maxixe", Inhambane}, {"panda", Inhambane},
	{"funhalouro", Inhambane}, {"homoine", Inhambane},

	{"beira", Sofala}, {"dondo", Sofala}, {"buzi", Sofala}, {"caia", Sofala}, {"chemba", Sofala},
	{"cheringoma", Sofala}, {"gorongosa", Sofala}, {"marromeu", Sofala}, {"maringue", Sofala},
	{"muanza", Sofala}, {"nhamatanda", Sofala},

	{"chimoio", Manica}, {"gondola", Manica}, {"barue", Manica}, {"guro", Manica}, {"macate", Manica},
	{"machaze", Manica}, {"macossa", Manica}, {"manica", Manica}, {"mossurize", Manica},
	{"sussundenga", Manica}, {"tambara", Manica},

	{"tete", Tete}, {"ulongue", Tete}, {"angonia", Tete}, {"cahora bassa", Tete}, {"changara", Tete},
	{"chifunde", Tete}, {"chiuta", Tete}, {"doa", Tete}, {"macanga", Tete}, {"mague", Tete},
	{"maravia", Tete}, {"moatize", Tete}, {"mutarara", Tete}, {"tsangano", Tete}, {"zumbo", Tete},

	{"quelimane", Zambezia}, {"gurue", Zambezia}, {"alto molocue", Zambezia}, {"chinde", Zambezia},
	{"derre", Zambezia}, {"gile", Zambezia}, {"ile", Zambezia}, {"inhassunge", Zambezia},
	{"lugela", Zambezia}, {"maganja da costa", Zambezia}, {"milange", Zambezia}, {"mocuba", Zambezia},
	{"mopeia", Zambezia}, {"morrumbala", Zambezia}, {"mulevala", Zambezia}, {"namacurra", Zambezia},
	{"namarroi", Zambezia}, {"nicoadala", Zambezia}, {"pebane", Zambezia},

	{"nampula", Nampula}, {"angoche", Nampula}, {"mogincual", Nampula}, {"mogovolas", Nampula},
	{"moma", Nampula}, {"monapo", Nampula}, {"mossuril", Nampula}, {"muecate", Nampula},
	{"murrupula", Nampula}, {"nacala", Nampula}, {"nacala a velha", Nampula}, {"rapale", Nampula},
	{"ribaue", Nampula},

	{"pemba", CaboDelgado}, {"montepuez", CaboDelgado}, {"mocimboa da praia", CaboDelgado},
	{"macomia", CaboDelgado}, {"mueda", CaboDelgado}, {"muidumbe", CaboDelgado},
	{"namuno", CaboDelgado}, {"nangade", CaboDelgado}, {"palma", CaboDelgado},
	{"quissanga", CaboDelgado}, {"balama", CaboDelgado}, {"chiure", CaboDelgado},
	{"metuge", CaboDelgado}, {"meluco", CaboDelgado}, {"ancuabe", CaboDelgado}, {"ibo", CaboDelgado},

	{"lichinga", Niassa}, {"cuamba", Niassa}, {"lago", Niassa}, {"chimbunila", Niassa},
	{"majune", Niassa}, {"mandimba", Niassa}, {"marrupa", Niassa}, {"maua", Niassa},
	{"mavago", Niassa}, {"mecanhelas", Niassa}, {"mecula", Niassa}, {"metarica", Niassa},
	{"muembe", Niassa}, {"nguma", Niassa}, {"nipepe", Niassa}, {"sanga", Niassa},
}

// Place is a named locality with coordinates.
type Place struct {
	Name     string
	Province Province
	Point    geo.Point
}

// places is the coordinate table used by the offline reverse geocoder.
var places = []Place{
	{Name: "Maputo", Province: Maputo, Point: geo.Point{Lat: -25.9692, Lng: 32.5732}},
	{Name: "Matola", Province: Maputo, Point: geo.Point{Lat: -25.9623, Lng: 32.4589}},
	{Name: "Boane", Province: Maputo, Point: geo.Point{Lat: -26.0464, Lng: 32.3281}},
	{Name: "Namaacha", Province: Maputo, Point: geo.Point{Lat: -25.9919, Lng: 32.0208}},
	{Name: "Ressano Garcia", Province: Maputo, Point: geo.Point{Lat: -25.4333, Lng: 31.9833}},
	{Name: "Ponta do Ouro", Province: Maputo, Point: geo.Point{Lat: -26.8500, Lng: 32.8833}},
	{Name: "Xai-Xai", Province: Gaza, Point: geo.Point{Lat: -25.0519, Lng: 33.6442}},
	{Name: "Chókwè", Province: Gaza, Point: geo.Point{Lat: -24.5333, Lng: 33.0167}},
	{Name: "Chibuto", Province: Gaza, Point: geo.Point{Lat: -24.6867, Lng: 33.5308}},
	{Name: "Chongoene", Province: Gaza, Point: geo.Point{Lat: -24.0667, Lng: 33.7667}},
	{Name: "Inhambane", Province: Inhambane, Point: geo.Point{Lat: -23.8647, Lng: 35.3833}},
	{Name: "Maxixe", Province: Inhambane, Point: geo.Point{Lat: -23.8597, Lng: 35.3467}},
	{Name: "Vilanculos", Province: Inhambane, Point: geo.Point{Lat: -22.0133, Lng: 35.3133}},
	{Name: "Tofo", Province: Inhambane, Point: geo.Point{Lat: -23.8500, Lng: 35.5333}},
	{Name: "Beira", Province: Sofala, Point: geo.Point{Lat: -19.8436, Lng: 34.8389}},
	{Name: "Dondo", Province: Sofala, Point: geo.Point{Lat: -19.6108, Lng: 34.7431}},
	{Name: "Gorongosa", Province: Sofala, Point: geo.Point{Lat: -18.7417, Lng: 34.0167}},
	{Name: "Chimoio", Province: Manica, Point: geo.Point{Lat: -19.1164, Lng: 33.4833}},
	{Name: "Catandica", Province: Manica, Point: geo.Point{Lat: -18.9667, Lng: 32.8833}},
	{Name: "Sussundenga", Province: Manica, Point: geo.Point{Lat: -19.3333, Lng: 33.3833}},
	{Name: "Tete", Province: Tete, Point: geo.Point{Lat: -16.1564, Lng: 33.5867}},
	{Name: "Moatize", Province: Tete, Point: geo.Point{Lat: -16.1039, Lng: 33.7233}},
	{Name: "Cahora Bassa", Province: Tete, Point: geo.Point{Lat: -15.5833, Lng: 32.6667}},
	{Name: "Quelimane", Province: Zambezia, Point: geo.Point{Lat: -17.8786, Lng: 36.8883}},
	{Name: "Mocuba", Province: Zambezia, Point: geo.Point{Lat: -16.8372, Lng: 36.9856}},
	{Name: "Gurué", Province: Zambezia, Point: geo.Point{Lat: -15.4667, Lng: 36.9833}},
	{Name: "Nampula", Province: Nampula, Point: geo.Point{Lat: -15.1165, Lng: 39.2666}},
	{Name: "Nacala", Province: Nampula, Point: geo.Point{Lat: -14.5428, Lng: 40.6728}},
	{Name: "Angoche", Province: Nampula, Point: geo.Point{Lat: -16.2333, Lng: 39.9000}},
	{Name: "Pemba", Province: CaboDelgado, Point: geo.Point{Lat: -12.9740, Lng: 40.5178}},
	{Name: "Montepuez", Province: CaboDelgado, Point: geo.Point{Lat: -13.1258, Lng: 39.0042}},
	{Name: "Palma", Province: CaboDelgado, Point: geo.Point{Lat: -10.7333, Lng: 40.3667}},
	{Name: "Lichinga", Province: Niassa, Point: geo.Point{Lat: -13.3133, Lng: 35.2406}},
	{Name: "Cuamba", Province: Niassa, Point: geo.Point{Lat: -14.8000, Lng: 36.5333}},
}

// matchDictionary classifies a normalized address by locality name, then by
// province name. It returns false when neither matches.
func matchDictionary(normalized string) (Province, bool) {
	if normalized == "" {
		return Unknown, false
	}
	for _, l := range localities {
		if strings.Contains(normalized, l.key) {
			return l.province, true
		}
	}
	for _, p := range knownProvinces {
		if strings.Contains(normalized, string(p)) {
			return p, true
		}
	}
	return Unknown, false
}
