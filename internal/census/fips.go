package census

import "strings"

// stateFIPS maps lowercase state names (all 50 states + DC) to 2-digit FIPS
// codes. Fixed reference data; never mutated after init.
var stateFIPS = map[string]string{
	"alabama": "01", "alaska": "02", "arizona": "04", "arkansas": "05",
	"california": "06", "colorado": "08", "connecticut": "09", "delaware": "10",
	"florida": "12", "georgia": "13", "hawaii": "15", "idaho": "16",
	"illinois": "17", "indiana": "18", "iowa": "19", "kansas": "20",
	"kentucky": "21", "louisiana": "22", "maine": "23", "maryland": "24",
	"massachusetts": "25", "michigan": "26", "minnesota": "27", "mississippi": "28",
	"missouri": "29", "montana": "30", "nebraska": "31", "nevada": "32",
	"new hampshire": "33", "new jersey": "34", "new mexico": "35", "new york": "36",
	"north carolina": "37", "north dakota": "38", "ohio": "39", "oklahoma": "40",
	"oregon": "41", "pennsylvania": "42", "rhode island": "44", "south carolina": "45",
	"south dakota": "46", "tennessee": "47", "texas": "48", "utah": "49",
	"vermont": "50", "virginia": "51", "washington": "53", "west virginia": "54",
	"wisconsin": "55", "wyoming": "56", "district of columbia": "11", "dc": "11",
}

// stateAbbrev maps lowercase postal abbreviations to full lowercase names.
var stateAbbrev = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
	"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
	"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho",
	"il": "illinois", "in": "indiana", "ia": "iowa", "ks": "kansas",
	"ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
	"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
	"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
	"nh": "new hampshire", "nj": "new jersey", "nm": "new mexico", "ny": "new york",
	"nc": "north carolina", "nd": "north dakota", "oh": "ohio", "ok": "oklahoma",
	"or": "oregon", "pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina",
	"sd": "south dakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
	"vt": "vermont", "va": "virginia", "wa": "washington", "wv": "west virginia",
	"wi": "wisconsin", "wy": "wyoming", "dc": "district of columbia",
}

// fipsToState is the reverse mapping from FIPS code to a display name.
var fipsToState = func() map[string]string {
	out := make(map[string]string, len(stateFIPS))
	for name, code := range stateFIPS {
		if name == "dc" {
			continue
		}
		out[code] = titleCase(name)
	}
	out["11"] = "District of Columbia"
	return out
}()

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "of" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// MapRegion converts a state name or postal abbreviation to a FIPS code.
// Lookup is case-insensitive and trims whitespace; the full name is tried
// before the abbreviation. Returns ("", false) for unknown regions.
func MapRegion(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return "", false
	}
	if code, ok := stateFIPS[lower]; ok {
		return code, true
	}
	if full, ok := stateAbbrev[lower]; ok {
		return stateFIPS[full], true
	}
	return "", false
}

// RegionName returns the display name for a FIPS code, or "" if unknown.
func RegionName(fips string) string {
	return fipsToState[fips]
}
