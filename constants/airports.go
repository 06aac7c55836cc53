package constants

// IATA codes of airports in Côte d'Ivoire. Arrival at any of these marks a
// flight segment as the main inbound leg.
var CIAirports = map[string]string{
	"ABJ": "Abidjan - Félix Houphouët-Boigny",
	"BYK": "Bouaké",
	"MJC": "Man",
	"SPY": "San Pedro",
	"OGO": "Odienné",
	"HGO": "Korhogo",
}

// IATA codes of airports inside the consular district.
var JurisdictionAirports = map[string]string{
	"ADD": "Addis Ababa (Éthiopie)",
	"JIB": "Djibouti",
	"ASM": "Asmara (Érythrée)",
	"NBO": "Nairobi (Kenya)",
	"MBA": "Mombasa (Kenya)",
	"EBB": "Entebbe (Ouganda)",
	"MGQ": "Mogadishu (Somalie)",
	"JUB": "Juba (Soudan du Sud)",
}

// Major hub airports seen on multi-leg itineraries toward Abidjan.
var HubAirports = map[string]struct{}{
	"CDG": {}, "ORY": {}, "LHR": {}, "AMS": {}, "FRA": {},
	"IST": {}, "DXB": {}, "DOH": {}, "JFK": {}, "CAI": {},
}

// Airline IATA prefixes to carrier names.
var Airlines = map[string]string{
	"ET": "Ethiopian Airlines",
	"KQ": "Kenya Airways",
	"AF": "Air France",
	"TK": "Turkish Airlines",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"LH": "Lufthansa",
	"BA": "British Airways",
	"KL": "KLM",
	"MS": "EgyptAir",
	"WB": "RwandAir",
	"HF": "Air Côte d'Ivoire",
	"W3": "ASKY Airlines",
}

// KnownAirport reports whether code is an airport the engine recognizes.
func KnownAirport(code string) bool {
	if _, ok := CIAirports[code]; ok {
		return true
	}
	if _, ok := JurisdictionAirports[code]; ok {
		return true
	}
	_, ok := HubAirports[code]
	return ok
}
