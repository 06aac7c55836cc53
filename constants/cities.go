package constants

// Cities of Côte d'Ivoire recognized in hotel and invitation documents,
// stored accent-stripped and uppercase.
var CICities = []string{
	"ABIDJAN", "YAMOUSSOUKRO", "BOUAKE", "DALOA", "SAN PEDRO",
	"KORHOGO", "MAN", "DIVO", "GAGNOA", "ABENGOUROU", "GRAND BASSAM",
	"ASSINIE", "SASSANDRA", "BINGERVILLE", "PLATEAU", "COCODY",
	"MARCORY", "TREICHVILLE", "YOPOUGON", "ABOBO", "PORT-BOUET",
	"ODIENNE",
}

// Spelling variants OCR or booking sites produce, mapped to the canonical
// gazetteer entry.
var CityAliases = map[string]string{
	"SAN-PEDRO":    "SAN PEDRO",
	"SANPEDRO":     "SAN PEDRO",
	"GRAND-BASSAM": "GRAND BASSAM",
	"GRANDBASSAM":  "GRAND BASSAM",
	"PORT BOUET":   "PORT-BOUET",
	"PORTBOUET":    "PORT-BOUET",
	"YAMOUSSOKRO":  "YAMOUSSOUKRO",
}

// Booking platforms whose confirmations commonly reach the intake flow.
var BookingPlatforms = []string{
	"BOOKING.COM", "BOOKING", "EXPEDIA", "HOTELS.COM", "AGODA",
	"AIRBNB", "VRBO", "TRIPADVISOR", "KAYAK", "TRIVAGO",
}

// Room types recognized on reservation confirmations.
var RoomTypes = []string{
	"SINGLE", "DOUBLE", "TWIN", "TRIPLE", "QUADRUPLE", "SUITE",
	"DELUXE", "SUPERIOR", "STANDARD", "EXECUTIVE", "FAMILY",
	"STUDIO", "APARTMENT", "VILLA", "BUNGALOW", "PENTHOUSE",
}
