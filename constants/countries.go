package constants

// ICAO country codes seen on passports processed by this post, mapped to the
// French country name used in the rest of the intake flow.
var CountryCodes = map[string]string{
	"ETH": "ETHIOPIE",
	"DJI": "DJIBOUTI",
	"ERI": "ERYTHREE",
	"KEN": "KENYA",
	"UGA": "OUGANDA",
	"SOM": "SOMALIE",
	"SSD": "SOUDAN DU SUD",
	"SDN": "SOUDAN",
	"CIV": "COTE D'IVOIRE",
	"SEN": "SENEGAL",
	"MLI": "MALI",
	"BFA": "BURKINA FASO",
	"GHA": "GHANA",
	"NGA": "NIGERIA",
	"CMR": "CAMEROUN",
	"COD": "RD CONGO",
	"ZAF": "AFRIQUE DU SUD",
}

// Names and codes accepted as belonging to the consular district. Matching
// is substring-based over accent-stripped uppercase text.
var JurisdictionCountryNames = []string{
	"ETHIOPIE", "ETHIOPIA", "ETH",
	"DJIBOUTI", "DJI",
	"ERYTHREE", "ERITREA", "ERI",
	"KENYA", "KEN",
	"OUGANDA", "UGANDA", "UGA",
	"SOMALIE", "SOMALIA", "SOM",
	"SOUDAN DU SUD", "SOUTH SUDAN", "SSD",
}

// Jurisdiction countries keyed by canonical name, with the spellings and
// official long forms found on residence permits.
var JurisdictionCountries = map[string][]string{
	"ETHIOPIA":    {"ETHIOPIA", "ETHIOPIE", "ETH", "FEDERAL DEMOCRATIC REPUBLIC"},
	"DJIBOUTI":    {"DJIBOUTI", "DJI", "REPUBLIQUE DE DJIBOUTI"},
	"ERITREA":     {"ERITREA", "ERYTHREE", "ERI", "STATE OF ERITREA"},
	"KENYA":       {"KENYA", "KEN", "REPUBLIC OF KENYA"},
	"UGANDA":      {"UGANDA", "OUGANDA", "UGA", "REPUBLIC OF UGANDA"},
	"SOMALIA":     {"SOMALIA", "SOMALIE", "SOM", "FEDERAL REPUBLIC OF SOMALIA"},
	"SOUTH_SUDAN": {"SOUTH SUDAN", "SOUDAN DU SUD", "SSD", "REPUBLIC OF SOUTH SUDAN"},
}

// JurisdictionCountryOrder fixes the table scan order, host country first.
var JurisdictionCountryOrder = []string{
	"ETHIOPIA", "DJIBOUTI", "ERITREA", "KENYA", "UGANDA", "SOMALIA", "SOUTH_SUDAN",
}
