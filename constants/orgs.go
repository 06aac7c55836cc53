package constants

// International organizations whose notes verbales and letterheads reach the
// post, mapped to the French acronym used internally.
var InternationalOrgs = map[string]string{
	"UNITED NATIONS": "ONU",
	"UN":             "ONU",
	"ONU":            "ONU",
	"AFRICAN UNION":  "UA",
	"AU":             "UA",
	"UA":             "UA",
	"EUROPEAN UNION": "UE",
	"EU":             "UE",
	"WORLD BANK":     "BANQUE MONDIALE",
	"IMF":            "FMI",
	"WHO":            "OMS",
	"UNESCO":         "UNESCO",
	"UNICEF":         "UNICEF",
	"UNHCR":          "HCR",
	"ECOWAS":         "CEDEAO",
	"CEDEAO":         "CEDEAO",
}

// Organization letterhead names matched literally before any generic
// inviter pattern runs; organizational invitations are the dominant
// real-world case and must not be shadowed.
var KnownInviterOrgs = []string{
	"CHAMBRE DE COMMERCE ET D'INDUSTRIE DE COTE D'IVOIRE",
	"CHAMBRE DE COMMERCE DE COTE D'IVOIRE",
	"CONFEDERATION GENERALE DES ENTREPRISES DE COTE D'IVOIRE",
	"CGECI",
	"INSTITUT NATIONAL POLYTECHNIQUE HOUPHOUET-BOIGNY",
	"UNIVERSITE FELIX HOUPHOUET-BOIGNY",
	"CENTRE DE RECHERCHES OCEANOLOGIQUES",
	"AFRICAN DEVELOPMENT BANK",
	"BANQUE AFRICAINE DE DEVELOPPEMENT",
	"BAD",
}

// Phrases indicating a professional engagement; their presence classifies
// the inviter/invitee relationship as EMPLOYER even with no explicit
// relationship keyword.
var ProfessionalIndicators = []string{
	"EN SA QUALITE DE",
	"EN QUALITE DE",
	"FORMATEUR",
	"FORMATRICE",
	"CONSULTANT",
	"EXPERT TECHNIQUE",
	"MISSION PROFESSIONNELLE",
	"IN HIS CAPACITY AS",
	"IN HER CAPACITY AS",
	"AS A TRAINER",
	"AS A CONSULTANT",
}

// Relationship keyword table, checked after the professional indicators.
var Relationships = map[string][]string{
	"FAMILY":   {"FAMILLE", "FAMILY", "PARENT", "FRERE", "SOEUR", "ONCLE", "TANTE", "COUSIN", "BROTHER", "SISTER", "UNCLE", "AUNT"},
	"SPOUSE":   {"EPOUX", "EPOUSE", "SPOUSE", "WIFE", "HUSBAND", "MARI", "FEMME"},
	"FRIEND":   {"AMI", "FRIEND", "AMIE"},
	"BUSINESS": {"AFFAIRES", "BUSINESS", "PROFESSIONAL", "PROFESSIONNEL", "PARTNER", "PARTENAIRE"},
	"EMPLOYER": {"EMPLOYEUR", "EMPLOYER", "COMPANY", "SOCIETE", "ENTREPRISE"},
}

// RelationshipOrder fixes the table scan order.
var RelationshipOrder = []string{"SPOUSE", "FAMILY", "EMPLOYER", "BUSINESS", "FRIEND"}

// Visit purpose keyword table.
var VisitPurposes = map[string][]string{
	"TOURISM":  {"TOURISME", "TOURISM", "VACATION", "VACANCES", "HOLIDAY"},
	"FAMILY":   {"VISITE FAMILIALE", "FAMILY VISIT", "REUNIFICATION"},
	"BUSINESS": {"AFFAIRES", "BUSINESS", "MEETING", "REUNION", "CONFERENCE"},
	"MEDICAL":  {"MEDICAL", "SANTE", "HEALTH", "TREATMENT", "TRAITEMENT"},
	"STUDIES":  {"ETUDES", "STUDIES", "FORMATION", "TRAINING"},
	"CULTURAL": {"CULTUREL", "CULTURAL", "ARTISTIQUE", "ARTISTIC"},
}

// VisitPurposeOrder fixes the table scan order; the more specific purposes
// come before the generic business bucket.
var VisitPurposeOrder = []string{"FAMILY", "MEDICAL", "STUDIES", "CULTURAL", "TOURISM", "BUSINESS"}

// Residence permit categories with their label keywords.
var ResidenceTypes = map[string][]string{
	"WORK":       {"WORK PERMIT", "PERMIS DE TRAVAIL", "TRAVAIL", "EMPLOYMENT", "EMPLOI"},
	"STUDY":      {"STUDENT", "ETUDIANT", "STUDIES", "ETUDES", "ACADEMIC"},
	"FAMILY":     {"FAMILY", "FAMILLE", "DEPENDANT", "SPOUSE", "REGROUPEMENT"},
	"REFUGEE":    {"REFUGEE", "REFUGIE", "ASYLUM", "ASILE", "UNHCR", "HCR"},
	"PERMANENT":  {"PERMANENT", "INDEFINITE", "LONG TERM", "RESIDENT CARD"},
	"DIPLOMATIC": {"DIPLOMATIC", "DIPLOMATIQUE", "OFFICIAL", "MISSION"},
}

// ResidenceTypeOrder fixes the table scan order.
var ResidenceTypeOrder = []string{"WORK", "STUDY", "REFUGEE", "DIPLOMATIC", "PERMANENT", "FAMILY"}
