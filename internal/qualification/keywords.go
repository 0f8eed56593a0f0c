package qualification

// highValueKeywords signal a genuine medical or occupational exposure story.
var highValueKeywords = []string{
	// disease and medical
	"mesothelioma",
	"asbestos",
	"diagnosed",
	"cancer",
	"pleural",
	"peritoneal",
	"malignant",
	"tumor",
	"oncology",
	// occupational exposure
	"shipyard",
	"navy",
	"construction",
	"insulation",
	"pipe fitter",
	"boiler",
	"brake",
	"clutch",
	"tile",
	"cement",
	"power plant",
	"steel mill",
	"refinement",
	"demolition",
}

// mediumValueKeywords signal legal intent, a family connection or symptoms.
var mediumValueKeywords = []string{
	// legal intent
	"lawyer",
	"attorney",
	"legal help",
	"lawsuit",
	"compensation",
	// relationship and time
	"my father",
	"my husband",
	"my wife",
	"family member",
	"worked at",
	"1960s",
	"1970s",
	"1980s",
	"1990s",
	"years ago",
	"decades ago",
	// outcome and symptoms
	"deceased",
	"died",
	"death",
	"breathing problems",
	"lung problems",
	"chest pain",
	"shortness of breath",
	"cough",
}

// redFlagKeywords signal academic, test or promotional submissions.
var redFlagKeywords = []string{
	"just curious",
	"school project",
	"research paper",
	"student",
	"homework",
	"assignment",
	"test",
	"spam",
	"advertisement",
}

// workplaceKeywords is the subset of high-value keywords naming a high-risk
// workplace. A diagnosis plus one of these earns the correlation bonus.
var workplaceKeywords = setOf(
	"shipyard",
	"navy",
	"construction",
	"insulation",
	"pipe fitter",
	"boiler",
	"power plant",
	"steel mill",
)

// HighValueKeywords returns a copy of the high-value vocabulary.
func HighValueKeywords() []string { return append([]string(nil), highValueKeywords...) }

// MediumValueKeywords returns a copy of the medium-value vocabulary.
func MediumValueKeywords() []string { return append([]string(nil), mediumValueKeywords...) }

// RedFlagKeywords returns a copy of the red-flag vocabulary.
func RedFlagKeywords() []string { return append([]string(nil), redFlagKeywords...) }
