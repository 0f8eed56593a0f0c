// Package qualification scores inbound contact-form submissions for lead
// quality and fraud. Every function in this package is pure: no I/O, no
// clock reads, no shared mutable state. Results for identical input are
// identical, and the package is safe to call from any number of goroutines.
package qualification

// Level is the qualification tier assigned to a lead.
type Level string

const (
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
	LevelRejected Level = "rejected"
)

// Levels lists every tier from best to worst.
var Levels = []Level{LevelHigh, LevelMedium, LevelLow, LevelRejected}

// Valid reports whether l is one of the four known tiers.
func (l Level) Valid() bool {
	switch l {
	case LevelHigh, LevelMedium, LevelLow, LevelRejected:
		return true
	}
	return false
}

// Inquiry types offered by the contact form. Other values are accepted and
// earn no inquiry points.
const (
	InquiryLegalReferral    = "legal-referral"
	InquiryExposureQuestion = "exposure-question"
	InquiryGeneral          = "general"
)

// Diagnosis values from the contact form's controlled vocabulary.
const (
	DiagnosisMesothelioma = "mesothelioma"
	DiagnosisLungCancer   = "lung-cancer"
	DiagnosisAsbestosis   = "asbestosis"
)

// Diagnosis timeline values.
const (
	TimelineWithinTwoYears   = "within_2_years"
	TimelineMoreThanTwoYears = "more_than_2_years"
)

// PathologyReportYes is the only pathology answer that earns points.
const PathologyReportYes = "yes"

// Submission is a single contact-form submission. Optional fields use the
// empty string for "not provided".
type Submission struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	InquiryType       string `json:"inquiryType"`
	Message           string `json:"message"`
	Exposure          string `json:"exposure,omitempty"`
	Diagnosis         string `json:"diagnosis,omitempty"`
	PathologyReport   string `json:"pathologyReport,omitempty"`
	DiagnosisTimeline string `json:"diagnosisTimeline,omitempty"`
}

// ContactQuality holds the per-field validity of the submitter's contact
// details. Each flag depends on exactly one input field.
type ContactQuality struct {
	EmailValid   bool `json:"emailValid"`
	PhoneValid   bool `json:"phoneValid"`
	NameComplete bool `json:"nameComplete"`
}

// AllValid reports whether every contact check passed.
func (c ContactQuality) AllValid() bool {
	return c.EmailValid && c.PhoneValid && c.NameComplete
}

// ContentAnalysis describes the free-text portion of a submission. Keyword
// slices never contain duplicates and follow the order of the keyword tables,
// not the order the words appear in the message.
type ContentAnalysis struct {
	HighValueKeywords       []string `json:"highValueKeywords"`
	MediumValueKeywords     []string `json:"mediumValueKeywords"`
	RedFlags                []string `json:"redFlags"`
	WordCount               int      `json:"wordCount"`
	ContainsSpecificDetails bool     `json:"containsSpecificDetails"`
}

// Result is the outcome of QualifyLead.
type Result struct {
	QualityScore         int             `json:"qualityScore"`
	QualificationLevel   Level           `json:"qualificationLevel"`
	QualificationReasons []string        `json:"qualificationReasons"`
	ContactQuality       ContactQuality  `json:"contactQuality"`
	ContentAnalysis      ContentAnalysis `json:"contentAnalysis"`
}

// Verdict explains a validator decision. Reason names the first rule that
// failed and is empty when Valid is true.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func pass() Verdict { return Verdict{Valid: true} }

func fail(reason string) Verdict { return Verdict{Reason: reason} }
