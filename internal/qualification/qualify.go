package qualification

import (
	"fmt"
	"strings"
)

// Point values for each scoring step.
const (
	pointsMesothelioma = 25
	pointsLungCancer   = 20
	pointsAsbestosis   = 15

	pointsPathologyReport = 5

	pointsRecentDiagnosis = 15
	pointsOlderDiagnosis  = 5

	pointsWorkplaceCorrelation = 10

	pointsValidEmail   = 15
	pointsValidPhone   = 15
	pointsCompleteName = 10

	pointsLegalReferral    = 20
	pointsExposureQuestion = 15
	pointsGeneralInquiry   = 5

	pointsPerHighKeyword   = 8
	maxHighKeywordPoints   = 24
	pointsPerMediumKeyword = 3
	maxMediumKeywordPoints = 12

	pointsSpecificDetails = 8

	detailedWordCount = 50
	pointsDetailed    = 4
	shortWordCount    = 10
	penaltyShort      = 10

	penaltyPerRedFlag = 15
)

// Tier thresholds, inclusive.
const (
	thresholdHigh   = 80
	thresholdMedium = 60
	thresholdLow    = 40
)

// Substrings that force rejection when they appear in contact details.
var (
	spamEmailMarkers = []string{"jane.doe", "john.doe", "test@", "fake@", "support@", "admin@"}
	spamNameMarkers  = []string{"jane doe", "john doe", "test user"}
)

// LevelForScore maps a score to a tier before any overrides apply.
func LevelForScore(score int) Level {
	switch {
	case score >= thresholdHigh:
		return LevelHigh
	case score >= thresholdMedium:
		return LevelMedium
	case score >= thresholdLow:
		return LevelLow
	default:
		return LevelRejected
	}
}

// scorer accumulates points and the ordered trace of decisions.
type scorer struct {
	score   int
	reasons []string
}

func (s *scorer) add(points int, reason string) {
	s.score += points
	s.reasons = append(s.reasons, reason)
}

func (s *scorer) note(reason string) {
	s.reasons = append(s.reasons, reason)
}

// QualifyLead scores a submission and assigns its tier. It never fails:
// malformed or hostile input simply scores low or is rejected.
func QualifyLead(sub Submission) Result {
	contact := ContactQuality{
		EmailValid:   ValidateEmail(sub.Email),
		PhoneValid:   ValidatePhone(sub.Phone),
		NameComplete: ValidateName(sub.Name),
	}
	content := AnalyzeMessageContent(sub.Message, sub.Exposure, sub.Diagnosis)

	s := &scorer{reasons: []string{}}
	scoreMedical(s, sub, content)
	scoreContact(s, contact)
	scoreInquiry(s, sub.InquiryType)
	scoreContent(s, content)
	if s.score < 0 {
		s.score = 0
	}

	level := applyOverrides(s, LevelForScore(s.score), sub, contact)

	return Result{
		QualityScore:         s.score,
		QualificationLevel:   level,
		QualificationReasons: s.reasons,
		ContactQuality:       contact,
		ContentAnalysis:      content,
	}
}

func scoreMedical(s *scorer, sub Submission, content ContentAnalysis) {
	switch sub.Diagnosis {
	case DiagnosisMesothelioma:
		s.add(pointsMesothelioma, "Mesothelioma diagnosis (highest value case)")
	case DiagnosisLungCancer:
		s.add(pointsLungCancer, "Lung cancer diagnosis (high value case)")
	case DiagnosisAsbestosis:
		s.add(pointsAsbestosis, "Asbestosis diagnosis (moderate value case)")
	}

	if sub.PathologyReport == PathologyReportYes {
		s.add(pointsPathologyReport, "Pathology report available")
	}

	switch sub.DiagnosisTimeline {
	case TimelineWithinTwoYears:
		s.add(pointsRecentDiagnosis, "Diagnosed within the last 2 years")
	case TimelineMoreThanTwoYears:
		s.add(pointsOlderDiagnosis, "Diagnosed more than 2 years ago")
	}

	if sub.Diagnosis != "" && mentionsWorkplace(content.HighValueKeywords) {
		s.add(pointsWorkplaceCorrelation, "Diagnosis correlates with high-risk workplace exposure")
	}
}

func mentionsWorkplace(keywords []string) bool {
	for _, kw := range keywords {
		if _, ok := workplaceKeywords[kw]; ok {
			return true
		}
	}
	return false
}

func scoreContact(s *scorer, contact ContactQuality) {
	if contact.EmailValid {
		s.add(pointsValidEmail, "Valid email address")
	} else {
		s.note("Invalid or suspicious email address")
	}
	if contact.PhoneValid {
		s.add(pointsValidPhone, "Valid phone number")
	} else {
		s.note("Invalid or suspicious phone number")
	}
	if contact.NameComplete {
		s.add(pointsCompleteName, "Complete name provided")
	} else {
		s.note("Incomplete or suspicious name")
	}
}

func scoreInquiry(s *scorer, inquiryType string) {
	switch inquiryType {
	case InquiryLegalReferral:
		s.add(pointsLegalReferral, "Legal referral inquiry")
	case InquiryExposureQuestion:
		s.add(pointsExposureQuestion, "Exposure question inquiry")
	case InquiryGeneral:
		s.add(pointsGeneralInquiry, "General inquiry")
	}
}

func scoreContent(s *scorer, content ContentAnalysis) {
	if n := len(content.HighValueKeywords); n > 0 {
		points := min(n*pointsPerHighKeyword, maxHighKeywordPoints)
		s.add(points, fmt.Sprintf("High-value keywords: %s", strings.Join(content.HighValueKeywords, ", ")))
	}
	if n := len(content.MediumValueKeywords); n > 0 {
		points := min(n*pointsPerMediumKeyword, maxMediumKeywordPoints)
		s.add(points, fmt.Sprintf("Medium-value keywords: %s", strings.Join(content.MediumValueKeywords, ", ")))
	}

	if content.ContainsSpecificDetails {
		s.add(pointsSpecificDetails, "Message contains specific details")
	}

	switch {
	case content.WordCount >= detailedWordCount:
		s.add(pointsDetailed, "Detailed message")
	case content.WordCount < shortWordCount:
		s.add(-penaltyShort, "Message too short")
	}

	if n := len(content.RedFlags); n > 0 {
		s.add(-n*penaltyPerRedFlag, fmt.Sprintf("Red flags: %s", strings.Join(content.RedFlags, ", ")))
	}
}

// applyOverrides adjusts the score-derived tier for contact quality and
// known spam patterns.
//
// The downgrade step can never decide the outcome: the rejection step below
// also fires whenever a contact flag is false. Both are kept so the trace
// records each decision.
func applyOverrides(s *scorer, level Level, sub Submission, contact ContactQuality) Level {
	if !contact.AllValid() {
		if level == LevelHigh {
			level = LevelMedium
			s.note("Downgraded to medium: contact information incomplete")
		}
		if level == LevelMedium && (!contact.EmailValid || !contact.PhoneValid) {
			level = LevelLow
			s.note("Downgraded to low: email or phone invalid")
		}
	}

	if hasSpamPattern(sub) {
		s.note("Rejected: known spam pattern in contact details")
		return LevelRejected
	}
	if !contact.AllValid() {
		s.note("Rejected: contact information failed validation")
		return LevelRejected
	}
	return level
}

func hasSpamPattern(sub Submission) bool {
	if strings.Contains(digitsOnly(sub.Phone), "555") {
		return true
	}
	if containsAny(strings.ToLower(sub.Email), spamEmailMarkers) {
		return true
	}
	return containsAny(strings.ToLower(sub.Name), spamNameMarkers)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
