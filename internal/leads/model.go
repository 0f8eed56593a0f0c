package leads

import (
	"strings"
	"time"

	"github.com/wolfman30/asbestos-leads/internal/qualification"
)

// ExportStatus tracks delivery of a lead to the sheets export.
type ExportStatus string

const (
	ExportPending  ExportStatus = "pending"
	ExportExported ExportStatus = "exported"
	ExportFailed   ExportStatus = "failed"
	ExportSkipped  ExportStatus = "skipped"
)

// Lead is a qualified contact-form submission.
type Lead struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	PhoneE164         string `json:"phoneE164,omitempty"`
	InquiryType       string `json:"inquiryType"`
	Message           string `json:"message"`
	Exposure          string `json:"exposure,omitempty"`
	Diagnosis         string `json:"diagnosis,omitempty"`
	PathologyReport   string `json:"pathologyReport,omitempty"`
	DiagnosisTimeline string `json:"diagnosisTimeline,omitempty"`

	FacilityID   string `json:"facilityId,omitempty"`
	FacilitySlug string `json:"facilitySlug,omitempty"`
	State        string `json:"state,omitempty"`
	City         string `json:"city,omitempty"`
	PageURL      string `json:"pageUrl,omitempty"`
	Source       string `json:"source,omitempty"`

	QualityScore         int                           `json:"qualityScore"`
	QualificationLevel   qualification.Level           `json:"qualificationLevel"`
	QualificationReasons []string                      `json:"qualificationReasons"`
	ContactQuality       qualification.ContactQuality  `json:"contactQuality"`
	ContentAnalysis      qualification.ContentAnalysis `json:"contentAnalysis"`

	ExportStatus ExportStatus `json:"exportStatus"`
	ExportedAt   *time.Time   `json:"exportedAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// ContactRequest is the body of the public contact form.
type ContactRequest struct {
	Name              string `json:"name" validate:"required,max=120"`
	Email             string `json:"email" validate:"required,max=254"`
	Phone             string `json:"phone" validate:"max=32"`
	InquiryType       string `json:"inquiryType" validate:"max=64"`
	Message           string `json:"message" validate:"max=5000"`
	Exposure          string `json:"exposure,omitempty" validate:"max=2000"`
	Diagnosis         string `json:"diagnosis,omitempty" validate:"max=64"`
	PathologyReport   string `json:"pathologyReport,omitempty" validate:"max=16"`
	DiagnosisTimeline string `json:"diagnosisTimeline,omitempty" validate:"max=32"`

	FacilityID   string `json:"facilityId,omitempty" validate:"max=64"`
	FacilitySlug string `json:"facilitySlug,omitempty" validate:"max=160"`
	State        string `json:"state,omitempty" validate:"max=64"`
	City         string `json:"city,omitempty" validate:"max=120"`
	PageURL      string `json:"pageUrl,omitempty" validate:"omitempty,url,max=2048"`
	Source       string `json:"source,omitempty" validate:"max=64"`
}

// Submission returns the fields the qualification engine scores.
func (r *ContactRequest) Submission() qualification.Submission {
	return qualification.Submission{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		InquiryType:       r.InquiryType,
		Message:           r.Message,
		Exposure:          r.Exposure,
		Diagnosis:         r.Diagnosis,
		PathologyReport:   r.PathologyReport,
		DiagnosisTimeline: r.DiagnosisTimeline,
	}
}

// newLead builds an unsaved lead from a request and its qualification.
func newLead(req *ContactRequest, result qualification.Result) *Lead {
	return &Lead{
		Name:                 strings.TrimSpace(req.Name),
		Email:                strings.TrimSpace(req.Email),
		Phone:                strings.TrimSpace(req.Phone),
		PhoneE164:            NormalizePhoneE164(req.Phone),
		InquiryType:          req.InquiryType,
		Message:              req.Message,
		Exposure:             req.Exposure,
		Diagnosis:            req.Diagnosis,
		PathologyReport:      req.PathologyReport,
		DiagnosisTimeline:    req.DiagnosisTimeline,
		FacilityID:           req.FacilityID,
		FacilitySlug:         req.FacilitySlug,
		State:                req.State,
		City:                 req.City,
		PageURL:              req.PageURL,
		Source:               req.Source,
		QualityScore:         result.QualityScore,
		QualificationLevel:   result.QualificationLevel,
		QualificationReasons: result.QualificationReasons,
		ContactQuality:       result.ContactQuality,
		ContentAnalysis:      result.ContentAnalysis,
	}
}
