package leads

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks structural limits on the request. Content quality is the
// qualification engine's job, so a request that passes here can still be
// rejected as a lead.
func (r *ContactRequest) Validate() error {
	if r == nil {
		return &ValidationError{Fields: []string{"body"}}
	}
	r.stripNUL()
	if strings.TrimSpace(r.Name) == "" {
		r.Name = ""
	}
	if strings.TrimSpace(r.Email) == "" {
		r.Email = ""
	}

	err := requestValidator.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// stripNUL removes NUL bytes, which Postgres text columns refuse. The lead
// is still stored and scored on what remains.
func (r *ContactRequest) stripNUL() {
	for _, field := range []*string{
		&r.Name, &r.Email, &r.Phone, &r.InquiryType, &r.Message, &r.Exposure,
		&r.Diagnosis, &r.PathologyReport, &r.DiagnosisTimeline,
		&r.FacilityID, &r.FacilitySlug, &r.State, &r.City, &r.PageURL, &r.Source,
	} {
		if strings.IndexByte(*field, 0) >= 0 {
			*field = strings.ReplaceAll(*field, "\x00", "")
		}
	}
}
