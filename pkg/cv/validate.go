package cv

import (
	"errors"
	"html"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var fieldPatterns = map[string]*regexp.Regexp{
	"person_name":      regexp.MustCompile(`^[a-zA-ZÀ-ÿ\- ']+$`),
	"job_position":     regexp.MustCompile(`^[a-zA-Z0-9\s\-()&,./']+$`),
	"street":           regexp.MustCompile(`^[a-zA-Z0-9\s\-',./()&]+$`),
	"building_number":  regexp.MustCompile(`^\d+(?:/\d+)?$`),
	"apartment_number": regexp.MustCompile(`^\d+$`),
	"postal_code":      regexp.MustCompile(`^\d{2}-\d{3}$`),
	"place_name":       regexp.MustCompile(`^[a-zA-Z\s\-']+$`),
	"entry_text":       regexp.MustCompile(`^[a-zA-Z0-9\s\-'&,.()]+$`),
}

var fieldMessages = map[string]string{
	"person_name":      "please enter a valid name",
	"job_position":     "please enter a valid job title",
	"street":           "please enter a valid street name",
	"building_number":  "please enter a valid building number (e.g., 68 or 67/3)",
	"apartment_number": "please enter a valid apartment number with digits only",
	"postal_code":      "please enter a valid postal code in the format XX-XXX",
	"place_name":       "please enter a valid name",
	"entry_text":       "contains unsupported characters",
	"max":              "is too long",
	"after_from":       "must not be before the start date",
	"not_future":       "must not be in the future",
}

// FieldError describes one rejected CV field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when a CV fails field validation.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator checks field patterns and strips markup from free text.
type Validator struct {
	v      *validator.Validate
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, re := range fieldPatterns {
		re := re
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}
	val := &Validator{v: v, policy: bluemonday.StrictPolicy(), now: time.Now}
	v.RegisterStructValidation(educationStructValidation, EducationEntry{})
	v.RegisterStructValidation(workStructValidation, WorkEntry{})
	v.RegisterStructValidation(val.cvStructValidation, CV{})
	return val
}

func educationStructValidation(sl validator.StructLevel) {
	e := sl.Current().Interface().(EducationEntry)
	if !e.From.IsZero() && !e.To.IsZero() && e.To.Before(e.From) {
		sl.ReportError(e.To, "to", "To", "after_from", "")
	}
}

func workStructValidation(sl validator.StructLevel) {
	w := sl.Current().Interface().(WorkEntry)
	if !w.From.IsZero() && !w.To.IsZero() && w.To.Before(w.From) {
		sl.ReportError(w.To, "to", "To", "after_from", "")
	}
}

func (val *Validator) cvStructValidation(sl validator.StructLevel) {
	c := sl.Current().Interface().(CV)
	if !c.DateOfBirth.IsZero() && c.DateOfBirth.Time().After(val.now()) {
		sl.ReportError(c.DateOfBirth, "dateOfBirth", "DateOfBirth", "not_future", "")
	}
}

// Sanitize strips markup from every free-text field and trims whitespace.
func (val *Validator) Sanitize(c CV) CV {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(val.policy.Sanitize(s)))
	}
	c.FirstName = clean(c.FirstName)
	c.LastName = clean(c.LastName)
	c.JobPosition = clean(c.JobPosition)
	c.Street = clean(c.Street)
	c.BuildingNumber = clean(c.BuildingNumber)
	c.ApartmentNumber = clean(c.ApartmentNumber)
	c.PostalCode = clean(c.PostalCode)
	c.City = clean(c.City)
	c.Country = clean(c.Country)
	c.Interests = clean(c.Interests)

	education := make([]EducationEntry, len(c.Education))
	for i, e := range c.Education {
		e.Place = clean(e.Place)
		e.FieldOfStudy = clean(e.FieldOfStudy)
		education[i] = e
	}
	c.Education = education

	work := make([]WorkEntry, len(c.WorkExperience))
	for i, w := range c.WorkExperience {
		w.Place = clean(w.Place)
		w.Position = clean(w.Position)
		work[i] = w
	}
	c.WorkExperience = work

	c.Skills = cleanAll(c.Skills, clean)
	c.Languages = cleanAll(c.Languages, clean)
	return c
}

func cleanAll(in []string, clean func(string) string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = clean(s)
	}
	return out
}

// Validate reports every invalid field as ValidationErrors.
func (val *Validator) Validate(c CV) error {
	err := val.v.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		out = append(out, FieldError{Field: fieldPath(fe.Namespace()), Message: msg})
	}
	return out
}

// fieldPath drops the root struct name: "CV.education[0].to" -> "education[0].to".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
