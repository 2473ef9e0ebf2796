package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/artem13815/cvbuilder/pkg/cv"
)

// Section names a repeatable CV section.
type Section string

const (
	SectionEducation Section = "education"
	SectionWork      Section = "work"
)

// List names a single flat list of strings.
type List string

const (
	ListSkills    List = "skills"
	ListLanguages List = "languages"
)

// Column names, as they appear on the wire.
const (
	ColEducationFrom  = "educationFrom"
	ColEducationTo    = "educationTo"
	ColEducationPlace = "educationPlace"
	ColEducationField = "educationField"
	ColWorkFrom       = "workFrom"
	ColWorkTo         = "workTo"
	ColWorkPlace      = "workPlace"
	ColWorkPosition   = "workPosition"
)

var sectionColumns = map[Section][]string{
	SectionEducation: {ColEducationFrom, ColEducationTo, ColEducationPlace, ColEducationField},
	SectionWork:      {ColWorkFrom, ColWorkTo, ColWorkPlace, ColWorkPosition},
}

// State is the flat form: scalar fields plus one column per entry attribute.
// Columns of one section share an index space and must have equal length,
// at least one.
type State struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DateOfBirth     string `json:"dateOfBirth"`
	JobPosition     string `json:"jobPosition"`
	Street          string `json:"street"`
	BuildingNumber  string `json:"buildingNumber"`
	ApartmentNumber string `json:"apartmentNumber"`
	PostalCode      string `json:"postalCode"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Interests       string `json:"interests"`

	EducationFrom  []string `json:"educationFrom"`
	EducationTo    []string `json:"educationTo"`
	EducationPlace []string `json:"educationPlace"`
	EducationField []string `json:"educationField"`

	WorkFrom     []string `json:"workFrom"`
	WorkTo       []string `json:"workTo"`
	WorkPlace    []string `json:"workPlace"`
	WorkPosition []string `json:"workPosition"`

	Skills    []string `json:"skills"`
	Languages []string `json:"languages"`
}

// New returns an empty form with one blank row per section and one blank
// item per list.
func New() State {
	s := State{}
	for _, sec := range Sections() {
		for _, col := range sectionColumns[sec] {
			*s.column(col) = []string{""}
		}
	}
	s.Skills = []string{""}
	s.Languages = []string{""}
	return s
}

// Sections lists the repeatable sections in display order.
func Sections() []Section { return []Section{SectionEducation, SectionWork} }

// Columns returns the column names of a section.
func Columns(sec Section) ([]string, error) {
	cols, ok := sectionColumns[sec]
	if !ok {
		return nil, invalid(string(sec), ErrUnknownSection, "unknown section %q", sec)
	}
	return append([]string(nil), cols...), nil
}

// FromCV converts a persisted CV into form state. Empty sections become a
// single blank row; dates keep only their calendar part.
func FromCV(c cv.CV) State {
	s := State{
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		DateOfBirth:     c.DateOfBirth.DateOnly(),
		JobPosition:     c.JobPosition,
		Street:          c.Street,
		BuildingNumber:  c.BuildingNumber,
		ApartmentNumber: c.ApartmentNumber,
		PostalCode:      c.PostalCode,
		City:            c.City,
		Country:         c.Country,
		Interests:       c.Interests,
		Skills:          copyStrings(c.Skills),
		Languages:       copyStrings(c.Languages),
	}

	n := max(len(c.Education), 1)
	s.EducationFrom = make([]string, n)
	s.EducationTo = make([]string, n)
	s.EducationPlace = make([]string, n)
	s.EducationField = make([]string, n)
	for i, e := range c.Education {
		s.EducationFrom[i] = e.From.DateOnly()
		s.EducationTo[i] = e.To.DateOnly()
		s.EducationPlace[i] = e.Place
		s.EducationField[i] = e.FieldOfStudy
	}

	n = max(len(c.WorkExperience), 1)
	s.WorkFrom = make([]string, n)
	s.WorkTo = make([]string, n)
	s.WorkPlace = make([]string, n)
	s.WorkPosition = make([]string, n)
	for i, w := range c.WorkExperience {
		s.WorkFrom[i] = w.From.DateOnly()
		s.WorkTo[i] = w.To.DateOnly()
		s.WorkPlace[i] = w.Place
		s.WorkPosition[i] = w.Position
	}
	return s
}

// ToCV converts form state back into a full CV payload. Every section is
// checked before anything is converted; misaligned or empty sections fail
// with a *ValidationError wrapping ErrMisaligned. A section holding only one
// row whose cells are all blank is stored empty; blank rows next to filled
// ones are kept.
func (s State) ToCV() (cv.CV, error) {
	if err := s.CheckAligned(); err != nil {
		return cv.CV{}, err
	}

	dob, err := parseFormDate(s.DateOfBirth)
	if err != nil {
		return cv.CV{}, invalid("dateOfBirth", ErrInvalidDate, "%v", err)
	}

	out := cv.CV{
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		DateOfBirth:     dob,
		JobPosition:     s.JobPosition,
		Street:          s.Street,
		BuildingNumber:  s.BuildingNumber,
		ApartmentNumber: s.ApartmentNumber,
		PostalCode:      s.PostalCode,
		City:            s.City,
		Country:         s.Country,
		Interests:       s.Interests,
		Education:       []cv.EducationEntry{},
		WorkExperience:  []cv.WorkEntry{},
		Skills:          copyStrings(s.Skills),
		Languages:       copyStrings(s.Languages),
	}

	for i := range s.EducationFrom {
		if len(s.EducationFrom) == 1 && blank(s.EducationFrom[i], s.EducationTo[i], s.EducationPlace[i], s.EducationField[i]) {
			continue
		}
		from, err := parseCell(ColEducationFrom, i, s.EducationFrom[i])
		if err != nil {
			return cv.CV{}, err
		}
		to, err := parseCell(ColEducationTo, i, s.EducationTo[i])
		if err != nil {
			return cv.CV{}, err
		}
		out.Education = append(out.Education, cv.EducationEntry{
			From:         from,
			To:           to,
			Place:        s.EducationPlace[i],
			FieldOfStudy: s.EducationField[i],
		})
	}

	for i := range s.WorkFrom {
		if len(s.WorkFrom) == 1 && blank(s.WorkFrom[i], s.WorkTo[i], s.WorkPlace[i], s.WorkPosition[i]) {
			continue
		}
		from, err := parseCell(ColWorkFrom, i, s.WorkFrom[i])
		if err != nil {
			return cv.CV{}, err
		}
		to, err := parseCell(ColWorkTo, i, s.WorkTo[i])
		if err != nil {
			return cv.CV{}, err
		}
		out.WorkExperience = append(out.WorkExperience, cv.WorkEntry{
			From:     from,
			To:       to,
			Place:    s.WorkPlace[i],
			Position: s.WorkPosition[i],
		})
	}
	return out, nil
}

// CheckAligned reports the first section whose columns differ in length or
// are empty.
func (s State) CheckAligned() error {
	for _, sec := range Sections() {
		if _, err := s.rowCount(sec); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of rows in a section.
func (s State) Len(sec Section) (int, error) { return s.rowCount(sec) }

func (s State) rowCount(sec Section) (int, error) {
	cols, ok := sectionColumns[sec]
	if !ok {
		return 0, invalid(string(sec), ErrUnknownSection, "unknown section %q", sec)
	}
	n := len(*s.column(cols[0]))
	for _, col := range cols[1:] {
		if got := len(*s.column(col)); got != n {
			return 0, invalid(string(sec), ErrMisaligned, "%s has %d rows, %s has %d", cols[0], n, col, got)
		}
	}
	if n == 0 {
		return 0, invalid(string(sec), ErrMisaligned, "section has no rows")
	}
	return n, nil
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := s
	for _, sec := range Sections() {
		for _, col := range sectionColumns[sec] {
			*c.column(col) = copyStrings(*s.column(col))
		}
	}
	c.Skills = copyStrings(s.Skills)
	c.Languages = copyStrings(s.Languages)
	return c
}

// column returns a pointer to the named column field, or nil.
func (s *State) column(name string) *[]string {
	switch name {
	case ColEducationFrom:
		return &s.EducationFrom
	case ColEducationTo:
		return &s.EducationTo
	case ColEducationPlace:
		return &s.EducationPlace
	case ColEducationField:
		return &s.EducationField
	case ColWorkFrom:
		return &s.WorkFrom
	case ColWorkTo:
		return &s.WorkTo
	case ColWorkPlace:
		return &s.WorkPlace
	case ColWorkPosition:
		return &s.WorkPosition
	}
	return nil
}

func (s *State) list(l List) *[]string {
	switch l {
	case ListSkills:
		return &s.Skills
	case ListLanguages:
		return &s.Languages
	}
	return nil
}

func parseCell(col string, i int, v string) (cv.Date, error) {
	d, err := parseFormDate(v)
	if err != nil {
		return cv.Date{}, invalid(indexed(col, i), ErrInvalidDate, "%v", err)
	}
	return d, nil
}

// parseFormDate reads a form date cell. A full timestamp keeps only the
// calendar day as written, so the stored value is always midnight UTC.
func parseFormDate(v string) (cv.Date, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return cv.Date{}, nil
	}
	if t, err := time.Parse(cv.DateLayout, v); err == nil {
		return cv.NewDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		y, m, d := t.Date()
		return cv.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), nil
	}
	return cv.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", v)
}

func indexed(col string, i int) string {
	return col + "[" + strconv.Itoa(i) + "]"
}

func blank(cells ...string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
