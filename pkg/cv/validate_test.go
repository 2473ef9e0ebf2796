package cv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCV() CV {
	return CV{
		FirstName:       "John",
		LastName:        "Doe",
		DateOfBirth:     MustDate("1990-01-01"),
		JobPosition:     "Software Developer",
		Street:          "Main St",
		BuildingNumber:  "67/3",
		ApartmentNumber: "301",
		PostalCode:      "12-345",
		City:            "New York",
		Country:         "USA",
		Education: []EducationEntry{
			{From: MustDate("2010-09-01"), To: MustDate("2014-06-01"), Place: "MIT", FieldOfStudy: "CS"},
		},
		WorkExperience: []WorkEntry{
			{From: MustDate("2015-07-01"), To: MustDate("2020-12-31"), Place: "Tech Company", Position: "Developer"},
		},
		Skills:    []string{"Go"},
		Languages: []string{"English"},
		Interests: "Reading, Traveling",
	}
}

func TestValidateAcceptsCompleteCV(t *testing.T) {
	require.NoError(t, NewValidator().Validate(validCV()))
}

func TestValidateAcceptsEmptyCV(t *testing.T) {
	require.NoError(t, NewValidator().Validate(CV{}.Normalize()))
}

func TestValidateReportsFieldPaths(t *testing.T) {
	c := validCV()
	c.PostalCode = "12345"
	c.BuildingNumber = "12a"
	c.Education[0].To = MustDate("2009-01-01")

	err := NewValidator().Validate(c)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field] = fe.Message
	}
	assert.Contains(t, fields, "postalCode")
	assert.Contains(t, fields, "buildingNumber")
	assert.Equal(t, "must not be before the start date", fields["education[0].to"])
}

func TestValidateRejectsFutureBirthDate(t *testing.T) {
	v := NewValidator()
	v.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	c := validCV()
	c.DateOfBirth = MustDate("2030-01-01")

	var verrs ValidationErrors
	require.ErrorAs(t, v.Validate(c), &verrs)
	assert.Equal(t, "dateOfBirth", verrs[0].Field)
}

func TestValidateInterestsLength(t *testing.T) {
	c := validCV()
	long := make([]rune, 501)
	for i := range long {
		long[i] = 'a'
	}
	c.Interests = string(long)
	assert.Error(t, NewValidator().Validate(c))
}

func TestSanitizeStripsMarkup(t *testing.T) {
	c := validCV()
	c.Interests = "<b>Reading</b> & <script>alert(1)</script>travel"
	c.Skills = []string{" <i>Go</i> "}
	c.WorkExperience[0].Position = "R&D <em>lead</em>"

	got := NewValidator().Sanitize(c)

	assert.Equal(t, "Reading & travel", got.Interests)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Equal(t, "R&D lead", got.WorkExperience[0].Position)
	assert.Equal(t, "<b>Reading</b> & <script>alert(1)</script>travel", c.Interests, "input is not modified")
}
