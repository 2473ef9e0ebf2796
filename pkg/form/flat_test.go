package form

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/cv"
)

func TestFromCVEmptySectionsGetPlaceholderRow(t *testing.T) {
	s := FromCV(cv.CV{Education: []cv.EducationEntry{}, WorkExperience: []cv.WorkEntry{}})

	assert.Equal(t, []string{""}, s.EducationFrom)
	assert.Equal(t, []string{""}, s.EducationTo)
	assert.Equal(t, []string{""}, s.EducationPlace)
	assert.Equal(t, []string{""}, s.EducationField)
	assert.Equal(t, []string{""}, s.WorkFrom)
	assert.Equal(t, []string{""}, s.WorkTo)
	assert.Equal(t, []string{""}, s.WorkPlace)
	assert.Equal(t, []string{""}, s.WorkPosition)
}

func TestFromCVAbsentSectionsGetPlaceholderRow(t *testing.T) {
	s := FromCV(cv.CV{})

	n, err := s.Len(SectionEducation)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.Len(SectionWork)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotNil(t, s.Skills)
	assert.Empty(t, s.Skills)
}

func TestFromCVTruncatesTimeOfDay(t *testing.T) {
	from, err := cv.ParseDate("2015-03-01T17:45:12.250Z")
	require.NoError(t, err)

	s := FromCV(cv.CV{
		DateOfBirth:    cv.MustDate("1990-05-17"),
		WorkExperience: []cv.WorkEntry{{From: from, Place: "Acme", Position: "Engineer"}},
	})

	assert.Equal(t, "1990-05-17", s.DateOfBirth)
	assert.Equal(t, []string{"2015-03-01"}, s.WorkFrom)
	assert.Equal(t, []string{""}, s.WorkTo)
	assert.Equal(t, []string{"Engineer"}, s.WorkPosition)
}

func TestSubmitEducationRowPersistsStartOfDayUTC(t *testing.T) {
	s := New()
	s.EducationFrom = []string{"2010-09-01"}
	s.EducationTo = []string{"2014-06-01"}
	s.EducationPlace = []string{"MIT"}
	s.EducationField = []string{"CS"}

	c, err := s.ToCV()
	require.NoError(t, err)

	raw, err := json.Marshal(c.Education)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"from":"2010-09-01T00:00:00.000Z","to":"2014-06-01T00:00:00.000Z","place":"MIT","fieldOfStudy":"CS"}]`,
		string(raw))
	assert.Empty(t, c.WorkExperience, "blank placeholder row is not persisted")
}

func TestToCVPassesScalarsAndListsThrough(t *testing.T) {
	s := New()
	s.FirstName = "Ada"
	s.DateOfBirth = "1990-05-17"
	s.Interests = "chess"
	s.Skills = []string{"Go", ""}
	s.Languages = []string{}

	c, err := s.ToCV()
	require.NoError(t, err)

	assert.Equal(t, "Ada", c.FirstName)
	assert.Equal(t, "chess", c.Interests)
	assert.Equal(t, "1990-05-17T00:00:00.000Z", c.DateOfBirth.String())
	assert.Equal(t, []string{"Go", ""}, c.Skills)
	assert.Equal(t, []string{}, c.Languages)
}

func TestToCVFailsFastOnMisalignedSection(t *testing.T) {
	s := New()
	s.EducationFrom = []string{"2010-09-01", "2015-09-01"}
	s.EducationPlace = []string{"MIT"}

	_, err := s.ToCV()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "education", verr.Field)
	assert.ErrorIs(t, err, ErrMisaligned)
}

func TestToCVRejectsEmptySection(t *testing.T) {
	s := New()
	s.WorkFrom, s.WorkTo, s.WorkPlace, s.WorkPosition = []string{}, []string{}, []string{}, []string{}

	_, err := s.ToCV()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "work", verr.Field)
	assert.ErrorIs(t, err, ErrMisaligned)
}

func TestToCVReportsBadDateCell(t *testing.T) {
	s := New()
	s, err := s.AppendEntry(SectionEducation)
	require.NoError(t, err)
	s.EducationPlace = []string{"MIT", "ETH"}
	s.EducationFrom = []string{"2010-09-01", "01/09/2015"}

	_, err = s.ToCV()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "educationFrom[1]", verr.Field)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestToCVKeepsCalendarDayOfTimestampCells(t *testing.T) {
	s := New()
	s.DateOfBirth = "1990-05-17T23:30:00-05:00"
	s.EducationFrom = []string{"2010-09-01T23:30:00-05:00"}
	s.EducationTo = []string{"2014-06-01T00:15:00+02:00"}
	s.EducationPlace = []string{"MIT"}

	c, err := s.ToCV()
	require.NoError(t, err)

	assert.Equal(t, "1990-05-17T00:00:00.000Z", c.DateOfBirth.String())
	require.Len(t, c.Education, 1)
	assert.Equal(t, "2010-09-01T00:00:00.000Z", c.Education[0].From.String())
	assert.Equal(t, "2014-06-01T00:00:00.000Z", c.Education[0].To.String())
}

func TestToCVKeepsBlankRowsBesideFilledOnes(t *testing.T) {
	record := cv.CV{Education: []cv.EducationEntry{{}, {Place: "MIT"}}}.Normalize()

	got, err := FromCV(record).ToCV()
	require.NoError(t, err)

	require.Len(t, got.Education, 2)
	assert.Equal(t, cv.EducationEntry{}, got.Education[0])
	assert.Equal(t, "MIT", got.Education[1].Place)
	assert.Empty(t, got.WorkExperience, "single placeholder row is not persisted")
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 50; iter++ {
		record := randomCV(rng)
		t.Run(fmt.Sprintf("edu=%d work=%d", len(record.Education), len(record.WorkExperience)), func(t *testing.T) {
			got, err := FromCV(record).ToCV()
			require.NoError(t, err)
			assert.Equal(t, record, got)
		})
	}
}

func TestRoundTripIsIdempotentOnTimestamps(t *testing.T) {
	withTime, err := cv.ParseDate("2019-11-30T23:59:59.999Z")
	require.NoError(t, err)
	record := cv.CV{Education: []cv.EducationEntry{{From: withTime, Place: "MIT"}}}.Normalize()

	once, err := FromCV(record).ToCV()
	require.NoError(t, err)
	twice, err := FromCV(once).ToCV()
	require.NoError(t, err)

	assert.Equal(t, withTime.Truncate(), once.Education[0].From)
	assert.Equal(t, once, twice)
}

func TestCloneDoesNotShareColumns(t *testing.T) {
	s := New()
	c := s.Clone()
	c.EducationPlace[0] = "changed"
	c.Skills[0] = "changed"

	assert.Equal(t, []string{""}, s.EducationPlace)
	assert.Equal(t, []string{""}, s.Skills)
}

func randomCV(rng *rand.Rand) cv.CV {
	places := []string{"MIT", "ETH Zurich", "Acme Corp", "Initech", "Globex"}
	date := func() cv.Date {
		if rng.Intn(5) == 0 {
			return cv.Date{}
		}
		return cv.MustDate(fmt.Sprintf("%04d-%02d-%02d", 1995+rng.Intn(30), 1+rng.Intn(12), 1+rng.Intn(28)))
	}

	c := cv.CV{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: date(),
		City:        "London",
		Skills:      []string{"Go", "SQL"}[:rng.Intn(3)],
	}
	for i, n := 0, rng.Intn(5); i < n; i++ {
		c.Education = append(c.Education, cv.EducationEntry{
			From: date(), To: date(), Place: places[rng.Intn(len(places))], FieldOfStudy: "CS",
		})
	}
	for i, n := 0, rng.Intn(5); i < n; i++ {
		c.WorkExperience = append(c.WorkExperience, cv.WorkEntry{
			From: date(), To: date(), Place: places[rng.Intn(len(places))], Position: "Engineer",
		})
	}
	return c.Normalize()
}
