package export

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/artem13815/cvbuilder/pkg/cv"
)

const viewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
  body { margin: 0; font-family: Helvetica, Arial, sans-serif; color: #222; background: #fff; }
  #cvContainer { padding: 32px 40px; }
  h1 { margin: 0; font-size: 28px; }
  h2 { font-size: 18px; border-bottom: 1px solid #ccc; padding-bottom: 4px; margin-top: 24px; }
  .muted { color: #666; }
  .row { display: flex; justify-content: space-between; margin: 6px 0; }
  ul { margin: 4px 0; padding-left: 20px; }
</style>
</head>
<body>
<div id="cvContainer">
  <h1>{{.Name}}</h1>
  <p class="muted">{{.JobPosition}}</p>
  <p>Email: {{.Email}}<br>Gender: {{.Gender}}<br>Date of birth: {{.DateOfBirth}}</p>
  {{if .Address}}<p>{{.Address}}</p>{{end}}

  <h2>Work experience</h2>
  {{range .Work}}<div class="row"><span>{{.Title}}</span><span class="muted">{{.Period}}</span></div>
  {{else}}<p class="muted">No data available</p>{{end}}

  <h2>Education</h2>
  {{range .Education}}<div class="row"><span>{{.Title}}</span><span class="muted">{{.Period}}</span></div>
  {{else}}<p class="muted">No data available</p>{{end}}

  <h2>Skills</h2>
  {{if .Skills}}<ul>{{range .Skills}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="muted">No data available</p>{{end}}

  <h2>Languages</h2>
  {{if .Languages}}<ul>{{range .Languages}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="muted">No data available</p>{{end}}

  <h2>Interests</h2>
  <p>{{.Interests}}</p>
</div>
</body>
</html>`

var view = template.Must(template.New("cv").Parse(viewTemplate))

type viewEntry struct {
	Title  string
	Period string
}

type viewData struct {
	Name        string
	JobPosition string
	Email       string
	Gender      string
	DateOfBirth string
	Address     string
	Work        []viewEntry
	Education   []viewEntry
	Skills      []string
	Languages   []string
	Interests   string
}

const displayDate = "January 2, 2006"

// RenderView renders the printable profile page. The CV lives in the
// element matched by ContainerSelector.
func RenderView(p cv.Profile) (string, error) {
	c := p.CV.Normalize()
	data := viewData{
		Name:        orDash(strings.TrimSpace(c.FirstName + " " + c.LastName)),
		JobPosition: orDash(c.JobPosition),
		Email:       orDash(p.Email),
		Gender:      orDash(p.Gender),
		DateOfBirth: orDash(formatDate(c.DateOfBirth)),
		Address:     address(c),
		Skills:      nonBlank(c.Skills),
		Languages:   nonBlank(c.Languages),
		Interests:   orDash(c.Interests),
	}
	for _, w := range c.WorkExperience {
		data.Work = append(data.Work, viewEntry{Title: joinAt(w.Position, w.Place), Period: period(w.From, w.To)})
	}
	for _, e := range c.Education {
		data.Education = append(data.Education, viewEntry{Title: joinAt(e.FieldOfStudy, e.Place), Period: period(e.From, e.To)})
	}

	var buf bytes.Buffer
	if err := view.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatDate(d cv.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(displayDate)
}

func period(from, to cv.Date) string {
	return orDash(formatDate(from)) + " - " + orDash(formatDate(to))
}

func joinAt(what, where string) string {
	switch {
	case what != "" && where != "":
		return what + " at " + where
	case what != "":
		return what
	default:
		return orDash(where)
	}
}

func address(c cv.CV) string {
	street := strings.TrimSpace(c.Street + " " + c.BuildingNumber)
	if c.ApartmentNumber != "" {
		street += "/" + c.ApartmentNumber
	}
	city := strings.TrimSpace(c.PostalCode + " " + c.City)
	var parts []string
	for _, s := range []string{street, city, c.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
