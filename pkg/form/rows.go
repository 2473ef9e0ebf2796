package form

// EducationRow is one education row of the form.
type EducationRow struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Place string `json:"place"`
	Field string `json:"field"`
}

// WorkRow is one work row of the form.
type WorkRow struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Place    string `json:"place"`
	Position string `json:"position"`
}

// EducationRows returns the education section as rows.
func (s State) EducationRows() ([]EducationRow, error) {
	n, err := s.rowCount(SectionEducation)
	if err != nil {
		return nil, err
	}
	rows := make([]EducationRow, n)
	for i := range rows {
		rows[i] = EducationRow{
			From:  s.EducationFrom[i],
			To:    s.EducationTo[i],
			Place: s.EducationPlace[i],
			Field: s.EducationField[i],
		}
	}
	return rows, nil
}

// SetEducationRows rebuilds the education columns from rows. No rows yields
// one blank row.
func (s State) SetEducationRows(rows []EducationRow) State {
	if len(rows) == 0 {
		rows = []EducationRow{{}}
	}
	out := s
	out.EducationFrom = make([]string, len(rows))
	out.EducationTo = make([]string, len(rows))
	out.EducationPlace = make([]string, len(rows))
	out.EducationField = make([]string, len(rows))
	for i, r := range rows {
		out.EducationFrom[i] = r.From
		out.EducationTo[i] = r.To
		out.EducationPlace[i] = r.Place
		out.EducationField[i] = r.Field
	}
	return out
}

// WorkRows returns the work section as rows.
func (s State) WorkRows() ([]WorkRow, error) {
	n, err := s.rowCount(SectionWork)
	if err != nil {
		return nil, err
	}
	rows := make([]WorkRow, n)
	for i := range rows {
		rows[i] = WorkRow{
			From:     s.WorkFrom[i],
			To:       s.WorkTo[i],
			Place:    s.WorkPlace[i],
			Position: s.WorkPosition[i],
		}
	}
	return rows, nil
}

// SetWorkRows rebuilds the work columns from rows. No rows yields one blank
// row.
func (s State) SetWorkRows(rows []WorkRow) State {
	if len(rows) == 0 {
		rows = []WorkRow{{}}
	}
	out := s
	out.WorkFrom = make([]string, len(rows))
	out.WorkTo = make([]string, len(rows))
	out.WorkPlace = make([]string, len(rows))
	out.WorkPosition = make([]string, len(rows))
	for i, r := range rows {
		out.WorkFrom[i] = r.From
		out.WorkTo[i] = r.To
		out.WorkPlace[i] = r.Place
		out.WorkPosition[i] = r.Position
	}
	return out
}
