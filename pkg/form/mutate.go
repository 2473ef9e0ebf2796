package form

import "strings"

// Mutations return a new State and leave the receiver untouched: every
// column they write to is copied first.

// AppendEntry adds one blank row to every column of a section.
func (s State) AppendEntry(sec Section) (State, error) {
	if _, err := s.rowCount(sec); err != nil {
		return s, err
	}
	out := s
	for _, col := range sectionColumns[sec] {
		ref := out.column(col)
		*ref = append(copyStrings(*ref), "")
	}
	return out, nil
}

// RemoveEntry drops row index from every column of a section. The last
// remaining row cannot be removed.
func (s State) RemoveEntry(sec Section, index int) (State, error) {
	n, err := s.rowCount(sec)
	if err != nil {
		return s, err
	}
	if index < 0 || index >= n {
		return s, invalid(string(sec), ErrIndexOutOfRange, "row %d does not exist (rows: %d)", index, n)
	}
	if n == 1 {
		return s, invalid(string(sec), ErrLastRow, "cannot remove the only row")
	}
	out := s
	for _, col := range sectionColumns[sec] {
		ref := out.column(col)
		next := make([]string, 0, n-1)
		next = append(next, (*ref)[:index]...)
		next = append(next, (*ref)[index+1:]...)
		*ref = next
	}
	return out, nil
}

// RemoveLastEntry drops the final row of a section.
func (s State) RemoveLastEntry(sec Section) (State, error) {
	n, err := s.rowCount(sec)
	if err != nil {
		return s, err
	}
	return s.RemoveEntry(sec, n-1)
}

// UpdateField sets one cell. The column must belong to the section.
func (s State) UpdateField(sec Section, column string, index int, value string) (State, error) {
	n, err := s.rowCount(sec)
	if err != nil {
		return s, err
	}
	if !hasColumn(sec, column) {
		return s, invalid(column, ErrUnknownColumn, "%q is not a column of %s", column, sec)
	}
	if index < 0 || index >= n {
		return s, invalid(indexed(column, index), ErrIndexOutOfRange, "row %d does not exist (rows: %d)", index, n)
	}
	out := s
	ref := out.column(column)
	next := copyStrings(*ref)
	next[index] = value
	*ref = next
	return out, nil
}

func hasColumn(sec Section, column string) bool {
	for _, c := range sectionColumns[sec] {
		if c == column {
			return true
		}
	}
	return false
}

// AppendItem appends value to a list.
func (s State) AppendItem(l List, value string) (State, error) {
	out := s
	ref := out.list(l)
	if ref == nil {
		return s, invalid(string(l), ErrUnknownList, "unknown list %q", l)
	}
	*ref = append(copyStrings(*ref), value)
	return out, nil
}

// RemoveItemAt removes one list item. Lists may become empty.
func (s State) RemoveItemAt(l List, index int) (State, error) {
	out := s
	ref := out.list(l)
	if ref == nil {
		return s, invalid(string(l), ErrUnknownList, "unknown list %q", l)
	}
	items := *ref
	if index < 0 || index >= len(items) {
		return s, invalid(indexed(string(l), index), ErrIndexOutOfRange, "item %d does not exist (items: %d)", index, len(items))
	}
	next := make([]string, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)
	*ref = next
	return out, nil
}

// UpdateItemAt replaces one list item.
func (s State) UpdateItemAt(l List, index int, value string) (State, error) {
	out := s
	ref := out.list(l)
	if ref == nil {
		return s, invalid(string(l), ErrUnknownList, "unknown list %q", l)
	}
	if index < 0 || index >= len(*ref) {
		return s, invalid(indexed(string(l), index), ErrIndexOutOfRange, "item %d does not exist (items: %d)", index, len(*ref))
	}
	next := copyStrings(*ref)
	next[index] = value
	*ref = next
	return out, nil
}

// SetFields assigns scalar fields by their wire name. Unknown names are
// rejected and nothing is changed.
func (s State) SetFields(values map[string]string) (State, error) {
	out := s
	for name, v := range values {
		ref := out.scalar(name)
		if ref == nil {
			return s, invalid(name, ErrUnknownField, "unknown field %q", name)
		}
		*ref = v
	}
	return out, nil
}

func (s *State) scalar(name string) *string {
	switch strings.TrimSpace(name) {
	case "firstName":
		return &s.FirstName
	case "lastName":
		return &s.LastName
	case "dateOfBirth":
		return &s.DateOfBirth
	case "jobPosition":
		return &s.JobPosition
	case "street":
		return &s.Street
	case "buildingNumber":
		return &s.BuildingNumber
	case "apartmentNumber":
		return &s.ApartmentNumber
	case "postalCode":
		return &s.PostalCode
	case "city":
		return &s.City
	case "country":
		return &s.Country
	case "interests":
		return &s.Interests
	}
	return nil
}
