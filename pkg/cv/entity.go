package cv

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// EducationEntry is one education period.
type EducationEntry struct {
	From         Date   `json:"from"`
	To           Date   `json:"to"`
	Place        string `json:"place" validate:"omitempty,entry_text"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"omitempty,entry_text"`
}

// WorkEntry is one work-experience period.
type WorkEntry struct {
	From     Date   `json:"from"`
	To       Date   `json:"to"`
	Place    string `json:"place" validate:"omitempty,entry_text"`
	Position string `json:"position" validate:"omitempty,job_position"`
}

// CV is the replaceable CV sub-document of a user.
type CV struct {
	FirstName       string           `json:"firstName" validate:"omitempty,person_name"`
	LastName        string           `json:"lastName" validate:"omitempty,person_name"`
	DateOfBirth     Date             `json:"dateOfBirth"`
	JobPosition     string           `json:"jobPosition" validate:"omitempty,job_position"`
	Street          string           `json:"street" validate:"omitempty,street"`
	BuildingNumber  string           `json:"buildingNumber" validate:"omitempty,building_number"`
	ApartmentNumber string           `json:"apartmentNumber" validate:"omitempty,apartment_number"`
	PostalCode      string           `json:"postalCode" validate:"omitempty,postal_code"`
	City            string           `json:"city" validate:"omitempty,place_name"`
	Country         string           `json:"country" validate:"omitempty,place_name"`
	Education       []EducationEntry `json:"education" validate:"dive"`
	WorkExperience  []WorkEntry      `json:"workExperience" validate:"dive"`
	Skills          []string         `json:"skills"`
	Languages       []string         `json:"languages"`
	Interests       string           `json:"interests" validate:"max=500"`
}

// Normalize replaces nil sequences with empty ones so the document always
// carries arrays.
func (c CV) Normalize() CV {
	if c.Education == nil {
		c.Education = []EducationEntry{}
	}
	if c.WorkExperience == nil {
		c.WorkExperience = []WorkEntry{}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Languages == nil {
		c.Languages = []string{}
	}
	return c
}

// Profile is a user as seen by other users: identity plus CV, never the
// password hash.
type Profile struct {
	ID        uuid.UUID `json:"_id"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CV
}

// Repository is the persistence port for profiles and their CV documents.
type Repository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	ListProfiles(ctx context.Context, limit, offset int) ([]Profile, error)
	// ReplaceCV overwrites the whole CV document; it is not a merge.
	ReplaceCV(ctx context.Context, id uuid.UUID, c CV) (Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cleanup releases per-user state held outside the profile document.
type Cleanup interface {
	DiscardUser(ctx context.Context, userID uuid.UUID) error
}
