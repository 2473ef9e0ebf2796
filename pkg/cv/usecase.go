package cv

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/artem13815/cvbuilder/pkg/nlp"
)

// ListFilter narrows the users list.
type ListFilter struct {
	// Skill keeps only profiles listing the skill or one of its aliases.
	Skill  string
	Limit  int
	Offset int
}

// UseCase covers reading, replacing and deleting the current user's profile.
type UseCase interface {
	Details(ctx context.Context, userID uuid.UUID) (Profile, error)
	GetCV(ctx context.Context, userID uuid.UUID) (CV, error)
	ReplaceCV(ctx context.Context, userID uuid.UUID, c CV) (Profile, error)
	List(ctx context.Context, f ListFilter) ([]Profile, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	validate *Validator
	cleanups []Cleanup
}

// NewService returns the default profile use case. Cleanups run after an
// account has been deleted.
func NewService(repo Repository, validate *Validator, cleanups ...Cleanup) UseCase {
	if validate == nil {
		validate = NewValidator()
	}
	return &service{repo: repo, validate: validate, cleanups: cleanups}
}

func (s *service) Details(ctx context.Context, userID uuid.UUID) (Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	p.CV = p.CV.Normalize()
	return p, nil
}

func (s *service) GetCV(ctx context.Context, userID uuid.UUID) (CV, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return CV{}, err
	}
	return p.CV.Normalize(), nil
}

func (s *service) ReplaceCV(ctx context.Context, userID uuid.UUID, c CV) (Profile, error) {
	c = s.validate.Sanitize(c.Normalize())
	if err := s.validate.Validate(c); err != nil {
		return Profile{}, err
	}
	p, err := s.repo.ReplaceCV(ctx, userID, c)
	if err != nil {
		return Profile{}, err
	}
	log.Info().Str("user_id", userID.String()).
		Int("education", len(c.Education)).
		Int("work", len(c.WorkExperience)).
		Msg("cv replaced")
	return p, nil
}

const listPageSize = 200

func (s *service) List(ctx context.Context, f ListFilter) ([]Profile, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	skill := strings.TrimSpace(f.Skill)
	if skill == "" {
		items, err := s.repo.ListProfiles(ctx, f.Limit, f.Offset)
		if err != nil {
			return nil, err
		}
		return normalizeAll(items), nil
	}

	variants := nlp.SkillVariants(skill)
	out := make([]Profile, 0, f.Limit)
	skipped := 0
	for offset := 0; ; offset += listPageSize {
		page, err := s.repo.ListProfiles(ctx, listPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			if !hasSkill(p.Skills, variants) {
				continue
			}
			if skipped < f.Offset {
				skipped++
				continue
			}
			out = append(out, p)
			if len(out) == f.Limit {
				return normalizeAll(out), nil
			}
		}
		if len(page) < listPageSize {
			return normalizeAll(out), nil
		}
	}
}

func hasSkill(skills []string, variants []string) bool {
	for _, sk := range skills {
		norm := nlp.NormalizeSkill(sk)
		for _, v := range variants {
			if nlp.ContainsPhrase(norm, v) {
				return true
			}
		}
	}
	return false
}

func normalizeAll(items []Profile) []Profile {
	for i := range items {
		items[i].CV = items[i].CV.Normalize()
	}
	return items
}

func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	for _, c := range s.cleanups {
		if err := c.DiscardUser(ctx, userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("account cleanup failed")
		}
	}
	log.Info().Str("user_id", userID.String()).Msg("account deleted")
	return nil
}
