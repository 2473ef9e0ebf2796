package form

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/artem13815/cvbuilder/pkg/cv"
)

// CVService is the part of the profile use case the form needs.
type CVService interface {
	GetCV(ctx context.Context, userID uuid.UUID) (cv.CV, error)
	ReplaceCV(ctx context.Context, userID uuid.UUID, c cv.CV) (cv.Profile, error)
}

// DraftStore keeps one form draft per user. Get returns ErrDraftNotFound
// when the user has no draft.
type DraftStore interface {
	Get(ctx context.Context, userID uuid.UUID) (State, error)
	Put(ctx context.Context, userID uuid.UUID, s State) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UseCase loads and submits the CV form and manages server-held drafts.
type UseCase interface {
	Load(ctx context.Context, userID uuid.UUID) (State, error)
	Submit(ctx context.Context, userID uuid.UUID, s State) (cv.Profile, error)

	OpenDraft(ctx context.Context, userID uuid.UUID) (State, error)
	GetDraft(ctx context.Context, userID uuid.UUID) (State, error)
	DiscardDraft(ctx context.Context, userID uuid.UUID) error
	SubmitDraft(ctx context.Context, userID uuid.UUID) (cv.Profile, error)

	AppendEntry(ctx context.Context, userID uuid.UUID, sec Section) (State, error)
	RemoveEntry(ctx context.Context, userID uuid.UUID, sec Section, index int) (State, error)
	RemoveLastEntry(ctx context.Context, userID uuid.UUID, sec Section) (State, error)
	UpdateField(ctx context.Context, userID uuid.UUID, sec Section, column string, index int, value string) (State, error)
	SetFields(ctx context.Context, userID uuid.UUID, values map[string]string) (State, error)
	AppendItem(ctx context.Context, userID uuid.UUID, l List, value string) (State, error)
	RemoveItemAt(ctx context.Context, userID uuid.UUID, l List, index int) (State, error)
	UpdateItemAt(ctx context.Context, userID uuid.UUID, l List, index int, value string) (State, error)
}

type service struct {
	cvs    CVService
	drafts DraftStore
}

func NewService(cvs CVService, drafts DraftStore) UseCase {
	return &service{cvs: cvs, drafts: drafts}
}

func (s *service) Load(ctx context.Context, userID uuid.UUID) (State, error) {
	c, err := s.cvs.GetCV(ctx, userID)
	if err != nil {
		return State{}, err
	}
	return FromCV(c), nil
}

// Submit replaces the whole CV with the converted form. Omitted fields end
// up empty.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, st State) (cv.Profile, error) {
	c, err := st.ToCV()
	if err != nil {
		return cv.Profile{}, err
	}
	return s.cvs.ReplaceCV(ctx, userID, c)
}

// OpenDraft starts a draft from the persisted CV, replacing any previous
// draft.
func (s *service) OpenDraft(ctx context.Context, userID uuid.UUID) (State, error) {
	st, err := s.Load(ctx, userID)
	if errors.Is(err, cv.ErrNotFound) {
		st, err = New(), nil
	}
	if err != nil {
		return State{}, err
	}
	if err := s.drafts.Put(ctx, userID, st); err != nil {
		return State{}, err
	}
	log.Debug().Str("user_id", userID.String()).Msg("draft opened")
	return st, nil
}

func (s *service) GetDraft(ctx context.Context, userID uuid.UUID) (State, error) {
	return s.drafts.Get(ctx, userID)
}

func (s *service) DiscardDraft(ctx context.Context, userID uuid.UUID) error {
	return s.drafts.Delete(ctx, userID)
}

// SubmitDraft submits the current draft and drops it once the CV is saved.
func (s *service) SubmitDraft(ctx context.Context, userID uuid.UUID) (cv.Profile, error) {
	st, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return cv.Profile{}, err
	}
	p, err := s.Submit(ctx, userID, st)
	if err != nil {
		return cv.Profile{}, err
	}
	if err := s.drafts.Delete(ctx, userID); err != nil && !errors.Is(err, ErrDraftNotFound) {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("submitted draft not discarded")
	}
	return p, nil
}

func (s *service) AppendEntry(ctx context.Context, userID uuid.UUID, sec Section) (State, error) {
	return s.mutate(ctx, userID, func(st State) (State, error) { return st.AppendEntry(sec) })
}

func (s *service) RemoveEntry(ctx context.Context, userID uuid.UUID, sec Section, index int) (State, error) {
	return s.mutate(ctx, userID, func(st State) (State, error) { return st.RemoveEntry(sec, index) })
}

func (s *service) RemoveLastEntry(ctx context.Context, userID uuid.UUID, sec Section) (State, error) {
	return s.mutate(ctx, userID, func(st State) (State, error) { return st.RemoveLastEntry(sec) })
}

func (s *service) UpdateField(ctx context.Context, userID uuid.UUID, sec Section, column string, index int, value string) (State, error) {
	return s.mutate(ctx, userID, func(st State) (State, error) { return st.UpdateField(sec, column, index, value) })
}

func (s *service) SetFields(ctx context.Context, userID uuid.UUID, values map[string]string) (State, error) {
	return s.mutate(ctx, userID, func(st State) (State, error) { return st.SetFields(values) })
}

func (s *service) AppendItem(ctx context.Context, userID uuid.UUID, l List, value string) (State, error) {
	return s.mutate(ctx, userID, func(st State) (State, error) { return st.AppendItem(l, value) })
}

func (s *service) RemoveItemAt(ctx context.Context, userID uuid.UUID, l List, index int) (State, error) {
	return s.mutate(ctx, userID, func(st State) (State, error) { return st.RemoveItemAt(l, index) })
}

func (s *service) UpdateItemAt(ctx context.Context, userID uuid.UUID, l List, index int, value string) (State, error) {
	return s.mutate(ctx, userID, func(st State) (State, error) { return st.UpdateItemAt(l, index, value) })
}

func (s *service) mutate(ctx context.Context, userID uuid.UUID, op func(State) (State, error)) (State, error) {
	st, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return State{}, err
	}
	next, err := op(st)
	if err != nil {
		return st, err
	}
	if err := s.drafts.Put(ctx, userID, next); err != nil {
		return State{}, err
	}
	return next, nil
}
