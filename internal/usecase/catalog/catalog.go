package usecase_catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/humanbelnik/cinetally/internal/model"
	"github.com/humanbelnik/cinetally/internal/service/rating"
)

var (
	ErrValidationFailed = errors.New("entry validation failed")
	ErrUnauthenticated  = errors.New("no authenticated user")
	ErrEntryNotFound    = errors.New("no such entry")
	ErrRemoteWrite      = errors.New("remote write rejected")
)

//go:generate mockery --name=Store --output=./mocks/store --filename=store.go
type Store interface {
	Write(ctx context.Context, draft model.EntryDraft, createdBy uuid.UUID) (string, error)
	Append(ctx context.Context, entryID string, raterID uuid.UUID, ev model.RatingEvent) error
	Remove(ctx context.Context, entryID string, requesterID uuid.UUID) error
}

//go:generate mockery --name=CollectionReader --output=./mocks/reader --filename=reader.go
type CollectionReader interface {
	Entry(id string) (model.Entry, bool)
}

// Usecase mediates user-initiated mutations. It validates locally, then
// delegates persistence to the store; the synced collection is never touched
// directly, so a rejected mutation leaves the current view unchanged.
type Usecase struct {
	store  Store
	reader CollectionReader
}

func New(
	store Store,
	reader CollectionReader,
) *Usecase {
	return &Usecase{
		store:  store,
		reader: reader,
	}
}

// CreateEntry validates the draft and writes it. The store assigns the ID.
func (u *Usecase) CreateEntry(ctx context.Context, draft model.EntryDraft, creator model.User) (string, error) {
	if !creator.Known() {
		return "", ErrUnauthenticated
	}
	if err := validateDraft(draft); err != nil {
		return "", err
	}

	id, err := u.store.Write(ctx, draft, creator.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}

	return id, nil
}

// DeleteEntry issues the delete. Ownership is the store's to enforce; this
// layer only requires an authenticated requester.
func (u *Usecase) DeleteEntry(ctx context.Context, entryID string, requester model.User) error {
	if !requester.Known() {
		return ErrUnauthenticated
	}

	if err := u.store.Remove(ctx, entryID, requester.ID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}

	return nil
}

// SubmitRating validates the vote against the synced entry and appends it.
// Out-of-range values and self-ratings are rejected before any network
// effect. Repeated submissions from one rater layer naturally: only the
// newest event counts toward the consensus score.
func (u *Usecase) SubmitRating(ctx context.Context, entryID string, rater model.User, value int) error {
	if !rater.Known() {
		return ErrUnauthenticated
	}

	entry, ok := u.reader.Entry(entryID)
	if !ok {
		return ErrEntryNotFound
	}

	ev, err := rating.NewEvent(entry, rater.ID, value)
	if err != nil {
		return err
	}

	if err := u.store.Append(ctx, entryID, rater.ID, ev); err != nil {
		return fmt.Errorf("%w: %w", ErrRemoteWrite, err)
	}

	return nil
}

func validateDraft(d model.EntryDraft) error {
	switch {
	case d.Title == "":
		return fmt.Errorf("%w: title is required", ErrValidationFailed)
	case !d.Kind.Valid():
		return fmt.Errorf("%w: unknown kind %q", ErrValidationFailed, d.Kind)
	case !d.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrValidationFailed, d.Category)
	case d.Year <= 0:
		return fmt.Errorf("%w: release year is required", ErrValidationFailed)
	case d.BaseRating < 1 || d.BaseRating > 10:
		return fmt.Errorf("%w: base rating %d out of [1,10]", ErrValidationFailed, d.BaseRating)
	case d.Language == "":
		return fmt.Errorf("%w: language is required", ErrValidationFailed)
	case d.AgeRating == "":
		return fmt.Errorf("%w: age rating is required", ErrValidationFailed)
	}

	return nil
}
