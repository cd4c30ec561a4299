package usecase_catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/humanbelnik/cinetally/internal/model"
	"github.com/humanbelnik/cinetally/internal/service/rating"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	reader_mocks "github.com/humanbelnik/cinetally/internal/usecase/catalog/mocks/reader"
	store_mocks "github.com/humanbelnik/cinetally/internal/usecase/catalog/mocks/store"
)

type UsecaseCatalogUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	store   *store_mocks.Store
	reader  *reader_mocks.CollectionReader
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	store := store_mocks.NewStore(t)
	reader := reader_mocks.NewCollectionReader(t)

	return &resources{
		usecase: New(store, reader),
		store:   store,
		reader:  reader,
		ctx:     context.Background(),
	}
}

/*
'Object Mother' helpers.
*/
func validDraft() model.EntryDraft {
	return model.EntryDraft{
		Title:      "Interstellar",
		Kind:       model.KindMovie,
		Year:       2014,
		BaseRating: 9,
		Category:   model.CategoryMustWatch,
		Language:   "English",
		AgeRating:  "PG-13",
	}
}

func validUser() model.User {
	return model.User{
		ID:          uuid.New(),
		DisplayName: "maria",
	}
}

func validEntry(createdBy uuid.UUID) model.Entry {
	return model.Entry{
		ID:         uuid.New().String(),
		Title:      "Interstellar",
		Kind:       model.KindMovie,
		Year:       2014,
		BaseRating: 9,
		Category:   model.CategoryMustWatch,
		Language:   "English",
		AgeRating:  "PG-13",
		CreatedBy:  createdBy,
	}
}

func (s *UsecaseCatalogUnitSuite) TestCreateEntry(t provider.T) {
	t.Run("Should write a valid draft and return the store-assigned id", func(t provider.T) {
		r := initResources(t)
		draft := validDraft()
		creator := validUser()
		wantID := uuid.New().String()

		r.store.On("Write", r.ctx, draft, creator.ID).
			Return(wantID, nil).Once()

		id, err := r.usecase.CreateEntry(r.ctx, draft, creator)

		assert.NoError(t, err)
		assert.Equal(t, wantID, id)
	})

	t.Run("Should reject an unauthenticated creator before any write", func(t provider.T) {
		r := initResources(t)

		_, err := r.usecase.CreateEntry(r.ctx, validDraft(), model.User{})

		assert.ErrorIs(t, err, ErrUnauthenticated)
		r.store.AssertNotCalled(t, "Write")
	})

	t.Run("Should reject invalid drafts before any write", func(t provider.T) {
		r := initResources(t)
		creator := validUser()

		mutations := []func(*model.EntryDraft){
			func(d *model.EntryDraft) { d.Title = "" },
			func(d *model.EntryDraft) { d.Kind = "documentary" },
			func(d *model.EntryDraft) { d.Category = "meh" },
			func(d *model.EntryDraft) { d.Year = 0 },
			func(d *model.EntryDraft) { d.BaseRating = 0 },
			func(d *model.EntryDraft) { d.BaseRating = 11 },
			func(d *model.EntryDraft) { d.Language = "" },
			func(d *model.EntryDraft) { d.AgeRating = "" },
		}

		for _, mutate := range mutations {
			draft := validDraft()
			mutate(&draft)

			_, err := r.usecase.CreateEntry(r.ctx, draft, creator)
			assert.ErrorIs(t, err, ErrValidationFailed)
		}
		r.store.AssertNotCalled(t, "Write")
	})

	t.Run("Should wrap a store failure as a remote write error", func(t provider.T) {
		r := initResources(t)
		draft := validDraft()
		creator := validUser()

		r.store.On("Write", r.ctx, draft, creator.ID).
			Return("", errors.New("connection reset")).Once()

		_, err := r.usecase.CreateEntry(r.ctx, draft, creator)

		assert.ErrorIs(t, err, ErrRemoteWrite)
	})
}

func (s *UsecaseCatalogUnitSuite) TestDeleteEntry(t provider.T) {
	t.Run("Should issue the delete for an authenticated requester", func(t provider.T) {
		r := initResources(t)
		requester := validUser()
		entryID := uuid.New().String()

		r.store.On("Remove", r.ctx, entryID, requester.ID).
			Return(nil).Once()

		err := r.usecase.DeleteEntry(r.ctx, entryID, requester)

		assert.NoError(t, err)
	})

	t.Run("Should reject an unauthenticated requester before any delete", func(t provider.T) {
		r := initResources(t)

		err := r.usecase.DeleteEntry(r.ctx, uuid.New().String(), model.User{})

		assert.ErrorIs(t, err, ErrUnauthenticated)
		r.store.AssertNotCalled(t, "Remove")
	})

	t.Run("Should pass through a missing entry", func(t provider.T) {
		r := initResources(t)
		requester := validUser()
		entryID := uuid.New().String()

		r.store.On("Remove", r.ctx, entryID, requester.ID).
			Return(ErrEntryNotFound).Once()

		err := r.usecase.DeleteEntry(r.ctx, entryID, requester)

		assert.ErrorIs(t, err, ErrEntryNotFound)
		assert.NotErrorIs(t, err, ErrRemoteWrite)
	})

	t.Run("Should wrap a store failure as a remote write error", func(t provider.T) {
		r := initResources(t)
		requester := validUser()
		entryID := uuid.New().String()

		r.store.On("Remove", r.ctx, entryID, requester.ID).
			Return(errors.New("timeout")).Once()

		err := r.usecase.DeleteEntry(r.ctx, entryID, requester)

		assert.ErrorIs(t, err, ErrRemoteWrite)
	})
}

func (s *UsecaseCatalogUnitSuite) TestSubmitRating(t provider.T) {
	t.Run("Should append a valid rating event", func(t provider.T) {
		r := initResources(t)
		rater := validUser()
		entry := validEntry(uuid.New())

		r.reader.On("Entry", entry.ID).Return(entry, true).Once()
		r.store.On("Append", r.ctx, entry.ID, rater.ID, mock.MatchedBy(func(ev model.RatingEvent) bool {
			return ev.Value == 8 && !ev.Timestamp.IsZero()
		})).Return(nil).Once()

		err := r.usecase.SubmitRating(r.ctx, entry.ID, rater, 8)

		assert.NoError(t, err)
	})

	t.Run("Should reject an unauthenticated rater before any lookup", func(t provider.T) {
		r := initResources(t)

		err := r.usecase.SubmitRating(r.ctx, uuid.New().String(), model.User{}, 8)

		assert.ErrorIs(t, err, ErrUnauthenticated)
		r.reader.AssertNotCalled(t, "Entry")
		r.store.AssertNotCalled(t, "Append")
	})

	t.Run("Should fail on an unknown entry", func(t provider.T) {
		r := initResources(t)
		rater := validUser()
		entryID := uuid.New().String()

		r.reader.On("Entry", entryID).Return(model.Entry{}, false).Once()

		err := r.usecase.SubmitRating(r.ctx, entryID, rater, 8)

		assert.ErrorIs(t, err, ErrEntryNotFound)
		r.store.AssertNotCalled(t, "Append")
	})

	t.Run("Should reject self-rating with no store write", func(t provider.T) {
		r := initResources(t)
		creator := validUser()
		entry := validEntry(creator.ID)

		r.reader.On("Entry", entry.ID).Return(entry, true).Once()

		err := r.usecase.SubmitRating(r.ctx, entry.ID, creator, 9)

		assert.ErrorIs(t, err, rating.ErrSelfRating)
		r.store.AssertNotCalled(t, "Append")
	})

	t.Run("Should reject out-of-range values with no store write", func(t provider.T) {
		r := initResources(t)
		rater := validUser()
		entry := validEntry(uuid.New())

		r.reader.On("Entry", entry.ID).Return(entry, true).Twice()

		for _, v := range []int{5, 11} {
			err := r.usecase.SubmitRating(r.ctx, entry.ID, rater, v)
			assert.ErrorIs(t, err, rating.ErrValidationFailed)
		}
		r.store.AssertNotCalled(t, "Append")
	})

	t.Run("Should wrap a store failure as a remote write error", func(t provider.T) {
		r := initResources(t)
		rater := validUser()
		entry := validEntry(uuid.New())

		r.reader.On("Entry", entry.ID).Return(entry, true).Once()
		r.store.On("Append", r.ctx, entry.ID, rater.ID, mock.AnythingOfType("model.RatingEvent")).
			Return(errors.New("write rejected")).Once()

		err := r.usecase.SubmitRating(r.ctx, entry.ID, rater, 8)

		assert.ErrorIs(t, err, ErrRemoteWrite)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseCatalogUnitSuite))
}
