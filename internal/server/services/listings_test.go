package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceCents(t *testing.T) {
	ok := map[string]int64{
		"25":     2500,
		"25.5":   2550,
		"25.50":  2550,
		" 0.99 ": 99,
		".5":     50,
		"0":      0,
	}
	for in, want := range ok {
		got, err := ParsePriceCents(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	for _, in := range []string{"", ".", "abc", "-1", "+1", "1.234", "1.", "1.-5", "1,50", "99999999999999999999"} {
		_, err := ParsePriceCents(in)
		assert.ErrorIs(t, err, common.ErrorValidation, "input %q", in)
	}
}

func TestListing_Create(t *testing.T) {
	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	s := NewListingService(nil, rm, blobs, logging.Nop())

	l, err := s.Create(context.Background(), "u1", NewListing{
		Title: " Denim jacket ", Price: "40", Size: "M",
		Image: Upload{ContentType: "image/jpeg", Data: []byte("jpg")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Denim jacket", l.Title)
	assert.Equal(t, int64(4000), l.PriceCents)
	assert.Contains(t, l.StorageKey, "listings/u1/")
	assert.Contains(t, blobs.objects, l.StorageKey)
}

func TestListing_CreateWithoutImage(t *testing.T) {
	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	s := NewListingService(nil, rm, blobs, logging.Nop())

	l, err := s.Create(context.Background(), "u1", NewListing{Title: "Scarf", Price: "5"})
	require.NoError(t, err)
	assert.Empty(t, l.ImageURL)
	assert.Empty(t, blobs.objects)
}

func TestListing_CreateValidation(t *testing.T) {
	s := NewListingService(nil, newFakeRepoManager(), newFakeBlobs(), logging.Nop())

	_, err := s.Create(context.Background(), "u1", NewListing{Price: "5"})
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Create(context.Background(), "u1", NewListing{Title: "x", Price: "free"})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestListing_CreateCleansUpBlob(t *testing.T) {
	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	rm.listings.createErr = errBoom
	s := NewListingService(nil, rm, blobs, logging.Nop())

	_, err := s.Create(context.Background(), "u1", NewListing{
		Title: "x", Price: "1", Image: Upload{Data: []byte("x")},
	})
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, blobs.deleted, 1)
}

func TestListing_GetAndLists(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewListingService(nil, rm, newFakeBlobs(), logging.Nop())

	_, err := s.Get(context.Background(), "bad")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, common.ErrorNotFound)

	avail, err := s.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, avail)

	l, err := s.Create(context.Background(), "u1", NewListing{Title: "Scarf", Price: "5"})
	require.NoError(t, err)

	got, err := s.Get(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scarf", got.Title)

	mine, err := s.ListMine(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := s.ListMine(context.Background(), "u2")
	require.NoError(t, err)
	assert.NotNil(t, theirs)
	assert.Empty(t, theirs)
}

func seedListing(rm *fakeRepoManager, seller string) *models.Listing {
	l := &models.Listing{ID: uuid.NewString(), SellerID: seller, Title: "Boots", StorageKey: "listings/" + seller + "/k"}
	rm.listings.byID[l.ID] = l
	return l
}

func TestListing_MarkSoldCommits(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	l := seedListing(rm, "u1")
	s := NewListingService(db, rm, newFakeBlobs(), logging.Nop())

	require.NoError(t, s.MarkSold(context.Background(), "u1", l.ID))
	assert.True(t, rm.listings.byID[l.ID].Sold)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListing_MarkSoldForbiddenRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	l := seedListing(rm, "u1")
	s := NewListingService(db, rm, newFakeBlobs(), logging.Nop())

	err := s.MarkSold(context.Background(), "u2", l.ID)
	require.ErrorIs(t, err, common.ErrorForbidden)
	assert.False(t, l.Sold)
	assert.Empty(t, rm.listings.calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListing_MarkSoldMissing(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := NewListingService(db, newFakeRepoManager(), newFakeBlobs(), logging.Nop())

	err := s.MarkSold(context.Background(), "u1", uuid.NewString())
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.EqualError(t, err, "Listing not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListing_MalformedIDSkipsTransaction(t *testing.T) {
	db, mock := newSQLMockDB(t)
	s := NewListingService(db, newFakeRepoManager(), newFakeBlobs(), logging.Nop())

	require.ErrorIs(t, s.Delete(context.Background(), "u1", "nope"), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListing_DeleteRemovesBlobAfterCommit(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	l := seedListing(rm, "u1")
	s := NewListingService(db, rm, blobs, logging.Nop())

	require.NoError(t, s.Delete(context.Background(), "u1", l.ID))
	assert.NotContains(t, rm.listings.byID, l.ID)
	assert.Equal(t, []string{l.StorageKey}, blobs.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListing_DeleteRepoErrorKeepsBlob(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	rm.listings.opErr = errBoom
	l := seedListing(rm, "u1")
	s := NewListingService(db, rm, blobs, logging.Nop())

	require.ErrorIs(t, s.Delete(context.Background(), "u1", l.ID), errBoom)
	assert.Empty(t, blobs.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
