package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shirt() NewClothing {
	return NewClothing{
		Name:     "Oxford shirt",
		Category: " Tops ",
		Color:    "white",
		Image:    Upload{ContentType: "image/png", Data: []byte("png")},
	}
}

func TestWardrobe_AddStoresBlobAndItem(t *testing.T) {
	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	s := NewWardrobeService(nil, rm, blobs, logging.Nop())

	item, err := s.Add(context.Background(), "u1", shirt())
	require.NoError(t, err)

	assert.Equal(t, "tops", item.Category)
	assert.True(t, strings.HasPrefix(item.StorageKey, "wardrobe/u1/"))
	assert.Equal(t, "http://blobs.test/"+item.StorageKey, item.ImageURL)
	assert.Contains(t, blobs.objects, item.StorageKey)
}

func TestWardrobe_AddRequiresImage(t *testing.T) {
	s := NewWardrobeService(nil, newFakeRepoManager(), newFakeBlobs(), logging.Nop())

	in := shirt()
	in.Image = Upload{}
	_, err := s.Add(context.Background(), "u1", in)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestWardrobe_AddUploadFailure(t *testing.T) {
	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	blobs.putErr = common.ErrorUpstream
	s := NewWardrobeService(nil, rm, blobs, logging.Nop())

	_, err := s.Add(context.Background(), "u1", shirt())
	require.ErrorIs(t, err, common.ErrorUpstream)
	assert.Empty(t, rm.clothes.items)
}

func TestWardrobe_AddCleansUpBlobOnDBError(t *testing.T) {
	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	rm.clothes.createErr = errBoom
	s := NewWardrobeService(nil, rm, blobs, logging.Nop())

	_, err := s.Add(context.Background(), "u1", shirt())
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, blobs.deleted, 1)
	assert.Empty(t, blobs.objects)
}

func TestWardrobe_ListFiltersAndNeverNil(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewWardrobeService(nil, rm, newFakeBlobs(), logging.Nop())

	empty, err := s.List(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = s.Add(context.Background(), "u1", shirt())
	require.NoError(t, err)
	jeans := shirt()
	jeans.Category = "bottoms"
	_, err = s.Add(context.Background(), "u1", jeans)
	require.NoError(t, err)
	_, err = s.Add(context.Background(), "u2", shirt())
	require.NoError(t, err)

	all, err := s.List(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	tops, err := s.List(context.Background(), "u1", "TOPS")
	require.NoError(t, err)
	require.Len(t, tops, 1)
	assert.Equal(t, "tops", tops[0].Category)
}

func TestWardrobe_ListError(t *testing.T) {
	rm := newFakeRepoManager()
	rm.clothes.listErr = errBoom
	s := NewWardrobeService(nil, rm, newFakeBlobs(), logging.Nop())

	_, err := s.List(context.Background(), "u1", "")
	require.ErrorIs(t, err, errBoom)
}

func TestWardrobe_Remove(t *testing.T) {
	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	s := NewWardrobeService(nil, rm, blobs, logging.Nop())

	item, err := s.Add(context.Background(), "u1", shirt())
	require.NoError(t, err)

	err = s.Remove(context.Background(), "u2", item.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.EqualError(t, err, "Item not found")

	require.NoError(t, s.Remove(context.Background(), "u1", item.ID))
	assert.Equal(t, []string{item.StorageKey}, blobs.deleted)
	assert.Empty(t, rm.clothes.items)
}

func TestWardrobe_RemoveBlobFailureIsIgnored(t *testing.T) {
	rm, blobs := newFakeRepoManager(), newFakeBlobs()
	s := NewWardrobeService(nil, rm, blobs, logging.Nop())

	item, err := s.Add(context.Background(), "u1", shirt())
	require.NoError(t, err)

	blobs.deleteErr = common.ErrorUpstream
	assert.NoError(t, s.Remove(context.Background(), "u1", item.ID))
}

func TestWardrobe_RemoveMalformedID(t *testing.T) {
	s := NewWardrobeService(nil, newFakeRepoManager(), newFakeBlobs(), logging.Nop())

	err := s.Remove(context.Background(), "u1", "not-a-uuid")
	require.ErrorIs(t, err, common.ErrorNotFound)

	err = s.Remove(context.Background(), "u1", uuid.NewString())
	require.ErrorIs(t, err, common.ErrorNotFound)
}
