package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/outfitai/outfitai/internal/server/repositories/repomanager"
	"github.com/outfitai/outfitai/internal/server/storage"
)

// Upload is an image received from a multipart form.
type Upload struct {
	ContentType string
	Data        []byte
}

type NewClothing struct {
	Name     string
	Category string
	Color    string
	Image    Upload
}

type WardrobeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
	log         logging.Logger
}

func NewWardrobeService(db *sql.DB, m repomanager.RepositoryManager, blobs storage.BlobStore, log logging.Logger) *WardrobeService {
	return &WardrobeService{db: db, repomanager: m, blobs: blobs, log: log.With("module", "wardrobe")}
}

// Add uploads the photo to wardrobe/<userID>/<uuid> and records the item.
func (s *WardrobeService) Add(ctx context.Context, userID string, in NewClothing) (*models.ClothingItem, error) {
	if len(in.Image.Data) == 0 {
		return nil, common.Detail(common.ErrorValidation, "Image is required")
	}

	key := fmt.Sprintf("wardrobe/%s/%s", userID, uuid.NewString())
	url, err := s.blobs.Put(ctx, key, in.Image.ContentType, in.Image.Data)
	if err != nil {
		return nil, err
	}

	item, err := s.repomanager.Clothes(s.db).Create(ctx, &models.ClothingItem{
		UserID:     userID,
		Name:       strings.TrimSpace(in.Name),
		Category:   strings.ToLower(strings.TrimSpace(in.Category)),
		Color:      strings.TrimSpace(in.Color),
		ImageURL:   url,
		StorageKey: key,
	})
	if err != nil {
		s.removeBlob(ctx, key)
		return nil, fmt.Errorf("error saving clothing item: %w", err)
	}

	return item, nil
}

// List returns the caller's items, newest first, optionally by category.
func (s *WardrobeService) List(ctx context.Context, userID, category string) ([]*models.ClothingItem, error) {
	items, err := s.repomanager.Clothes(s.db).ListByUser(ctx, userID, strings.ToLower(strings.TrimSpace(category)))
	if err != nil {
		return nil, fmt.Errorf("error listing wardrobe: %w", err)
	}
	if items == nil {
		items = []*models.ClothingItem{}
	}
	return items, nil
}

// Remove deletes one of the caller's items. Items owned by someone else
// are reported as not found.
func (s *WardrobeService) Remove(ctx context.Context, userID, id string) error {
	if !isUUID(id) {
		return common.Detail(common.ErrorNotFound, "Item not found")
	}

	item, err := s.repomanager.Clothes(s.db).Delete(ctx, id, userID)
	if err != nil {
		if common.IsNotFound(err) {
			return common.Detail(common.ErrorNotFound, "Item not found")
		}
		return fmt.Errorf("error deleting clothing item: %w", err)
	}

	s.removeBlob(ctx, item.StorageKey)
	return nil
}

func (s *WardrobeService) removeBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "blob cleanup failed", "key", key, "error", err)
	}
}

// isUUID guards uuid columns from ids Postgres would reject with a syntax error.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
