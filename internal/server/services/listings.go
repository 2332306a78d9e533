package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/dbx"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/outfitai/outfitai/internal/server/repositories/repomanager"
	"github.com/outfitai/outfitai/internal/server/storage"
)

type NewListing struct {
	Title       string
	Description string
	Price       string
	Size        string
	Image       Upload
}

// ListingService runs the secondhand marketplace.
type ListingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
	log         logging.Logger
}

func NewListingService(db *sql.DB, m repomanager.RepositoryManager, blobs storage.BlobStore, log logging.Logger) *ListingService {
	return &ListingService{db: db, repomanager: m, blobs: blobs, log: log.With("module", "listings")}
}

func (s *ListingService) Create(ctx context.Context, sellerID string, in NewListing) (*models.Listing, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.Detail(common.ErrorValidation, "Title is required")
	}
	cents, err := ParsePriceCents(in.Price)
	if err != nil {
		return nil, err
	}

	l := &models.Listing{
		SellerID:    sellerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		PriceCents:  cents,
		Size:        strings.TrimSpace(in.Size),
	}

	if len(in.Image.Data) > 0 {
		l.StorageKey = fmt.Sprintf("listings/%s/%s", sellerID, uuid.NewString())
		if l.ImageURL, err = s.blobs.Put(ctx, l.StorageKey, in.Image.ContentType, in.Image.Data); err != nil {
			return nil, err
		}
	}

	created, err := s.repomanager.Listings(s.db).Create(ctx, l)
	if err != nil {
		if l.StorageKey != "" {
			s.removeBlob(ctx, l.StorageKey)
		}
		return nil, fmt.Errorf("error creating listing: %w", err)
	}
	return created, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*models.Listing, error) {
	if !isUUID(id) {
		return nil, listingNotFound()
	}
	l, err := s.repomanager.Listings(s.db).Get(ctx, id)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, listingNotFound()
		}
		return nil, fmt.Errorf("error loading listing: %w", err)
	}
	return l, nil
}

// ListAvailable returns unsold listings, newest first.
func (s *ListingService) ListAvailable(ctx context.Context) ([]*models.Listing, error) {
	l, err := s.repomanager.Listings(s.db).ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing marketplace: %w", err)
	}
	return nonNil(l), nil
}

func (s *ListingService) ListMine(ctx context.Context, sellerID string) ([]*models.Listing, error) {
	l, err := s.repomanager.Listings(s.db).ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("error listing own listings: %w", err)
	}
	return nonNil(l), nil
}

// MarkSold flags the caller's listing as sold.
func (s *ListingService) MarkSold(ctx context.Context, sellerID, id string) error {
	_, err := s.ownedMutation(ctx, sellerID, id, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Listings(tx).MarkSold(ctx, id)
	})
	return err
}

// Delete removes the caller's listing and, best-effort, its photo.
func (s *ListingService) Delete(ctx context.Context, sellerID, id string) error {
	l, err := s.ownedMutation(ctx, sellerID, id, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Listings(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if l.StorageKey != "" {
		s.removeBlob(ctx, l.StorageKey)
	}
	return nil
}

// ownedMutation loads the listing, checks ownership and applies fn in one transaction.
func (s *ListingService) ownedMutation(ctx context.Context, sellerID, id string, fn func(context.Context, dbx.DBTX) error) (*models.Listing, error) {
	if !isUUID(id) {
		return nil, listingNotFound()
	}

	var listing *models.Listing
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		l, err := s.repomanager.Listings(tx).Get(ctx, id)
		if err != nil {
			if common.IsNotFound(err) {
				return listingNotFound()
			}
			return fmt.Errorf("error loading listing: %w", err)
		}
		if l.SellerID != sellerID {
			return common.Detail(common.ErrorForbidden, "Not your listing")
		}
		listing = l
		return fn(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) removeBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "blob cleanup failed", "key", key, "error", err)
	}
}

func listingNotFound() error {
	return common.Detail(common.ErrorNotFound, "Listing not found")
}

func nonNil(l []*models.Listing) []*models.Listing {
	if l == nil {
		return []*models.Listing{}
	}
	return l
}

var pricePattern = regexp.MustCompile(`^(\d*)(?:\.(\d{1,2}))?$`)

// ParsePriceCents converts "25", "25.5" or "25.50" into cents.
func ParsePriceCents(price string) (int64, error) {
	m := pricePattern.FindStringSubmatch(strings.TrimSpace(price))
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, common.Detail(common.ErrorValidation, "Price must be a non-negative amount")
	}

	var units, cents int64
	if m[1] != "" {
		u, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || u > math.MaxInt64/100-1 {
			return 0, common.Detail(common.ErrorValidation, "Price is too large")
		}
		units = u
	}
	if frac := m[2]; frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}

	return units*100 + cents, nil
}
