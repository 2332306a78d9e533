package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	nanoid "github.com/jaevor/go-nanoid"
	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/outfitai/outfitai/internal/server/repositories/repomanager"
)

const (
	shareCodeLength   = 10
	shareCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	shareCodeAttempts = 3
)

// SharedOutfit is the public view of a share link.
type SharedOutfit struct {
	Code    string   `json:"code"`
	Owner   string   `json:"owner"`
	Clothes []string `json:"clothes"`
}

// ShareService publishes outfits under short public codes.
type ShareService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	baseURL     string
	newCode     func() string
}

func NewShareService(db *sql.DB, m repomanager.RepositoryManager, baseURL string) (*ShareService, error) {
	gen, err := nanoid.CustomASCII(shareCodeAlphabet, shareCodeLength)
	if err != nil {
		return nil, fmt.Errorf("share code generator: %w", err)
	}
	return &ShareService{db: db, repomanager: m, baseURL: strings.TrimRight(baseURL, "/"), newCode: gen}, nil
}

// Create stores clothes ("shirt, jeans") under a fresh code and returns the
// link with its public URL.
func (s *ShareService) Create(ctx context.Context, userID, clothes string) (*models.ShareLink, string, error) {
	items := SplitClothes(clothes)
	if len(items) == 0 {
		return nil, "", common.Detail(common.ErrorValidation, "Clothes are required")
	}

	repo := s.repomanager.ShareLinks(s.db)
	for attempt := 0; attempt < shareCodeAttempts; attempt++ {
		link, err := repo.Create(ctx, &models.ShareLink{
			Code:    s.newCode(),
			UserID:  userID,
			Clothes: strings.Join(items, ","),
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("error creating share link: %w", err)
		}
		return link, s.URL(link.Code), nil
	}

	return nil, "", fmt.Errorf("%w: share code space exhausted", common.ErrorInternal)
}

// Resolve looks up a public share code.
func (s *ShareService) Resolve(ctx context.Context, code string) (*SharedOutfit, error) {
	link, err := s.repomanager.ShareLinks(s.db).Get(ctx, code)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.Detail(common.ErrorNotFound, "Shared outfit not found")
		}
		return nil, fmt.Errorf("error loading share link: %w", err)
	}
	return &SharedOutfit{Code: link.Code, Owner: link.Owner, Clothes: SplitClothes(link.Clothes)}, nil
}

func (s *ShareService) URL(code string) string {
	return s.baseURL + "/s/" + code
}
