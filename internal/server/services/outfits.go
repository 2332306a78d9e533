package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/completion"
	"github.com/outfitai/outfitai/internal/server/models"
	"github.com/outfitai/outfitai/internal/server/repositories/repomanager"
)

const maxPromptItems = 50

// OutfitService proxies outfit and styling questions to the completion service.
type OutfitService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	completer   completion.Completer
	log         logging.Logger
}

func NewOutfitService(db *sql.DB, m repomanager.RepositoryManager, c completion.Completer, log logging.Logger) *OutfitService {
	return &OutfitService{db: db, repomanager: m, completer: c, log: log.With("module", "outfits")}
}

// Suggest asks for outfits built only from the caller's wardrobe.
func (s *OutfitService) Suggest(ctx context.Context, userID, occasion string) ([]string, error) {
	items, err := s.repomanager.Clothes(s.db).ListByUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("error loading wardrobe: %w", err)
	}
	if len(items) == 0 {
		return nil, common.Detail(common.ErrorValidation, "Add some clothes to your wardrobe first")
	}

	reply, err := s.completer.Complete(ctx, suggestionPrompt(items, occasion))
	if err != nil {
		s.log.Warn(ctx, "completion failed", "error", err)
		return nil, err
	}

	suggestions := ParseBulletList(reply)
	if len(suggestions) == 0 {
		suggestions = []string{strings.TrimSpace(reply)}
	}
	return suggestions, nil
}

// Chat forwards a free-form styling question.
func (s *OutfitService) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", common.Detail(common.ErrorValidation, "Message is required")
	}

	reply, err := s.completer.Complete(ctx, "You are a friendly personal stylist. Answer briefly.\n\n"+message)
	if err != nil {
		s.log.Warn(ctx, "completion failed", "error", err)
		return "", err
	}
	return reply, nil
}

func suggestionPrompt(items []*models.ClothingItem, occasion string) string {
	occasion = strings.TrimSpace(occasion)
	if occasion == "" {
		occasion = "everyday wear"
	}

	var b strings.Builder
	b.WriteString("Suggest up to 3 outfits for ")
	b.WriteString(occasion)
	b.WriteString(" using only these clothes. Reply with one outfit per bullet line.\n")
	for i, it := range items {
		if i == maxPromptItems {
			break
		}
		fmt.Fprintf(&b, "- %s", describe(it))
		b.WriteByte('\n')
	}
	return b.String()
}

func describe(it *models.ClothingItem) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{it.Color, it.Name, it.Category} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "item " + it.ID
	}
	return strings.Join(parts, " ")
}

// SplitClothes turns "a, b,,c" into ["a" "b" "c"].
func SplitClothes(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var (
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	boldMarkers  = regexp.MustCompile(`\*\*|__`)
)

// ParseBulletList extracts list entries from model output. Lines starting
// with -, *, • or a "1." / "1)" counter are entries; other lines are ignored.
func ParseBulletList(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		loc := bulletPrefix.FindStringIndex(line)
		if loc == nil {
			continue
		}
		entry := strings.TrimSpace(boldMarkers.ReplaceAllString(line[loc[1]:], ""))
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
