package repomanager

import (
	"context"
	"database/sql"

	"github.com/outfitai/outfitai/internal/dbx"
	"github.com/outfitai/outfitai/internal/server/repositories/clothes"
	"github.com/outfitai/outfitai/internal/server/repositories/listings"
	"github.com/outfitai/outfitai/internal/server/repositories/messages"
	"github.com/outfitai/outfitai/internal/server/repositories/sharelinks"
	"github.com/outfitai/outfitai/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// runs against *sql.DB or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Clothes(db dbx.DBTX) clothes.Repository
	Listings(db dbx.DBTX) listings.Repository
	Messages(db dbx.DBTX) messages.Repository
	ShareLinks(db dbx.DBTX) sharelinks.Repository
}
