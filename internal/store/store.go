// internal/store/store.go
//
// Catalog sources.
// The server runs on a *pinyin.Catalog; where it comes from is a Source:
//   - builtin: the literal tables compiled into the binary (default).
//   - file:    a YAML or JSON document of groups (CATALOG_FILE).
//   - sqlite:  catalog tables in a SQLite database (CATALOG_DB).
//
// Every non-builtin source validates through pinyin.NewCatalog, so malformed
// data surfaces as an error wrapping pinyin.ErrMalformedCatalog.

package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pinyin-game/internal/pinyin"
)

// ErrEmpty is returned by sources that hold no catalog yet.
var ErrEmpty = errors.New("catalog source is empty")

// Source loads a catalog.
type Source interface {
	// Load returns the catalog held by the source.
	Load(ctx context.Context) (*pinyin.Catalog, error)

	// Name describes the source for logs.
	Name() string
}

// builtin serves the compiled-in catalog.
type builtin struct{}

// Builtin returns the source for the compiled-in catalog. It never fails.
func Builtin() Source { return builtin{} }

func (builtin) Load(ctx context.Context) (*pinyin.Catalog, error) { return pinyin.Default(), nil }

func (builtin) Name() string { return "builtin" }

// Options chooses a source. The database wins over the file, the file over
// the builtin tables.
type Options struct {
	DBPath      string
	CatalogFile string
}

// Open resolves opts to a catalog. An empty database is seeded with the
// builtin catalog first.
func Open(ctx context.Context, opts Options) (*pinyin.Catalog, error) {
	switch {
	case opts.DBPath != "":
		db, err := OpenSQLite(opts.DBPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return nil, err
		}
		cat, err := db.Load(ctx)
		if errors.Is(err, ErrEmpty) {
			log.Info().Str("db", opts.DBPath).Msg("catalog db empty, seeding builtin catalog")
			if err := db.Seed(ctx, pinyin.Default()); err != nil {
				return nil, err
			}
			cat, err = db.Load(ctx)
		}
		return loaded(db, cat, err)

	case opts.CatalogFile != "":
		src := NewFileSource(opts.CatalogFile)
		cat, err := src.Load(ctx)
		return loaded(src, cat, err)
	}
	return Builtin().Load(ctx)
}

func loaded(src Source, cat *pinyin.Catalog, err error) (*pinyin.Catalog, error) {
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", src.Name()).Int("entries", cat.Len()).Msg("catalog loaded")
	return cat, nil
}
