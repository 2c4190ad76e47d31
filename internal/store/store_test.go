package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pinyin-game/internal/pinyin"
)

func openMemory(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestBuiltin(t *testing.T) {
	cat, err := Builtin().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 61, cat.Len())
	assert.Equal(t, "builtin", Builtin().Name())
}

func TestSQLiteEmpty(t *testing.T) {
	db := openMemory(t)
	_, err := db.Load(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSQLiteSeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, db.Seed(ctx, pinyin.Default()))
	cat, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(pinyin.Groups(), cat.Groups()))

	// Seeding again replaces rather than duplicates.
	require.NoError(t, db.Seed(ctx, pinyin.Default()))
	cat, err = db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 61, cat.Len())
}

func TestSQLiteMigrateIdempotent(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Migrate(context.Background()))

	var n int
	require.NoError(t, db.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestSQLiteRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, db.Seed(ctx, pinyin.Default()))

	_, err := db.db.Exec(`INSERT INTO catalog_entries (file_key, display, group_key, position) VALUES ('ü', 'ü2', 'final', 99)`)
	require.NoError(t, err)

	_, err = db.Load(ctx)
	assert.ErrorIs(t, err, pinyin.ErrMalformedCatalog)
}

func TestOpenPrefersDB(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cat, err := Open(ctx, Options{DBPath: filepath.Join(dir, "data", "catalog.db"), CatalogFile: "ignored.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 61, cat.Len())

	// Second open reads the seeded rows.
	cat, err = Open(ctx, Options{DBPath: filepath.Join(dir, "data", "catalog.db")})
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(pinyin.All(), cat.All()))
}

func TestOpenBuiltinByDefault(t *testing.T) {
	cat, err := Open(context.Background(), Options{})
	require.NoError(t, err)
	assert.Same(t, pinyin.Default(), cat)
}

const smallYAML = `
groups:
  - title: 声母
    key: initial
    pinyins:
      - {display: b, fileKey: b}
      - {display: p, fileKey: p}
  - title: 韵母
    key: final
    pinyins:
      - {display: ü, fileKey: v}
`

func TestFileSourceYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(smallYAML), 0o644))

	src := NewFileSource(path)
	cat, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []pinyin.Entry{
		{Display: "b", FileKey: "b", Category: pinyin.CategoryInitial},
		{Display: "p", FileKey: "p", Category: pinyin.CategoryInitial},
		{Display: "ü", FileKey: "v", Category: pinyin.CategoryFinal},
	}, cat.All())
	assert.Equal(t, "file:"+path, src.Name())
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileSource(filepath.Join(dir, "catalog.toml")).Load(context.Background())
	assert.ErrorContains(t, err, "unsupported catalog file extension")

	_, err = NewFileSource(filepath.Join(dir, "missing.yaml")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{"groups":[{"title":"声母","key":"initial","pinyins":[
		{"display":"b","fileKey":"b"},{"display":"bb","fileKey":"b"}]}]}`), 0o644))
	_, err = NewFileSource(dup).Load(context.Background())
	assert.ErrorIs(t, err, pinyin.ErrMalformedCatalog)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = NewFileSource(empty).Load(context.Background())
	assert.ErrorIs(t, err, pinyin.ErrMalformedCatalog)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, pinyin.Default(), format))
			assert.True(t, strings.Contains(buf.String(), "整体认读音节"))

			cat, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(pinyin.Groups(), cat.Groups()))
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFromPath("c.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = FormatFromPath("c.txt")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("toml")
	assert.ErrorContains(t, err, "unsupported catalog format")
}
