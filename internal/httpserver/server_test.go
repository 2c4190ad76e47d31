package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/pinyin-game/internal/pinyin"
	"github.com/robalobadob/pinyin-game/internal/route"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newServer(t *testing.T, opts Options) *Server {
	t.Helper()
	s, err := New(pinyin.Default(), opts)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newServer(t, Options{BasePath: "/pinyin-game/"})
	rec := do(t, s, http.MethodGet, "/pinyin-game/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestPages(t *testing.T) {
	s := newServer(t, Options{BasePath: "/pinyin-game/"})

	tests := []struct {
		target string
		status int
		view   string
		body   []string
	}{
		{"/pinyin-game/", http.StatusOK, "index", []string{"声母", "韵母", "整体认读音节", `data-file="vn"`, `data-pinyin="zhengti"`}},
		{"/pinyin-game", http.StatusOK, "index", []string{"声母"}},
		{"/pinyin-game/game", http.StatusOK, "game", []string{`data-count="61"`, `data-index="60"`, ">ü<"}},
		{"/pinyin-game/unknown", http.StatusNotFound, "not-found", []string{"/pinyin-game/unknown"}},
		{"/pinyin-game/game/", http.StatusNotFound, "not-found", nil},
		{"/elsewhere", http.StatusNotFound, "not-found", nil},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target)
			require.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			body := rec.Body.String()
			assert.Contains(t, body, `data-view="`+tt.view+`"`)
			for _, want := range tt.body {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestPagesAtRoot(t *testing.T) {
	s := newServer(t, Options{})
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/game").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope").Code)
}

func TestBasePathWithoutSlashes(t *testing.T) {
	s := newServer(t, Options{BasePath: "pinyin-game"})
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/pinyin-game/game").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/pinyin-game/api/pinyin").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/game").Code)
}

func TestList(t *testing.T) {
	s := newServer(t, Options{})

	res := decode[listRes](t, do(t, s, http.MethodGet, "/api/pinyin"))
	assert.Equal(t, 61, res.Count)
	assert.Equal(t, pinyin.All(), res.Entries)

	res = decode[listRes](t, do(t, s, http.MethodGet, "/api/pinyin?category=whole-syllable"))
	assert.Equal(t, 16, res.Count)
	assert.Equal(t, "yi", res.Entries[0].Display)

	rec := do(t, s, http.MethodGet, "/api/pinyin?category=tone")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"unknown_category"}`, rec.Body.String())
}

func TestGroups(t *testing.T) {
	s := newServer(t, Options{})
	groups := decode[[]pinyin.Group](t, do(t, s, http.MethodGet, "/api/pinyin/groups"))
	require.Len(t, groups, 3)
	assert.Equal(t, pinyin.Groups(), groups)
}

func TestEntry(t *testing.T) {
	s := newServer(t, Options{})

	e := decode[pinyin.Entry](t, do(t, s, http.MethodGet, "/api/pinyin/v"))
	assert.Equal(t, pinyin.Entry{Display: "ü", FileKey: "v", Category: pinyin.CategoryFinal, Reading: "迂"}, e)

	rec := do(t, s, http.MethodGet, "/api/pinyin/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestDecompose(t *testing.T) {
	s := newServer(t, Options{})

	res := decode[decomposeRes](t, do(t, s, http.MethodGet, "/api/pinyin/decompose?text="+"%E5%A5%BD"))
	require.Len(t, res.Syllables, 1)
	assert.Equal(t, "好", res.Syllables[0].Hanzi)
	require.NotNil(t, res.Syllables[0].Initial)
	assert.Equal(t, "h", res.Syllables[0].Initial.FileKey)

	res = decode[decomposeRes](t, do(t, s, http.MethodGet, "/api/pinyin/decompose?text=abc"))
	assert.NotNil(t, res.Syllables)
	assert.Empty(t, res.Syllables)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/pinyin/decompose").Code)
	long := strings.Repeat("a", maxDecomposeRunes+1)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/pinyin/decompose?text="+long).Code)
}

func TestRoutes(t *testing.T) {
	s := newServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/api/routes")
	assert.JSONEq(t, `[{"path":"/","view":"index"},{"path":"/game","view":"game"}]`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/routes/resolve?path=/game")
	assert.JSONEq(t, `{"path":"/game","view":"game","found":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/routes/resolve?path=/unknown")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"path":"/unknown","view":"not-found","found":false}`, rec.Body.String())
}

func TestAPINotFoundIsJSON(t *testing.T) {
	s := newServer(t, Options{BasePath: "/pinyin-game/"})
	rec := do(t, s, http.MethodGet, "/pinyin-game/api/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	s := newServer(t, Options{ClientOrigin: "http://example.test"})

	rec := do(t, s, http.MethodOptions, "/api/pinyin")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://example.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ve.mp3"), []byte("mp3"), 0o644))

	s := newServer(t, Options{BasePath: "/pinyin-game/", AssetsDir: dir})
	rec := do(t, s, http.MethodGet, "/pinyin-game/assets/ve.mp3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mp3", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/pinyin-game/assets/missing.mp3").Code)
}

func TestNoAssetsDir(t *testing.T) {
	s := newServer(t, Options{})
	rec := do(t, s, http.MethodGet, "/assets/ve.mp3")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-view="`+route.ViewNotFound.String()+`"`)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newServer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0", time.Second) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
