package fontface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/substyle/substyle/internal/domain/entity"
)

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func glyphServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		_, _ = w.Write([]byte("woff2-bytes"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRegistry_AddAndFaces(t *testing.T) {
	r := NewRegistry(nil)
	ctx := testContext()

	err := r.Add(ctx, []entity.FaceRule{
		{Family: "Poppins", Weight: 400, SourceURL: "https://cdn.example/p400.woff2"},
		{Family: "Poppins", Weight: 700, SourceURL: "https://cdn.example/p700.woff2"},
	})
	require.NoError(t, err)

	faces, err := r.Faces(ctx, "Poppins")
	require.NoError(t, err)
	require.Len(t, faces, 2)
	for _, f := range faces {
		assert.Equal(t, entity.FaceStatusUnloaded, f.Status, "registration alone must not load glyphs")
	}
}

func TestRegistry_Add_RejectsInvalidRule(t *testing.T) {
	r := NewRegistry(nil)
	err := r.Add(testContext(), []entity.FaceRule{{Family: "Poppins", Weight: 400}})
	require.Error(t, err)
}

func TestRegistry_EnsureFace_FetchesOnce(t *testing.T) {
	var hits atomic.Int64
	srv := glyphServer(t, &hits)
	r := NewRegistry(srv.Client())
	ctx := testContext()

	require.NoError(t, r.Add(ctx, []entity.FaceRule{
		{Family: "Poppins", Weight: 400, SourceURL: srv.URL + "/p400.woff2"},
	}))

	face, err := r.EnsureFace(ctx, entity.FaceQuery{Family: "Poppins", Weight: 400, SizePx: 16})
	require.NoError(t, err)
	assert.Equal(t, entity.FaceStatusLoaded, face.Status)
	assert.Equal(t, int64(1), hits.Load())

	// Already loaded; no second fetch.
	_, err = r.EnsureFace(ctx, entity.FaceQuery{Family: "Poppins", Weight: 400, SizePx: 16})
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())

	assert.Equal(t, []byte("woff2-bytes"), r.FaceData("Poppins", 400))
}

func TestRegistry_EnsureFace_NearestWeightSubstitution(t *testing.T) {
	srv := glyphServer(t, nil)
	r := NewRegistry(srv.Client())
	ctx := testContext()

	require.NoError(t, r.Add(ctx, []entity.FaceRule{
		{Family: "Oswald", Weight: 400, SourceURL: srv.URL + "/o400.woff2"},
		{Family: "Oswald", Weight: 700, SourceURL: srv.URL + "/o700.woff2"},
	}))

	face, err := r.EnsureFace(ctx, entity.FaceQuery{Family: "Oswald", Weight: 900, SizePx: 16})
	require.NoError(t, err)
	assert.Equal(t, 700, face.Weight, "nearest registered weight wins")

	// Equidistant request prefers the lighter face.
	face, err = r.EnsureFace(ctx, entity.FaceQuery{Family: "Oswald", Weight: 550, SizePx: 16})
	require.NoError(t, err)
	assert.Equal(t, 400, face.Weight)
}

func TestRegistry_EnsureFace_UnknownFamily(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.EnsureFace(testContext(), entity.FaceQuery{Family: "Ghost", Weight: 400})
	require.Error(t, err)
}

func TestRegistry_EnsureFace_FetchFailureResetsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	r := NewRegistry(srv.Client())
	ctx := testContext()
	require.NoError(t, r.Add(ctx, []entity.FaceRule{
		{Family: "Poppins", Weight: 400, SourceURL: srv.URL + "/p400.woff2"},
	}))

	_, err := r.EnsureFace(ctx, entity.FaceQuery{Family: "Poppins", Weight: 400})
	require.Error(t, err)

	faces, err := r.Faces(ctx, "Poppins")
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, entity.FaceStatusUnloaded, faces[0].Status)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry(nil)
	ctx := testContext()

	require.NoError(t, r.Add(ctx, []entity.FaceRule{
		{Family: "Poppins", Weight: 400, SourceURL: "https://cdn.example/p400.woff2"},
	}))
	require.NoError(t, r.Remove(ctx, "Poppins"))

	faces, err := r.Faces(ctx, "Poppins")
	require.NoError(t, err)
	assert.Empty(t, faces)
}

func TestRegistry_Add_ReplacementResetsStatus(t *testing.T) {
	srv := glyphServer(t, nil)
	r := NewRegistry(srv.Client())
	ctx := testContext()

	rule := entity.FaceRule{Family: "Poppins", Weight: 400, SourceURL: srv.URL + "/v1.woff2"}
	require.NoError(t, r.Add(ctx, []entity.FaceRule{rule}))

	_, err := r.EnsureFace(ctx, entity.FaceQuery{Family: "Poppins", Weight: 400})
	require.NoError(t, err)

	// Re-adding the same (family, weight) with new glyph data resets it.
	rule.SourceURL = srv.URL + "/v2.woff2"
	require.NoError(t, r.Add(ctx, []entity.FaceRule{rule}))

	faces, err := r.Faces(ctx, "Poppins")
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, entity.FaceStatusUnloaded, faces[0].Status)
	assert.Nil(t, r.FaceData("Poppins", 400))
}
