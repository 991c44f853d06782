package console

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/domain"
)

type collectionsBackend struct {
	mu      sync.Mutex
	lists   int
	saves   []map[string]any
	deletes []string
}

func (b *collectionsBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/collections":
			b.lists++
			w.Write([]byte(`[{"id": "c1", "name": "Heritage", "slug": "heritage", "is_active": true}]`))
		case r.Method == http.MethodPost || r.Method == http.MethodPut:
			var payload map[string]any
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &payload)
			b.saves = append(b.saves, payload)
			w.Write([]byte(`{"id": "c2", "name": "Riviera Summer", "slug": "riviera-summer"}`))
		case r.Method == http.MethodDelete:
			b.deletes = append(b.deletes, r.URL.Path)
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func TestCollectionsSlugFollowsNameUntilEdited(t *testing.T) {
	m := NewCollectionsManager(newConsoleClient(t, http.NotFoundHandler()))
	m.OpenCreate()

	m.SetName("Riviera Summer")
	assert.Equal(t, "riviera-summer", m.Form().Slug)

	m.SetName("Riviera  Summer '26")
	assert.Equal(t, "riviera-summer-26", m.Form().Slug)

	m.SetSlug("riviera")
	m.SetName("Something Else Entirely")
	assert.Equal(t, "riviera", m.Form().Slug, "manual slug edit stops auto-regeneration")
}

func TestCollectionsEditKeepsCustomSlug(t *testing.T) {
	m := NewCollectionsManager(newConsoleClient(t, http.NotFoundHandler()))

	m.OpenEdit(domain.Collection{ID: "c1", Name: "Heritage", Slug: "maison-heritage"})
	m.SetName("Heritage Redux")
	assert.Equal(t, "maison-heritage", m.Form().Slug)

	m.OpenEdit(domain.Collection{ID: "c2", Name: "Heritage", Slug: "heritage"})
	m.SetName("Heritage Redux")
	assert.Equal(t, "heritage-redux", m.Form().Slug, "derived slug keeps following the name")
}

func TestCollectionsSaveCreateAndValidation(t *testing.T) {
	backend := &collectionsBackend{}
	m := NewCollectionsManager(newConsoleClient(t, backend.handler()))
	m.OpenCreate()

	_, err := m.Save(context.Background())
	require.Error(t, err)
	assert.Contains(t, m.FieldErrors(), "name")

	m.SetName("Riviera Summer")
	saved, err := m.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c2", saved.ID)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.saves, 1)
	assert.Equal(t, "riviera-summer", backend.saves[0]["slug"])
	assert.Equal(t, true, backend.saves[0]["is_active"])
	assert.Equal(t, 1, backend.lists, "successful save re-fetches the list")
}

func TestCollectionsDeleteRequiresConfirmation(t *testing.T) {
	backend := &collectionsBackend{}
	m := NewCollectionsManager(newConsoleClient(t, backend.handler()))

	m.RequestDelete("c1")
	backend.mu.Lock()
	assert.Empty(t, backend.deletes)
	backend.mu.Unlock()

	require.NoError(t, m.ConfirmDelete(context.Background()))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, []string{"/collections/c1"}, backend.deletes)
}

func TestCollectionsImageUploadReplacesURL(t *testing.T) {
	m := NewCollectionsManager(newConsoleClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/upload", r.URL.Path)
		require.Equal(t, "collections", r.URL.Query().Get("category"))
		w.Write([]byte(`{"image_url": "/static/uploads/collections/cover.jpg"}`))
	})))
	m.OpenCreate()
	m.Update(func(f *CollectionForm) { f.Image = "/static/uploads/collections/old.jpg" })

	err := m.UploadImage(context.Background(), api.File{
		Name:        "cover.jpg",
		ContentType: "image/jpeg",
		Data:        strings.NewReader("img"),
	})
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/collections/cover.jpg", m.Form().Image)
}
