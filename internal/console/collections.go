package console

import (
	"context"
	"errors"
	"sync"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/domain"
	"github.com/gcg-eyewear/storefront/internal/fetch"
	apperrors "github.com/gcg-eyewear/storefront/pkg/errors"
	"github.com/gcg-eyewear/storefront/pkg/validator"
)

// CollectionForm is the typed collection form state.
type CollectionForm struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
}

// CollectionsManager drives the collections list and its create/edit form.
// The slug auto-derives from the name until the slug field is manually
// edited; after that, name changes leave the slug alone.
type CollectionsManager struct {
	mu sync.Mutex

	client  *api.Client
	fetcher *fetch.Fetcher[[]domain.Collection]

	editingID     string
	form          CollectionForm
	slugEdited    bool
	fieldErrs     map[string]string
	pendingDelete string
}

// NewCollectionsManager creates the collections controller.
func NewCollectionsManager(client *api.Client) *CollectionsManager {
	return &CollectionsManager{
		client: client,
		fetcher: fetch.New(func(ctx context.Context) ([]domain.Collection, error) {
			return client.Collections.List(ctx)
		}),
	}
}

// Refresh re-fetches the collections list.
func (m *CollectionsManager) Refresh(ctx context.Context) {
	m.fetcher.Fetch(ctx)
}

// Snapshot returns the list's current fetch state.
func (m *CollectionsManager) Snapshot() fetch.Snapshot[[]domain.Collection] {
	return m.fetcher.Snapshot()
}

// OpenCreate resets the form for a new collection.
func (m *CollectionsManager) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editingID = ""
	m.form = CollectionForm{IsActive: true}
	m.slugEdited = false
	m.fieldErrs = nil
}

// OpenEdit seeds the form from an existing collection. An existing slug
// counts as manually chosen, so renaming won't regenerate it.
func (m *CollectionsManager) OpenEdit(c domain.Collection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editingID = c.ID
	m.form = CollectionForm{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
	}
	m.slugEdited = c.Slug != "" && c.Slug != domain.SlugFor(c.Name)
	m.fieldErrs = nil
}

// SetName updates the name, regenerating the slug unless it was manually
// edited.
func (m *CollectionsManager) SetName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.Name = name
	if !m.slugEdited {
		m.form.Slug = domain.SlugFor(name)
	}
}

// SetSlug records a manual slug edit; auto-regeneration stops from here on.
func (m *CollectionsManager) SetSlug(slug string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.Slug = slug
	m.slugEdited = true
}

// Update applies an edit to the non-name, non-slug form fields.
func (m *CollectionsManager) Update(fn func(*CollectionForm)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.form)
}

// Form returns a copy of the current form state.
func (m *CollectionsManager) Form() CollectionForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// FieldErrors returns the per-field messages from the last validation.
func (m *CollectionsManager) FieldErrors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.fieldErrs))
	for k, v := range m.fieldErrs {
		out[k] = v
	}
	return out
}

// UploadImage sends a single image and replaces the form's image URL with
// the stored one.
func (m *CollectionsManager) UploadImage(ctx context.Context, file api.File) error {
	result, err := m.client.Admin.Upload(ctx, file, "collections")
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.form.Image = result.ImageURL
	m.mu.Unlock()
	return nil
}

// Save validates and creates or updates the collection, then re-fetches
// the list.
func (m *CollectionsManager) Save(ctx context.Context) (*domain.Collection, error) {
	m.mu.Lock()
	if err := validator.Validate(m.form); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			m.fieldErrs = valErr.Fields()
		}
		m.mu.Unlock()
		return nil, err
	}
	m.fieldErrs = nil
	id := m.editingID
	input := api.CollectionInput{
		Name:        m.form.Name,
		Slug:        m.form.Slug,
		Description: m.form.Description,
		Image:       m.form.Image,
		IsActive:    m.form.IsActive,
		SortOrder:   m.form.SortOrder,
	}
	m.mu.Unlock()

	var (
		saved *domain.Collection
		err   error
	)
	if id == "" {
		saved, err = m.client.Collections.Create(ctx, input)
	} else {
		saved, err = m.client.Collections.Update(ctx, id, input)
	}
	if err != nil {
		return nil, err
	}
	m.Refresh(ctx)
	return saved, nil
}

// RequestDelete stages a deletion pending operator confirmation.
func (m *CollectionsManager) RequestDelete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingDelete = id
}

// CancelDelete drops the staged deletion.
func (m *CollectionsManager) CancelDelete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingDelete = ""
}

// ConfirmDelete issues the staged deletion and re-fetches the list.
func (m *CollectionsManager) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	id := m.pendingDelete
	m.pendingDelete = ""
	m.mu.Unlock()

	if id == "" {
		return apperrors.InvalidInput("no deletion pending confirmation")
	}
	if err := m.client.Collections.Delete(ctx, id); err != nil {
		return err
	}
	m.Refresh(ctx)
	return nil
}
