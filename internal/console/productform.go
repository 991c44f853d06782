package console

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/domain"
	apperrors "github.com/gcg-eyewear/storefront/pkg/errors"
	"github.com/gcg-eyewear/storefront/pkg/validator"
)

// scheduledAtLayout is the minute-resolution layout the schedule picker
// produces. Submit normalizes it to a full timestamp.
const scheduledAtLayout = "2006-01-02T15:04"

// FormRecord is the typed product form state. Price fields are held as the
// raw input text and coerced to numbers on submit; every optional field is
// explicitly optional rather than hiding in a loose map.
type FormRecord struct {
	Name             string             `json:"name" validate:"required"`
	Collection       string             `json:"collection" validate:"required"`
	Price            string             `json:"price" validate:"required"`
	OriginalPrice    string             `json:"original_price"`
	SKU              string             `json:"sku" validate:"required"`
	Gender           domain.Gender      `json:"gender" validate:"omitempty,oneof=Men Women Unisex"`
	Type             domain.ProductType `json:"type" validate:"omitempty,oneof=Sunglasses Eyeglasses"`
	FrameColor       string             `json:"frame_color" validate:"required"`
	LensColor        string             `json:"lens_color" validate:"required"`
	Materials        string             `json:"materials" validate:"required"`
	MadeIn           string             `json:"made_in"`
	IsLimitedEdition bool               `json:"is_limited_edition"`
	IsFeatured       bool               `json:"is_featured"`
	IsOnHomepage     bool               `json:"is_on_homepage"`
	IsInCatalog      bool               `json:"is_in_catalog"`
	MainImage        string             `json:"main_image" validate:"required"`
	ShortDescription string             `json:"short_description" validate:"required,max=120"`
	FullDescription  string             `json:"full_description"`
	Tags             []string           `json:"tags"`
	ScheduledAt      string             `json:"scheduled_at"`
}

// ProductForm drives the create and edit product screens. The image list
// owns ordering (index 0 is the main image); the record's image fields are
// derived from it before every validation and submit.
type ProductForm struct {
	mu sync.Mutex

	client    *api.Client
	productID string

	record FormRecord
	images domain.ImageList

	fieldErrs map[string]string
}

// NewProductForm creates an empty form in create mode.
func NewProductForm(client *api.Client) *ProductForm {
	return &ProductForm{
		client: client,
		record: FormRecord{Tags: []string{}},
	}
}

// Load switches the form to edit mode, seeding state from the existing
// product. The image list is seeded main image first, then the gallery.
func (f *ProductForm) Load(ctx context.Context, id string) error {
	product, err := f.client.Products.Get(ctx, id)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.productID = product.ID
	f.images = product.Images()
	f.record = FormRecord{
		Name:             product.Name,
		Collection:       product.Collection,
		Price:            formatPrice(product.Price),
		SKU:              product.SKU,
		Gender:           product.Gender,
		Type:             product.Type,
		FrameColor:       product.FrameColor,
		LensColor:        product.LensColor,
		Materials:        product.Materials,
		MadeIn:           product.MadeIn,
		IsLimitedEdition: product.IsLimitedEdition,
		IsFeatured:       product.IsFeatured,
		IsOnHomepage:     product.IsOnHomepage,
		IsInCatalog:      product.IsInCatalog,
		ShortDescription: product.ShortDescription,
		FullDescription:  product.FullDescription,
		Tags:             append([]string{}, product.Tags...),
	}
	if product.OriginalPrice != nil {
		f.record.OriginalPrice = formatPrice(*product.OriginalPrice)
	}
	if product.ScheduledAt != nil {
		f.record.ScheduledAt = product.ScheduledAt.Format(scheduledAtLayout)
	}
	f.syncImagesLocked()
	return nil
}

// Editing reports whether the form targets an existing product.
func (f *ProductForm) Editing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.productID != ""
}

// Record returns a copy of the current form state.
func (f *ProductForm) Record() FormRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncImagesLocked()
	return f.record
}

// Update applies an edit to the form state. Image fields set through fn
// are overwritten by the image list; use the image methods instead.
func (f *ProductForm) Update(fn func(*FormRecord)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.record)
	f.syncImagesLocked()
}

// FieldErrors returns the per-field messages from the last validation.
func (f *ProductForm) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.fieldErrs))
	for k, v := range f.fieldErrs {
		out[k] = v
	}
	return out
}

// SetMainImage makes the URL the main image, inserting it when new.
func (f *ProductForm) SetMainImage(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images.SetMain(url)
	f.syncImagesLocked()
}

// AddImages appends URLs to the gallery tail. The first image added to an
// empty form becomes the main image.
func (f *ProductForm) AddImages(urls ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images.Add(urls...)
	f.syncImagesLocked()
}

// MoveImage reorders the combined list; moving an image to index 0
// promotes it to main.
func (f *ProductForm) MoveImage(from, to int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.images.Move(from, to); err != nil {
		return err
	}
	f.syncImagesLocked()
	return nil
}

// RemoveImage deletes the image at the given index. Removing the last
// image clears both the main image and the gallery.
func (f *ProductForm) RemoveImage(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.images.Remove(i); err != nil {
		return err
	}
	f.syncImagesLocked()
	return nil
}

// Images returns the combined ordered image URLs, main image first.
func (f *ProductForm) Images() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.images.URLs()
}

// CanSchedule reports whether the scheduled save action is available. The
// control stays disabled until a schedule time is set.
func (f *ProductForm) CanSchedule() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.TrimSpace(f.record.ScheduledAt) != ""
}

// Validate runs the schema synchronously and records per-field messages.
// It never touches the network.
func (f *ProductForm) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

// SaveDraft validates and saves with status draft.
func (f *ProductForm) SaveDraft(ctx context.Context) (*domain.Product, error) {
	return f.save(ctx, domain.StatusDraft)
}

// SaveScheduled validates and saves with status scheduled. Blocked
// client-side when no schedule time is set; no request is issued.
func (f *ProductForm) SaveScheduled(ctx context.Context) (*domain.Product, error) {
	if !f.CanSchedule() {
		return nil, apperrors.InvalidInput("a schedule time is required to save as scheduled")
	}
	return f.save(ctx, domain.StatusScheduled)
}

// Publish validates and saves with status active.
func (f *ProductForm) Publish(ctx context.Context) (*domain.Product, error) {
	return f.save(ctx, domain.StatusActive)
}

// Preview mirrors the current form state as a product record without any
// network round-trip. Unparseable prices preview as zero.
func (f *ProductForm) Preview() domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncImagesLocked()

	price, _ := parsePrice(f.record.Price)
	product := domain.Product{
		ID:               f.productID,
		Name:             f.record.Name,
		Collection:       f.record.Collection,
		Price:            price,
		SKU:              f.record.SKU,
		Gender:           f.record.Gender,
		Type:             f.record.Type,
		FrameColor:       f.record.FrameColor,
		LensColor:        f.record.LensColor,
		Materials:        f.record.Materials,
		MadeIn:           f.record.MadeIn,
		IsLimitedEdition: f.record.IsLimitedEdition,
		IsFeatured:       f.record.IsFeatured,
		IsOnHomepage:     f.record.IsOnHomepage,
		IsInCatalog:      f.record.IsInCatalog,
		MainImage:        f.images.Main(),
		GalleryImages:    f.images.Gallery(),
		ShortDescription: f.record.ShortDescription,
		FullDescription:  f.record.FullDescription,
		Tags:             append([]string{}, f.record.Tags...),
	}
	if original, err := parsePrice(f.record.OriginalPrice); err == nil && f.record.OriginalPrice != "" {
		product.OriginalPrice = &original
	}
	return product
}

func (f *ProductForm) save(ctx context.Context, status domain.Status) (*domain.Product, error) {
	f.mu.Lock()
	if err := f.validateLocked(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	input, err := f.buildInputLocked(status)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	id := f.productID
	f.mu.Unlock()

	if id == "" {
		return f.client.Products.Create(ctx, input)
	}
	return f.client.Products.Update(ctx, id, input)
}

func (f *ProductForm) validateLocked() error {
	f.syncImagesLocked()
	if err := validator.Validate(f.record); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			f.fieldErrs = valErr.Fields()
		}
		return err
	}

	// Coercion failures surface as field messages too.
	errs := map[string]string{}
	if _, err := parsePrice(f.record.Price); err != nil {
		errs["price"] = "must be a number"
	}
	if f.record.OriginalPrice != "" {
		if _, err := parsePrice(f.record.OriginalPrice); err != nil {
			errs["original_price"] = "must be a number"
		}
	}
	if f.record.ScheduledAt != "" {
		if _, err := parseScheduledAt(f.record.ScheduledAt); err != nil {
			errs["scheduled_at"] = "must be a valid timestamp"
		}
	}
	if len(errs) > 0 {
		f.fieldErrs = errs
		return apperrors.InvalidInput("form has invalid fields")
	}

	f.fieldErrs = nil
	return nil
}

// buildInputLocked coerces the record into the write payload: prices to
// numbers, on-sale derived from the presence of an original price, and the
// schedule time normalized to a full timestamp or cleared.
func (f *ProductForm) buildInputLocked(status domain.Status) (api.ProductInput, error) {
	price, err := parsePrice(f.record.Price)
	if err != nil {
		return api.ProductInput{}, apperrors.InvalidInput("price must be a number")
	}

	input := api.ProductInput{
		Name:             f.record.Name,
		Collection:       f.record.Collection,
		Price:            price,
		SKU:              f.record.SKU,
		Gender:           f.record.Gender,
		Type:             f.record.Type,
		FrameColor:       f.record.FrameColor,
		LensColor:        f.record.LensColor,
		Materials:        f.record.Materials,
		MadeIn:           f.record.MadeIn,
		IsLimitedEdition: f.record.IsLimitedEdition,
		IsFeatured:       f.record.IsFeatured,
		IsOnHomepage:     f.record.IsOnHomepage,
		IsInCatalog:      f.record.IsInCatalog,
		Status:           status,
		MainImage:        f.images.Main(),
		GalleryImages:    f.images.Gallery(),
		ShortDescription: f.record.ShortDescription,
		FullDescription:  f.record.FullDescription,
		Tags:             append([]string{}, f.record.Tags...),
	}

	if f.record.OriginalPrice != "" {
		original, err := parsePrice(f.record.OriginalPrice)
		if err != nil {
			return api.ProductInput{}, apperrors.InvalidInput("original price must be a number")
		}
		input.OriginalPrice = &original
	}
	input.IsOnSale = input.OriginalPrice != nil

	if status == domain.StatusScheduled {
		at, err := parseScheduledAt(f.record.ScheduledAt)
		if err != nil {
			return api.ProductInput{}, apperrors.InvalidInput("schedule time must be a valid timestamp")
		}
		input.ScheduledAt = &at
	}
	return input, nil
}

func (f *ProductForm) syncImagesLocked() {
	f.record.MainImage = f.images.Main()
}

func parsePrice(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseScheduledAt accepts the picker's minute-resolution value or a full
// RFC 3339 timestamp and normalizes to UTC.
func parseScheduledAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(scheduledAtLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
