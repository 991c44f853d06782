package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/fetch"
)

// MaxUploadSize is the per-file size ceiling enforced before any network
// call.
const MaxUploadSize = 10 << 20 // 10 MiB

// DefaultClearDelay is how long completed progress entries linger before
// they are cleared.
const DefaultClearDelay = 3 * time.Second

// UploadStatus is the lifecycle of one tracked upload.
type UploadStatus string

const (
	UploadRunning   UploadStatus = "uploading"
	UploadCompleted UploadStatus = "completed"
	UploadFailed    UploadStatus = "error"
)

// UploadEntry is one file's progress record.
type UploadEntry struct {
	ID     string
	Name   string
	Status UploadStatus
	URL    string
	Err    string
}

// RejectedFile is a file that failed client-side validation and was
// excluded from the batch.
type RejectedFile struct {
	Name   string
	Reason string
}

// BatchResult reports a settled upload batch. Partial success is a normal
// outcome, not an error.
type BatchResult struct {
	Attempted int
	Succeeded int
	Failed    int
	Rejected  []RejectedFile
}

// UploadCenter handles batch image intake for the admin console. Files
// failing validation never reach the network; the rest upload concurrently
// with per-file progress tracking. Successful uploads are prepended to a
// session-local gallery that is not persisted anywhere.
type UploadCenter struct {
	mu sync.Mutex

	client     *api.Client
	logger     *slog.Logger
	clearDelay time.Duration

	progress map[string]UploadEntry
	gallery  []string
}

// NewUploadCenter creates the upload controller.
func NewUploadCenter(client *api.Client, logger *slog.Logger) *UploadCenter {
	return &UploadCenter{
		client:     client,
		logger:     logger,
		clearDelay: DefaultClearDelay,
		progress:   make(map[string]UploadEntry),
	}
}

// SetClearDelay overrides how long settled progress entries linger.
func (u *UploadCenter) SetClearDelay(d time.Duration) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.clearDelay = d
}

// ValidateFile checks a file against the client-side rules: an image MIME
// type and a size within the ceiling.
func ValidateFile(f api.File) error {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return fmt.Errorf("%s is not an image", f.Name)
	}
	if f.Size > MaxUploadSize {
		return fmt.Errorf("%s exceeds the 10 MiB limit", f.Name)
	}
	return nil
}

// Upload validates the batch, uploads the valid files concurrently under
// the given category, and blocks until every upload settles. Rejected
// files are reported in the result without blocking the rest.
func (u *UploadCenter) Upload(ctx context.Context, files []api.File, category string) BatchResult {
	result := BatchResult{}

	type job struct {
		id   string
		file api.File
	}
	var jobs []job

	u.mu.Lock()
	for _, f := range files {
		if err := ValidateFile(f); err != nil {
			result.Rejected = append(result.Rejected, RejectedFile{Name: f.Name, Reason: err.Error()})
			continue
		}
		id := uuid.New().String()
		u.progress[id] = UploadEntry{ID: id, Name: f.Name, Status: UploadRunning}
		jobs = append(jobs, job{id: id, file: f})
	}
	u.mu.Unlock()

	result.Attempted = len(jobs)
	if len(jobs) == 0 {
		return result
	}

	urls := make([]string, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			uploaded, err := u.client.Admin.Upload(ctx, j.file, category)

			u.mu.Lock()
			entry := u.progress[j.id]
			if err != nil {
				entry.Status = UploadFailed
				entry.Err = fetch.Message(err)
			} else {
				entry.Status = UploadCompleted
				entry.URL = uploaded.ImageURL
				urls[i] = uploaded.ImageURL
			}
			u.progress[j.id] = entry
			u.mu.Unlock()

			if err != nil {
				u.logger.WarnContext(ctx, "image upload failed",
					slog.String("file", j.file.Name),
					slog.String("error", err.Error()),
				)
			}
		}(i, j)
	}
	wg.Wait()

	u.mu.Lock()
	for _, j := range jobs {
		if u.progress[j.id].Status == UploadCompleted {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}
	// Prepend successes so the newest uploads lead the gallery, keeping
	// the batch's own order within itself.
	var succeeded []string
	for _, url := range urls {
		if url != "" {
			succeeded = append(succeeded, url)
		}
	}
	u.gallery = append(succeeded, u.gallery...)
	clearDelay := u.clearDelay
	u.mu.Unlock()

	time.AfterFunc(clearDelay, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		for _, j := range jobs {
			delete(u.progress, j.id)
		}
	})

	return result
}

// Progress returns a copy of the current progress entries.
func (u *UploadCenter) Progress() map[string]UploadEntry {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make(map[string]UploadEntry, len(u.progress))
	for k, v := range u.progress {
		out[k] = v
	}
	return out
}

// Gallery returns the session-local gallery, newest uploads first.
func (u *UploadCenter) Gallery() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string{}, u.gallery...)
}
