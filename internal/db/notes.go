// ABOUTME: Note blob codec and the load/save adapter over a persistence slot.
// ABOUTME: The whole collection is one JSON array stored under a fixed key.

package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"github.com/harper/atlas/internal/models"
)

// BlobKey is the fixed key holding the serialized note collection.
const BlobKey = "agentic-mobile-notes:v1"

var (
	ErrMissingField = errors.New("missing required field")
	ErrDuplicateID  = errors.New("duplicate note id")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NoteRecord is the stored shape of a note. Title and content are pointers so
// an absent field can be told apart from an empty one; tags are optional.
type NoteRecord struct {
	ID        string    `json:"id" validate:"required"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt" validate:"required,gtefield=CreatedAt"`
}

func FromModel(note *models.Note) *NoteRecord {
	title, content := note.Title, note.Content
	return &NoteRecord{
		ID:        note.ID,
		Title:     &title,
		Content:   &content,
		Tags:      note.Tags,
		CreatedAt: note.CreatedAt.UTC(),
		UpdatedAt: note.UpdatedAt.UTC(),
	}
}

// ToModel validates the record and converts it, normalizing tags on the way.
func (r *NoteRecord) ToModel() (*models.Note, error) {
	if r.Title == nil {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	if r.Content == nil {
		return nil, fmt.Errorf("%w: content", ErrMissingField)
	}
	if err := validate.Struct(r); err != nil {
		return nil, fmt.Errorf("invalid note record: %w", err)
	}
	return &models.Note{
		ID:        r.ID,
		Title:     *r.Title,
		Content:   *r.Content,
		Tags:      models.NormalizeTags(r.Tags),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// EncodeNotes serializes the collection as a JSON array.
func EncodeNotes(notes []*models.Note) ([]byte, error) {
	records := make([]*NoteRecord, 0, len(notes))
	for _, n := range notes {
		records = append(records, FromModel(n))
	}
	return json.Marshal(records)
}

// DecodeNotes parses a blob. A blob that is not a JSON array of objects is an
// error; individual records that fail validation are skipped and reported in
// rejected. The returned notes are sorted by recency.
func DecodeNotes(data []byte) (notes []*models.Note, rejected []error, err error) {
	var records []*NoteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("parse notes: %w", err)
	}

	notes = make([]*models.Note, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r == nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w: null record", i, ErrMissingField))
			continue
		}
		note, err := r.ToModel()
		if err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if _, dup := seen[note.ID]; dup {
			rejected = append(rejected, fmt.Errorf("record %d: %w: %s", i, ErrDuplicateID, note.ID))
			continue
		}
		seen[note.ID] = struct{}{}
		notes = append(notes, note)
	}

	models.SortByRecency(notes)
	return notes, rejected, nil
}

// Adapter loads and saves the note blob. It never returns errors: failures are
// logged and degrade to an empty collection or a skipped write. A nil slot
// means persistence is unavailable.
type Adapter struct {
	slot   Slot
	key    string
	logger *slog.Logger

	// digest of the last blob written, to skip identical rewrites
	lastDigest uint64
	hasDigest  bool
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithKey overrides BlobKey.
func WithKey(key string) AdapterOption {
	return func(a *Adapter) {
		a.key = key
	}
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func NewAdapter(slot Slot, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		slot:   slot,
		key:    BlobKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Available reports whether a slot is attached.
func (a *Adapter) Available() bool {
	return a != nil && a.slot != nil
}

// Load reads the persisted collection, returning an empty slice on any failure.
func (a *Adapter) Load() []*models.Note {
	if !a.Available() {
		return []*models.Note{}
	}

	data, err := a.slot.Get(a.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []*models.Note{}
	}
	if err != nil {
		a.logger.Error("failed to load notes from storage", slog.Any("error", err))
		return []*models.Note{}
	}

	notes, rejected, err := DecodeNotes(data)
	if err != nil {
		a.logger.Error("failed to load notes from storage", slog.Any("error", err))
		return []*models.Note{}
	}
	for _, r := range rejected {
		a.logger.Warn("skipping invalid note record", slog.Any("error", r))
	}

	a.lastDigest, a.hasDigest = xxhash.Sum64(data), true
	a.logger.Debug("loaded notes", slog.Int("count", len(notes)))
	return notes
}

// Save overwrites the persisted blob with the full collection.
func (a *Adapter) Save(notes []*models.Note) {
	if !a.Available() {
		return
	}

	data, err := EncodeNotes(notes)
	if err != nil {
		a.logger.Error("failed to encode notes", slog.Any("error", err))
		return
	}

	digest := xxhash.Sum64(data)
	if a.hasDigest && digest == a.lastDigest {
		return
	}

	if err := a.slot.Set(a.key, data); err != nil {
		a.logger.Error("failed to save notes", slog.Any("error", err))
		return
	}
	a.lastDigest, a.hasDigest = digest, true
	a.logger.Debug("saved notes", slog.Int("count", len(notes)), slog.Int("bytes", len(data)))
}
