// ABOUTME: Note repository owning the in-memory collection for a session.
// ABOUTME: Every mutation re-sorts by recency and writes the full snapshot through.

package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/search"
)

// MinPrefixLen is the shortest id prefix FindByPrefix accepts.
const MinPrefixLen = 6

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrPrefixTooShort  = fmt.Errorf("prefix must be at least %d characters", MinPrefixLen)
	ErrAmbiguousPrefix = errors.New("prefix matches multiple notes")
)

// Persister loads the collection once and receives every new snapshot.
type Persister interface {
	Load() []*models.Note
	Save(notes []*models.Note)
}

type Repository struct {
	mu     sync.Mutex
	notes  []*models.Note
	store  Persister
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces time.Now for timestamping.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// New seeds a repository from store. A nil store keeps notes in memory only.
func New(store Persister, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if store != nil {
		r.notes = store.Load()
	}
	if r.notes == nil {
		r.notes = []*models.Note{}
	}
	models.SortByRecency(r.notes)
	return r
}

// Create adds a note built from draft and returns a copy of it.
func (r *Repository) Create(d models.Draft) *models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	note := models.NewNoteAt(d.Title, d.Content, d.Tags, r.now())
	for r.indexLocked(note.ID) >= 0 {
		note.ID = models.NewID()
	}

	r.notes = append([]*models.Note{note}, r.notes...)
	r.commitLocked()
	r.logger.Debug("created note", slog.String("id", note.ID), slog.Int("tags", len(note.Tags)))
	return note.Clone()
}

// Update replaces title, content and tags of the note with id. The title is
// not defaulted, so an edit may clear it.
func (r *Repository) Update(id string, d models.Draft) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}

	note := r.notes[i]
	note.Apply(d)
	note.TouchAt(r.now())

	r.commitLocked()
	r.logger.Debug("updated note", slog.String("id", id))
	return note.Clone(), nil
}

// Delete removes the note with id. Deleting an unknown id is a no-op.
func (r *Repository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return
	}
	r.notes = slices.Delete(r.notes, i, i+1)
	r.commitLocked()
	r.logger.Debug("deleted note", slog.String("id", id))
}

// Submit handles a form submission: title and content are trimmed, a blank
// draft is ignored, and the draft either updates editingID or creates a note.
// saved is false when nothing was written.
func (r *Repository) Submit(editingID string, d models.Draft) (note *models.Note, saved bool, err error) {
	d = d.Trimmed()
	if d.Title == "" && d.Content == "" {
		return nil, false, nil
	}
	if editingID != "" {
		note, err = r.Update(editingID, d)
		if err != nil {
			return nil, false, err
		}
		return note, true, nil
	}
	return r.Create(d), true, nil
}

// Import merges previously exported notes, keeping their ids and timestamps.
// Notes whose id is already present, or with neither title nor content, are
// skipped. The collection is written once at the end.
func (r *Repository) Import(incoming []*models.Note) (added, skipped int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, in := range incoming {
		if in == nil || (strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Content) == "") {
			skipped++
			continue
		}
		note := in.Clone()
		if note.ID == "" {
			note.ID = models.NewID()
		}
		if r.indexLocked(note.ID) >= 0 {
			skipped++
			continue
		}

		now := r.now()
		if note.CreatedAt.IsZero() {
			note.CreatedAt = now
		}
		if note.UpdatedAt.IsZero() {
			note.UpdatedAt = note.CreatedAt
		}
		note.TouchAt(note.UpdatedAt)
		note.Tags = models.NormalizeTags(note.Tags)

		r.notes = append(r.notes, note)
		added++
	}

	if added > 0 {
		r.commitLocked()
	}
	r.logger.Debug("imported notes", slog.Int("added", added), slog.Int("skipped", skipped))
	return added, skipped
}

// ListAll returns copies of every note, newest first.
func (r *Repository) ListAll() []*models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Get returns a copy of the note with id.
func (r *Repository) Get(id string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return r.notes[i].Clone(), nil
}

// FindByPrefix resolves a full id or a unique id prefix.
func (r *Repository) FindByPrefix(prefix string) (*models.Note, error) {
	if note, err := r.Get(prefix); err == nil {
		return note, nil
	}
	if len(prefix) < MinPrefixLen {
		return nil, ErrPrefixTooShort
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*models.Note
	for _, n := range r.notes {
		if strings.HasPrefix(n.ID, prefix) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, prefix)
	case 1:
		return matches[0].Clone(), nil
	default:
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(matches))
	}
}

// DistinctTags returns every tag in use, once, in locale-aware order.
func (r *Repository) DistinctTags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return search.DistinctTags(r.notes)
}

// TagCounts returns each tag in use with the number of notes carrying it.
func (r *Repository) TagCounts() []search.TagCount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return search.CountTags(r.notes)
}

// Filter applies the query engine to the current snapshot.
func (r *Repository) Filter(term string, requiredTags []string) []*models.Note {
	return search.Filter(r.ListAll(), term, requiredTags)
}

// Resort re-applies the recency order. The order is already maintained by
// every mutation, so this only persists when something was out of place.
func (r *Repository) Resort() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if models.IsSortedByRecency(r.notes) {
		return
	}
	r.commitLocked()
}

func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

func (r *Repository) indexLocked(id string) int {
	return slices.IndexFunc(r.notes, func(n *models.Note) bool {
		return n.ID == id
	})
}

func (r *Repository) commitLocked() {
	models.SortByRecency(r.notes)
	if r.store != nil {
		r.store.Save(r.snapshotLocked())
	}
}

func (r *Repository) snapshotLocked() []*models.Note {
	out := make([]*models.Note, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Clone()
	}
	return out
}
