package research

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tanmay/paper-scout/internal/ai"
	"github.com/tanmay/paper-scout/internal/models"
)

// fakeCompleter records every prompt it receives and delegates to fn.
type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	fn      func(prompt string, opts ai.Options) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return "", errors.New("no completion configured")
	}
	return fn(prompt, opts)
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// fakeSearcher serves a fixed paper list or error.
type fakeSearcher struct {
	mu     sync.Mutex
	calls  int
	papers []models.Paper
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]models.Paper, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if len(f.papers) > maxResults {
		return f.papers[:maxResults], nil
	}
	return f.papers, nil
}

// fakeRecords is an in-memory RecordStore.
type fakeRecords struct {
	mu        sync.Mutex
	recs      map[string]*models.Record
	insertErr error
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{recs: map[string]*models.Record{}}
}

func (f *fakeRecords) Insert(ctx context.Context, rec *models.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return "", f.insertErr
	}
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now()
	f.recs[rec.ID.Hex()] = rec
	return rec.ID.Hex(), nil
}

func (f *fakeRecords) ListByUser(ctx context.Context, userID string) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Record
	for _, r := range f.recs {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRecords) GetByID(ctx context.Context, id string) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recs[id]
	if !ok {
		return nil, fmt.Errorf("record %s not found", id)
	}
	return r, nil
}

func (f *fakeRecords) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.recs, id)
	return nil
}

func (f *fakeRecords) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recs)
}

// fakeFiles is an in-memory FileStore.
type fakeFiles struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{objects: map[string][]byte{}}
}

func (f *fakeFiles) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[key] = data
	return nil
}

func (f *fakeFiles) Download(ctx context.Context, key string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("object %s not found", key)
	}
	return data, "text/markdown", nil
}

func (f *fakeFiles) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}
