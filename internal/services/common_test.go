package services

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

func testLogger() *logger.Logger {
	log, err := logger.New("development")
	if err != nil {
		panic(err)
	}
	return log
}

// stubEmbedder returns canned vectors keyed by exact input text.
type stubEmbedder struct {
	mu       sync.Mutex
	vectors  map[string][]float32
	fallback []float32
	fail     error
	inputs   []string
}

func (e *stubEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail != nil {
		return nil, e.fail
	}
	e.inputs = append(e.inputs, inputs...)
	out := make([][]float32, len(inputs))
	for i, text := range inputs {
		if vec, ok := e.vectors[text]; ok {
			out[i] = vec
			continue
		}
		out[i] = e.fallback
	}
	return out, nil
}

func (e *stubEmbedder) countInput(text string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, in := range e.inputs {
		if in == text {
			n++
		}
	}
	return n
}

type fakeBookRepo struct {
	mu    sync.Mutex
	books []*types.Book
}

func (r *fakeBookRepo) Create(ctx context.Context, tx *gorm.DB, books []*types.Book) ([]*types.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range books {
		if b.ID == "" {
			b.ID = "book-" + b.Title
		}
		r.books = append(r.books, b)
	}
	return books, nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, tx *gorm.DB, bookID string) (*types.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.ID == bookID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBookRepo) GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*types.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.Title == title {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBookRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*types.Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

func (r *fakeBookRepo) ListByGenreName(ctx context.Context, tx *gorm.DB, genreName string) ([]*types.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.Book
	for _, b := range r.books {
		if b.GenreName() == genreName {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) TitleExists(ctx context.Context, tx *gorm.DB, title string) (bool, error) {
	_, err := r.GetByTitle(ctx, tx, title)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type fakeUserBookRepo struct {
	mu      sync.Mutex
	records []*types.UserBook
	nextID  int
}

func (r *fakeUserBookRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.UserBook) ([]*types.UserBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		if rec.ID == "" {
			r.nextID++
			rec.ID = fmt.Sprintf("ub-%d", r.nextID)
		}
		if rec.Status == "" {
			rec.Status = types.StatusPending
		}
		r.records = append(r.records, rec)
	}
	return records, nil
}

func (r *fakeUserBookRepo) Update(ctx context.Context, tx *gorm.DB, record *types.UserBook) (*types.UserBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == record.ID {
			r.records[i] = record
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserBookRepo) GetByBookID(ctx context.Context, tx *gorm.DB, bookID string) (*types.UserBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.BookID == bookID {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserBookRepo) GetByBookIDAndStatus(ctx context.Context, tx *gorm.DB, bookID, status string) (*types.UserBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.BookID == bookID && rec.Status == status {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserBookRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.UserBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*types.UserBook, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *fakeUserBookRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.UserBook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.UserBook
	for _, rec := range r.records {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeUserBookRepo) ListPage(ctx context.Context, tx *gorm.DB, page, perPage int) ([]*types.UserBook, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.records))
	start := (page - 1) * perPage
	if start >= len(r.records) {
		return nil, total, nil
	}
	end := start + perPage
	if end > len(r.records) {
		end = len(r.records)
	}
	out := make([]*types.UserBook, end-start)
	copy(out, r.records[start:end])
	return out, total, nil
}
