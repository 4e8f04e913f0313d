package repos

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Author{},
		&types.Genre{},
		&types.Book{},
		&types.Review{},
		&types.UserBook{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func strPtr(s string) *string { return &s }

func TestBookRepoRoundTrip(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	ctx := context.Background()

	genreRepo := NewGenreRepo(db, log)
	genres, err := genreRepo.Create(ctx, nil, []*types.Genre{{Name: "SciFi"}})
	if err != nil {
		t.Fatalf("create genre: %v", err)
	}

	authorRepo := NewAuthorRepo(db, log)
	authors, err := authorRepo.Create(ctx, nil, []*types.Author{{Name: "Frank Herbert"}})
	if err != nil {
		t.Fatalf("create author: %v", err)
	}

	bookRepo := NewBookRepo(db, log)
	books, err := bookRepo.Create(ctx, nil, []*types.Book{{
		Title:       "Dune",
		Description: strPtr("sand and spice"),
		Subjects:    []string{"space", "politics"},
		AuthorID:    &authors[0].ID,
		GenreID:     &genres[0].ID,
	}})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}
	if books[0].ID == "" {
		t.Fatal("book id was not generated")
	}

	got, err := bookRepo.GetByID(ctx, nil, books[0].ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if got.Title != "Dune" {
		t.Fatalf("title = %q, want Dune", got.Title)
	}
	if got.Genre == nil || got.Genre.Name != "SciFi" {
		t.Fatalf("genre not preloaded: %+v", got.Genre)
	}
	if got.Author == nil || got.Author.Name != "Frank Herbert" {
		t.Fatalf("author not preloaded: %+v", got.Author)
	}
	if len(got.Subjects) != 2 || got.Subjects[0] != "space" {
		t.Fatalf("subjects = %v, want [space politics]", got.Subjects)
	}

	byGenre, err := bookRepo.ListByGenreName(ctx, nil, "SciFi")
	if err != nil {
		t.Fatalf("list by genre: %v", err)
	}
	if len(byGenre) != 1 || byGenre[0].ID != books[0].ID {
		t.Fatalf("list by genre = %+v, want the one book", byGenre)
	}

	byOtherGenre, err := bookRepo.ListByGenreName(ctx, nil, "Romance")
	if err != nil {
		t.Fatalf("list by other genre: %v", err)
	}
	if len(byOtherGenre) != 0 {
		t.Fatalf("list by other genre returned %d books, want 0", len(byOtherGenre))
	}

	exists, err := bookRepo.TitleExists(ctx, nil, "Dune")
	if err != nil {
		t.Fatalf("title exists: %v", err)
	}
	if !exists {
		t.Fatal("TitleExists = false for saved title")
	}

	if _, err := bookRepo.GetByID(ctx, nil, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("get missing book error = %v, want ErrRecordNotFound", err)
	}
}

func TestUserBookRepoRoundTrip(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	ctx := context.Background()

	repo := NewUserBookRepo(db, log)

	created, err := repo.Create(ctx, nil, []*types.UserBook{{BookID: "b1"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created[0].Status != types.StatusPending {
		t.Fatalf("status = %q, want default pending", created[0].Status)
	}

	created[0].Status = types.StatusRead
	created[0].Feedback = strPtr(types.FeedbackReject)
	if _, err := repo.Update(ctx, nil, created[0]); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByBookID(ctx, nil, "b1")
	if err != nil {
		t.Fatalf("get by book id: %v", err)
	}
	if got.Status != types.StatusRead || !got.HasFeedback(types.FeedbackReject) {
		t.Fatalf("record = %+v, want read/reject", got)
	}

	if _, err := repo.GetByBookIDAndStatus(ctx, nil, "b1", types.StatusToRead); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("get by status error = %v, want ErrRecordNotFound", err)
	}

	read, err := repo.ListByStatus(ctx, nil, types.StatusRead)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(read) != 1 {
		t.Fatalf("got %d read records, want 1", len(read))
	}
}

func TestUserBookRepoListPage(t *testing.T) {
	db := testDB(t)
	repo := NewUserBookRepo(db, testLogger(t))
	ctx := context.Background()

	var records []*types.UserBook
	for i := 0; i < 5; i++ {
		records = append(records, &types.UserBook{BookID: "b1", Status: types.StatusRead})
	}
	if _, err := repo.Create(ctx, nil, records); err != nil {
		t.Fatalf("create: %v", err)
	}

	page, total, err := repo.ListPage(ctx, nil, 2, 2)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}

	last, total, err := repo.ListPage(ctx, nil, 3, 2)
	if err != nil {
		t.Fatalf("list last page: %v", err)
	}
	if total != 5 || len(last) != 1 {
		t.Fatalf("last page size = %d, want 1", len(last))
	}
}

func TestReviewRepoRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewReviewRepo(db, testLogger(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, nil, []*types.Review{
		{BookID: "b1", Rating: 5, Comment: "great"},
		{BookID: "b1", Rating: 2},
		{BookID: "b2", Rating: 4},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListByBookID(ctx, nil, "b1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reviews for b1, want 2", len(got))
	}
}
