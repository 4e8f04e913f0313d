package services

import (
	"context"
	"testing"

	"github.com/kkhinlin/bookhunt2/internal/types"
)

func newTestShelf(books []*types.Book, history []*types.UserBook) (ShelfService, *fakeBookRepo, *fakeUserBookRepo) {
	bookRepo := &fakeBookRepo{books: books}
	userBookRepo := &fakeUserBookRepo{records: history}
	svc := NewShelfService(testLogger(), bookRepo, userBookRepo)
	return svc, bookRepo, userBookRepo
}

func TestAddToReadingListSeedsOnce(t *testing.T) {
	svc, _, userBooks := newTestShelf(nil, nil)

	for i := 0; i < 2; i++ {
		if err := svc.AddToReadingList(context.Background(), "X"); err != nil {
			t.Fatalf("AddToReadingList call %d error: %v", i+1, err)
		}
	}

	toRead, err := userBooks.ListByStatus(context.Background(), nil, types.StatusToRead)
	if err != nil {
		t.Fatalf("ListByStatus error: %v", err)
	}
	if len(toRead) != 1 {
		t.Fatalf("got %d to_read records, want 1", len(toRead))
	}
	if toRead[0].Opinion != nil {
		t.Fatalf("seeded record has opinion %v, want nil", toRead[0].Opinion)
	}
}

func TestAddToReadingListKeepsExistingEntry(t *testing.T) {
	existing := &types.UserBook{ID: "ub1", BookID: "X", Status: types.StatusToRead, Opinion: strPtr("loved it")}
	svc, _, userBooks := newTestShelf(nil, []*types.UserBook{existing})

	if err := svc.AddToReadingList(context.Background(), "X"); err != nil {
		t.Fatalf("AddToReadingList error: %v", err)
	}

	if len(userBooks.records) != 1 {
		t.Fatalf("got %d records, want the 1 existing entry", len(userBooks.records))
	}
	if userBooks.records[0].ID != "ub1" {
		t.Fatalf("existing entry replaced: %+v", userBooks.records[0])
	}
}

func TestAddToReadingListAfterAcceptFeedback(t *testing.T) {
	// feedback recording and reading-list seeding are separate writes:
	// the pending feedback record stays, a to_read record is added
	bookRepo := &fakeBookRepo{}
	userBookRepo := &fakeUserBookRepo{}
	recSvc := NewRecommendationService(testLogger(), spaceEmbedder(), bookRepo, userBookRepo)
	shelfSvc := NewShelfService(testLogger(), bookRepo, userBookRepo)

	if err := recSvc.RecordFeedback(context.Background(), "X", types.FeedbackAccept); err != nil {
		t.Fatalf("RecordFeedback error: %v", err)
	}
	if err := shelfSvc.AddToReadingList(context.Background(), "X"); err != nil {
		t.Fatalf("AddToReadingList error: %v", err)
	}

	if len(userBookRepo.records) != 2 {
		t.Fatalf("got %d records, want pending feedback plus to_read seed", len(userBookRepo.records))
	}
	first, second := userBookRepo.records[0], userBookRepo.records[1]
	if first.Status != types.StatusPending || !first.HasFeedback(types.FeedbackAccept) {
		t.Fatalf("feedback record = %+v", first)
	}
	if second.Status != types.StatusToRead || second.Feedback != nil {
		t.Fatalf("seeded record = %+v", second)
	}
}

func TestAddPastReadCreatesBookAndRecord(t *testing.T) {
	svc, bookRepo, userBooks := newTestShelf(nil, nil)

	created, err := svc.AddPastRead(context.Background(), "Dune", "a classic")
	if err != nil {
		t.Fatalf("AddPastRead error: %v", err)
	}
	if !created {
		t.Fatal("AddPastRead reported update for a new record")
	}

	book, err := bookRepo.GetByTitle(context.Background(), nil, "Dune")
	if err != nil {
		t.Fatalf("book was not created: %v", err)
	}
	rec, err := userBooks.GetByBookID(context.Background(), nil, book.ID)
	if err != nil {
		t.Fatalf("user book was not created: %v", err)
	}
	if rec.Status != types.StatusRead || rec.Opinion == nil || *rec.Opinion != "a classic" {
		t.Fatalf("record = %+v, want read with opinion", rec)
	}
}

func TestAddPastReadUpdatesExistingRecord(t *testing.T) {
	book := testBook("1", "Dune", "", "")
	existing := &types.UserBook{ID: "ub1", BookID: "1", Status: types.StatusPending}
	svc, _, userBooks := newTestShelf([]*types.Book{book}, []*types.UserBook{existing})

	created, err := svc.AddPastRead(context.Background(), "Dune", "slow start")
	if err != nil {
		t.Fatalf("AddPastRead error: %v", err)
	}
	if created {
		t.Fatal("AddPastRead reported create for an existing record")
	}

	if len(userBooks.records) != 1 {
		t.Fatalf("got %d records, want 1", len(userBooks.records))
	}
	rec := userBooks.records[0]
	if rec.Status != types.StatusRead || rec.Opinion == nil || *rec.Opinion != "slow start" {
		t.Fatalf("record = %+v, want read with updated opinion", rec)
	}
}

func TestReadingListResolvesDisplayFields(t *testing.T) {
	book := testBook("1", "Dune", "", "SciFi")
	book.Author = &types.Author{ID: "a1", Name: "Frank Herbert"}
	history := []*types.UserBook{
		{ID: "ub1", BookID: "1", Status: types.StatusToRead},
		{ID: "ub2", BookID: "missing", Status: types.StatusToRead},
	}
	svc, _, _ := newTestShelf([]*types.Book{book}, history)

	entries, err := svc.ReadingList(context.Background())
	if err != nil {
		t.Fatalf("ReadingList error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (dangling record skipped)", len(entries))
	}
	if entries[0].Title != "Dune" || entries[0].Author != "Frank Herbert" || entries[0].Genre != "SciFi" {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestListPastReadsPagination(t *testing.T) {
	books := []*types.Book{testBook("1", "Dune", "", "")}
	var history []*types.UserBook
	for i := 0; i < 3; i++ {
		history = append(history, &types.UserBook{
			ID:     fmtID(i),
			BookID: "1",
			Status: types.StatusRead,
		})
	}
	svc, _, _ := newTestShelf(books, history)

	page, err := svc.ListPastReads(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ListPastReads error: %v", err)
	}
	if page.Total != 3 || page.Pages != 2 || len(page.Items) != 2 {
		t.Fatalf("page = %+v, want total 3 pages 2 items 2", page)
	}
	if page.Items[0].BookTitle != "Dune" {
		t.Fatalf("title = %q, want Dune", page.Items[0].BookTitle)
	}
}

func fmtID(i int) string {
	return string(rune('a' + i))
}
