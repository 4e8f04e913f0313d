package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/repos"
	"github.com/kkhinlin/bookhunt2/internal/types"
	"github.com/kkhinlin/bookhunt2/internal/utils"
)

// ErrEmbeddingUnavailable wraps embedding-provider failures so the HTTP
// layer can distinguish them from validation and persistence errors.
var ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

// DefaultDescription stands in for books ingested without one.
const DefaultDescription = "No description available"

// subjectBoost is added once per subject tag found in the query.
const subjectBoost = 0.1

type RecommendationService interface {
	// Recommend returns up to topN books ranked against the query,
	// excluding already-read and rejected books. An empty query yields
	// an empty result without calling the embedder.
	Recommend(ctx context.Context, query, genre string, topN int) ([]*types.Book, error)
	// RecordFeedback stores the feedback value on the book's record,
	// creating a pending record when none exists. Reading-list seeding
	// is a separate operation (ShelfService.AddToReadingList).
	RecordFeedback(ctx context.Context, bookID, feedback string) error
}

type recommendationService struct {
	log          *logger.Logger
	embedder     Embedder
	bookRepo     repos.BookRepo
	userBookRepo repos.UserBookRepo

	embedConcurrency int
}

func NewRecommendationService(log *logger.Logger, embedder Embedder, bookRepo repos.BookRepo, userBookRepo repos.UserBookRepo) RecommendationService {
	svcLog := log.With("service", "RecommendationService")
	conc := utils.GetEnvAsInt("EMBED_CONCURRENCY", 8, log)
	if conc < 1 {
		conc = 1
	}
	return &recommendationService{
		log:              svcLog,
		embedder:         embedder,
		bookRepo:         bookRepo,
		userBookRepo:     userBookRepo,
		embedConcurrency: conc,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, query, genre string, topN int) ([]*types.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if topN < 1 {
		topN = 1
	}

	catalog, err := s.bookRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	history, err := s.userBookRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load user history: %w", err)
	}

	candidates := filterCandidates(catalog, history, genre)
	if len(candidates) == 0 {
		return nil, nil
	}

	return s.rank(ctx, query, candidates, topN)
}

// filterCandidates drops books the user has already read or rejected and,
// when genre is non-empty, books whose genre label differs from it. Pure;
// preserves catalog order.
func filterCandidates(catalog []*types.Book, history []*types.UserBook, genre string) []*types.Book {
	excluded := make(map[string]bool, len(history))
	for _, record := range history {
		if record.Status == types.StatusRead || record.HasFeedback(types.FeedbackReject) {
			excluded[record.BookID] = true
		}
	}

	candidates := make([]*types.Book, 0, len(catalog))
	for _, book := range catalog {
		if excluded[book.ID] {
			continue
		}
		if genre != "" && book.GenreName() != genre {
			continue
		}
		candidates = append(candidates, book)
	}
	return candidates
}

func bookDescription(book *types.Book) string {
	if book.Description != nil && *book.Description != "" {
		return *book.Description
	}
	return DefaultDescription
}

type scoredBook struct {
	book  *types.Book
	score float64
}

// rank embeds the query once, embeds candidate descriptions with bounded
// concurrency, scores them and returns the topN highest. Any embedding
// failure aborts the whole pass: a silently zero-scored candidate would
// reorder results in a way the caller cannot detect.
func (s *recommendationService) rank(ctx context.Context, query string, candidates []*types.Book, topN int) ([]*types.Book, error) {
	queryVecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: query embedding: %v", ErrEmbeddingUnavailable, err)
	}
	queryVec := queryVecs[0]

	bookVecs := make([][]float32, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.embedConcurrency)
	for i, book := range candidates {
		i, book := i, book
		g.Go(func() error {
			vecs, embErr := s.embedder.Embed(gctx, []string{bookDescription(book)})
			if embErr != nil {
				return embErr
			}
			bookVecs[i] = vecs[0]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: candidate embedding: %v", ErrEmbeddingUnavailable, err)
	}

	queryLower := strings.ToLower(query)
	scored := make([]scoredBook, len(candidates))
	for i, book := range candidates {
		score := float64(CosineSimilarity(queryVec, bookVecs[i]))

		if book.NumberOfPages != nil {
			// logarithmic page boost, sub-dominant to similarity
			score += math.Log(float64(*book.NumberOfPages)+1) / 500
		}

		for _, subject := range book.Subjects {
			if subject == "" {
				continue
			}
			if strings.Contains(queryLower, strings.ToLower(subject)) {
				score += subjectBoost
			}
		}

		scored[i] = scoredBook{book: book, score: score}
	}

	// stable sort keeps catalog order among equal scores
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if topN > len(scored) {
		topN = len(scored)
	}
	top := make([]*types.Book, 0, topN)
	for _, sb := range scored[:topN] {
		top = append(top, sb.book)
	}

	s.log.Debug("Ranked candidates",
		"query", query,
		"candidates", len(candidates),
		"returned", len(top),
	)
	return top, nil
}

func (s *recommendationService) RecordFeedback(ctx context.Context, bookID, feedback string) error {
	if bookID == "" || feedback == "" {
		return fmt.Errorf("book id and feedback are required")
	}

	existing, err := s.userBookRepo.GetByBookID(ctx, nil, bookID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up user book: %w", err)
		}
		// unknown book ids are tolerated: catalogs populate lazily
		record := &types.UserBook{
			BookID:   bookID,
			Status:   types.StatusPending,
			Feedback: &feedback,
		}
		if _, err := s.userBookRepo.Create(ctx, nil, []*types.UserBook{record}); err != nil {
			return fmt.Errorf("failed to create feedback record: %w", err)
		}
		return nil
	}

	existing.Feedback = &feedback
	if _, err := s.userBookRepo.Update(ctx, nil, existing); err != nil {
		return fmt.Errorf("failed to update feedback record: %w", err)
	}
	return nil
}
