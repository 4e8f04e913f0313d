package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/utils"
)

// cachedEmbedder is a read-through cache over an Embedder. Keys are derived
// from the exact input text, so identical strings always hit the same entry
// and the cache never changes ranking behavior.
type cachedEmbedder struct {
	log   *logger.Logger
	inner Embedder
	rdb   *goredis.Client
	ttl   time.Duration
}

// NewCachedEmbedder wraps inner with a Redis cache when REDIS_ADDR is set.
// Without it the inner embedder is returned unchanged.
func NewCachedEmbedder(log *logger.Logger, inner Embedder) (Embedder, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		log.Debug("REDIS_ADDR not set, embedding cache disabled")
		return inner, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttlHours := utils.GetEnvAsInt("EMBED_CACHE_TTL_HOURS", 24*7, log)

	return &cachedEmbedder{
		log:   log.With("service", "CachedEmbedder"),
		inner: inner,
		rdb:   rdb,
		ttl:   time.Duration(ttlHours) * time.Hour,
	}, nil
}

func embedCacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embed:" + hex.EncodeToString(sum[:])
}

func (c *cachedEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	out := make([][]float32, len(inputs))

	missing := make([]string, 0, len(inputs))
	missingIdx := make([]int, 0, len(inputs))
	for i, text := range inputs {
		raw, err := c.rdb.Get(ctx, embedCacheKey(text)).Bytes()
		if err != nil {
			if err != goredis.Nil {
				c.log.Warn("Embedding cache read failed", "error", err)
			}
			missing = append(missing, text)
			missingIdx = append(missingIdx, i)
			continue
		}
		var vec []float32
		if err := json.Unmarshal(raw, &vec); err != nil {
			missing = append(missing, text)
			missingIdx = append(missingIdx, i)
			continue
		}
		out[i] = vec
	}

	if len(missing) == 0 {
		return out, nil
	}

	vecs, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, vec := range vecs {
		out[missingIdx[j]] = vec
		raw, mErr := json.Marshal(vec)
		if mErr != nil {
			continue
		}
		if sErr := c.rdb.Set(ctx, embedCacheKey(missing[j]), raw, c.ttl).Err(); sErr != nil {
			c.log.Warn("Embedding cache write failed", "error", sErr)
		}
	}

	return out, nil
}
