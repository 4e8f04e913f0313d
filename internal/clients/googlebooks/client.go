package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/kkhinlin/bookhunt2/internal/logger"
)

// Volume is one item from the Google Books volumes API.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	PublishedDate string   `json:"publishedDate"`
	PageCount     int      `json:"pageCount"`
	Categories    []string `json:"categories"`
	AverageRating float64  `json:"averageRating"`
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) *Client {
	baseURL := os.Getenv("GOOGLE_BOOKS_BASE_URL")
	if baseURL == "" {
		baseURL = "https://www.googleapis.com"
	}
	return &Client{
		log:        log.With("client", "GoogleBooks"),
		baseURL:    baseURL,
		apiKey:     os.Getenv("GOOGLE_BOOKS_API_KEY"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchVolumes pages through the volumes API until maxResults volumes are
// collected or the API runs out of items.
func (c *Client) FetchVolumes(ctx context.Context, query string, maxResults, batchSize int) ([]Volume, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if batchSize < 1 || batchSize > 40 {
		batchSize = 40
	}

	var volumes []Volume
	startIndex := 0

	for len(volumes) < maxResults {
		batch, err := c.fetchBatch(ctx, query, startIndex, batchSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			c.log.Info("No more volumes found", "start_index", startIndex)
			break
		}
		volumes = append(volumes, batch...)
		c.log.Debug("Fetched volume batch", "start_index", startIndex, "count", len(batch))
		startIndex += batchSize
	}

	if len(volumes) > maxResults {
		volumes = volumes[:maxResults]
	}
	return volumes, nil
}

func (c *Client) fetchBatch(ctx context.Context, query string, startIndex, batchSize int) ([]Volume, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(batchSize))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	reqURL := c.baseURL + "/books/v1/volumes?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google books request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books http %d", resp.StatusCode)
	}

	var decoded volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("google books decode error: %w", err)
	}
	return decoded.Items, nil
}
