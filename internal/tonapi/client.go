// Package tonapi fetches NFT ownership from the tonapi.io indexer.
package tonapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/tonshowcase/showcase/internal/ownership"
)

const (
	DefaultBaseURL = "https://tonapi.io"
	maxBodySize    = 8 << 20
)

var ErrBadResponse = errors.New("tonapi: bad response")

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

var _ ownership.Source = (*Client)(nil)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
	}
}

// Fetch lists NFTs directly owned by owner.
func (c *Client) Fetch(ctx context.Context, owner string, limit int) ([]ownership.RawRecord, error) {
	endpoint := fmt.Sprintf("%s/v2/accounts/%s/nfts?limit=%d&offset=0&indirect_ownership=false",
		c.baseURL, url.PathEscape(owner), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return ParseItems(body)
}

// ParseItems decodes an accounts/{id}/nfts response body.
func ParseItems(body []byte) ([]ownership.RawRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrBadResponse)
	}

	items := gjson.GetBytes(body, "nft_items")
	if !items.IsArray() {
		return nil, fmt.Errorf("%w: nft_items missing", ErrBadResponse)
	}

	var out []ownership.RawRecord
	items.ForEach(func(_, item gjson.Result) bool {
		out = append(out, parseItem(item))
		return true
	})
	if out == nil {
		out = []ownership.RawRecord{}
	}
	return out, nil
}

func parseItem(item gjson.Result) ownership.RawRecord {
	rec := ownership.RawRecord{
		Address: item.Get("address").String(),
	}

	if meta := item.Get("metadata"); meta.IsObject() {
		rec.Metadata = &ownership.RawMetadata{
			Name:        meta.Get("name").String(),
			Description: meta.Get("description").String(),
			Image:       meta.Get("image").String(),
		}
	}

	if coll := item.Get("collection"); coll.IsObject() {
		rec.Collection = &ownership.RawCollection{Name: coll.Get("name").String()}
	}

	item.Get("previews").ForEach(func(_, p gjson.Result) bool {
		rec.Previews = append(rec.Previews, ownership.Preview{
			Resolution: p.Get("resolution").String(),
			URL:        p.Get("url").String(),
		})
		return true
	})

	return rec
}
