// Package api talks to the asset server: TOC loading, asset search and asset
// extraction, each a single POST request/response exchange.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kk-code-lab/tocview/internal/logging"
	"github.com/kk-code-lab/tocview/internal/toc"
	"go.uber.org/zap"
)

const (
	endpointLoadTOC = "api/load_toc"
	endpointSearch  = "api/search_assets"
	endpointExtract = "api/extract_asset"
	endpointModel   = "api/model"

	maxResponseBytes = 256 << 20
)

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	codec      Codec
}

// Config holds client configuration.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Codec      Codec
	HTTPClient *http.Client
}

// New creates a new client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Codec == nil {
		cfg.Codec = jsonCodec{}
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        16,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/",
		httpClient: httpClient,
		codec:      cfg.Codec,
	}
}

// LoadTOC asks the server to load the TOC at tocPath and returns its tree.
func (c *Client) LoadTOC(ctx context.Context, tocPath string) (*toc.TOC, error) {
	var resp loadTOCResponse
	if err := c.post(ctx, endpointLoadTOC, loadTOCRequest{TOCPath: tocPath}, &resp); err != nil {
		return nil, err
	}
	if resp.TOC == nil {
		return nil, fmt.Errorf("%s: response has no toc", endpointLoadTOC)
	}
	tree, err := toc.FromWire(resp.TOC.Tree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpointLoadTOC, err)
	}
	return toc.New(resp.TOC.Archives, resp.TOC.Assets, tree), nil
}

// SearchAssets returns matches in server order.
func (c *Client) SearchAssets(ctx context.Context, needle string) ([]SearchResult, error) {
	var resp searchResponse
	if err := c.post(ctx, endpointSearch, searchRequest{Needle: needle}, &resp); err != nil {
		return nil, err
	}
	if resp.Entries == nil {
		return []SearchResult{}, nil
	}
	return resp.Entries, nil
}

// ExtractAsset returns the metadata of the asset stored at index.
func (c *Client) ExtractAsset(ctx context.Context, index int) (AssetInfo, error) {
	var resp extractResponse
	if err := c.post(ctx, endpointExtract, extractRequest{Index: index}, &resp); err != nil {
		return AssetInfo{}, err
	}
	if resp.Asset == nil {
		return AssetInfo{}, fmt.Errorf("%s: response has no asset", endpointExtract)
	}
	return *resp.Asset, nil
}

// ModelURL is the endpoint the model viewer loads a mesh from.
func (c *Client) ModelURL(index int) string {
	q := url.Values{}
	q.Set("index", strconv.Itoa(index))
	return c.baseURL + endpointModel + "?" + q.Encode()
}

type responder interface {
	outcome() status
}

func (c *Client) post(ctx context.Context, endpoint string, body any, out responder) error {
	log := logging.Named("api").With(zap.String("endpoint", endpoint))
	start := time.Now()

	payload, err := c.codec.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", c.codec.ContentType())
	req.Header.Set("Accept", c.codec.ContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("unexpected status", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s: server returned %d", endpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", endpoint, err)
	}
	if err := c.codec.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}

	log.Debug("request done",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(data)))

	if st := out.outcome(); st.Error {
		return &Error{Endpoint: endpoint, Message: st.Message}
	}
	return nil
}
