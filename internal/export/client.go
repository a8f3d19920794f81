package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mawja-backend/internal/config"
	"mawja-backend/internal/utils"
	"mawja-backend/pkg/logger"
)

// Client talks to the external document service. Export is one-shot: create
// the document, push the styled paragraphs in a single batch, return the
// locator. No sync-back afterwards.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.ExportConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    utils.NewHTTPClient(cfg.Timeout),
	}
}

type createDocumentRequest struct {
	Title string `json:"title"`
}

type createDocumentResponse struct {
	DocumentID string `json:"document_id"`
	URL        string `json:"url"`
}

type batchUpdateRequest struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Export pushes doc to the document service and returns its locator.
func (c *Client) Export(ctx context.Context, doc Document) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("export service base_url is empty")
	}

	var created createDocumentResponse
	err := c.postJSON(ctx, "/v1/documents", createDocumentRequest{Title: doc.Title}, &created)
	if err != nil {
		return "", fmt.Errorf("failed to create exported document: %w", err)
	}

	path := fmt.Sprintf("/v1/documents/%s/batchUpdate", created.DocumentID)
	if err := c.postJSON(ctx, path, batchUpdateRequest{Paragraphs: doc.Paragraphs}, nil); err != nil {
		return "", fmt.Errorf("failed to write exported document body: %w", err)
	}

	logger.Infof("Exported document %s (%d paragraphs)", created.DocumentID, len(doc.Paragraphs))

	locator := created.URL
	if locator == "" {
		locator = created.DocumentID
	}
	return locator, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("export service returned %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
