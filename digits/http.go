package digits

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
)

// maxBodyBytes caps the response; 1000 digits plus JSON framing fit comfortably
const maxBodyBytes = 64 * 1024

// StatusError carries a non-2xx response code
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Permanent reports whether retrying cannot help
func (e *StatusError) Permanent() bool {
	return e.Code >= 400 && e.Code < 500 && e.Code != http.StatusTooManyRequests
}

// HTTPSource fetches digits from a pi.delivery compatible endpoint
// GET <base>?start=N&numberOfDigits=M -> {"content": "<digits>"}
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource uses http.DefaultClient when client is nil
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{baseURL: baseURL, client: client}
}

type piResponse struct {
	Content string `json:"content"`
}

// Fetch requires exactly count digits in the response
func (s *HTTPSource) Fetch(ctx context.Context, start, count int) ([]uint8, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad url: %w", ErrSourceUnavailable, err)
	}
	q := u.Query()
	q.Set("start", strconv.Itoa(start))
	q.Set("numberOfDigits", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, &StatusError{Code: resp.StatusCode})
	}

	var body piResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrSourceUnavailable, err)
	}

	d, err := ParseDigits(body.Content)
	if err != nil {
		return nil, err
	}
	if len(d) != count {
		return nil, fmt.Errorf("%w: expected %d digits, got %d", ErrSourceUnavailable, count, len(d))
	}

	log.Printf("Fetched %d digits at offset %d", len(d), start)
	return d, nil
}
