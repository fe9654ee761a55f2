package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/yizeng/gab/gin/vitrine/internal/render"
)

var (
	ErrBackendUnavailable = errors.New("products backend unavailable")
	ErrUnexpectedStatus   = errors.New("unexpected status from products backend")
	ErrMalformedResponse  = errors.New("malformed products response")
)

// ProductID is the backend id as text. Strings are kept verbatim and numbers
// are written the way prices are, so 1.0 and 1e2 become "1" and "100". A null
// id leaves the key empty.
type ProductID string

func (id *ProductID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or a string -> %w", err)
	}

	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("n.Float64 -> %w", err)
	}
	*id = ProductID(render.FormatPrice(f))

	return nil
}

// Product is the wire format of GET /produtos.
type Product struct {
	ID       ProductID `json:"id"`
	Name     string    `json:"nome"`
	Price    float64   `json:"valor"`
	Discount float64   `json:"desconto"`
}

type ProductDAO struct {
	client *http.Client

	mu       sync.RWMutex
	endpoint string
	timeout  time.Duration
}

func NewProductDAO(client *http.Client, endpoint string) *ProductDAO {
	if client == nil {
		client = http.DefaultClient
	}

	return &ProductDAO{
		client:   client,
		endpoint: endpoint,
	}
}

func (d *ProductDAO) Endpoint() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.endpoint
}

// SetEndpoint points subsequent fetches at a new URL. Requests already in
// flight keep the old one.
func (d *ProductDAO) SetEndpoint(endpoint string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.endpoint = endpoint
}

func (d *ProductDAO) Timeout() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.timeout
}

// SetTimeout bounds subsequent fetches. Zero means no bound.
func (d *ProductDAO) SetTimeout(timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timeout = timeout
}

// FetchAll issues a single GET against the endpoint. There is no retry.
func (d *ProductDAO) FetchAll(ctx context.Context) ([]Product, error) {
	if timeout := d.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.Endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w -> %w", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w -> %s", ErrUnexpectedStatus, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)

	var products []Product
	if err := dec.Decode(&products); err != nil {
		return nil, fmt.Errorf("%w -> %w", ErrMalformedResponse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w -> trailing data after products", ErrMalformedResponse)
	}

	return products, nil
}
