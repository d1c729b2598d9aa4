package bridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxBody caps snapshot responses.
const maxBody = 1 << 20

// HTTPClient is a Bridge backed by a remote HTTP endpoint.
type HTTPClient struct {
	base string
	hc   *http.Client
}

// NewHTTPClient creates a client for baseURL. A zero timeout means none.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) NewGame(ctx context.Context, seed int64) (*Snapshot, error) {
	q := url.Values{}
	q.Set("seed", strconv.FormatInt(seed, 10))
	return c.call(ctx, http.MethodPost, OpNewGame, q)
}

func (c *HTTPClient) StartRound(ctx context.Context) (*Snapshot, error) {
	return c.call(ctx, http.MethodPost, OpStartRound, nil)
}

func (c *HTTPClient) EndRound(ctx context.Context) (*Snapshot, error) {
	return c.call(ctx, http.MethodPost, OpEndRound, nil)
}

func (c *HTTPClient) InsertToken(ctx context.Context) (*Snapshot, error) {
	return c.call(ctx, http.MethodPost, OpInsertToken, nil)
}

func (c *HTTPClient) RemoveToken(ctx context.Context) (*Snapshot, error) {
	return c.call(ctx, http.MethodPost, OpRemoveToken, nil)
}

func (c *HTTPClient) Spin(ctx context.Context) (*Snapshot, error) {
	return c.call(ctx, http.MethodPost, OpSpin, nil)
}

func (c *HTTPClient) Snapshot(ctx context.Context) (*Snapshot, error) {
	return c.call(ctx, http.MethodGet, OpSnapshot, nil)
}

func (c *HTTPClient) call(ctx context.Context, method, op string, q url.Values) (*Snapshot, error) {
	u := c.base + "/" + op
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("bridge: %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge: %s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("bridge: %s: read body: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bridge: %s: unexpected status %d", op, resp.StatusCode)
	}

	snap, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("bridge: %s: %w", op, err)
	}
	return snap, remoteError(op, snap)
}
