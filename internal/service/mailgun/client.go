package mailgun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.mailgun.net/v3"
	DefaultPageLimit = 100

	apiUser = "api"
)

// Config is injected at construction so several clients can coexist.
type Config struct {
	APIKey           string
	BaseURL          string
	DefaultPageLimit int

	// Zero means no timeout.
	Timeout time.Duration
	// Zero means unthrottled.
	RequestsPerSecond float64
	// Optional; overrides Timeout. Tests and fixture replay inject their transport here.
	HTTPClient *http.Client
}

// Client talks to the Mailgun mailing list API.
type Client struct {
	apiKey     string
	baseURL    string
	pageLimit  int
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	pageLimit := cfg.DefaultPageLimit
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(1, int(cfg.RequestsPerSecond)))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		pageLimit:  pageLimit,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

func (c *Client) PageLimit() int {
	return c.pageLimit
}

// FetchAllLists reads a single page of mailing lists. Paging links are returned but not followed.
func (c *Client) FetchAllLists(ctx context.Context, limit int) (*MailingListsResponse, error) {
	if limit <= 0 {
		limit = c.pageLimit
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.do(ctx, http.MethodGet, "/lists/pages", query)
	if err != nil {
		return nil, err
	}

	items, paging, err := decodePage[domain.MailingList](body)
	if err != nil {
		return nil, err
	}

	return &MailingListsResponse{Items: items, Paging: paging}, nil
}

// FetchListMembers reads a single page of members of listAddress.
func (c *Client) FetchListMembers(ctx context.Context, listAddress string) (*ListMembersResponse, error) {
	body, err := c.do(ctx, http.MethodGet, membersPath(listAddress)+"/pages", nil)
	if err != nil {
		return nil, err
	}

	items, paging, err := decodePage[domain.ListMember](body)
	if err != nil {
		return nil, err
	}

	return &ListMembersResponse{Items: items, Paging: paging}, nil
}

// AddMember upserts identifier into listAddress; adding an existing member is not an error.
func (c *Client) AddMember(ctx context.Context, listAddress, identifier string) error {
	query := url.Values{}
	query.Set("address", identifier)
	query.Set("upsert", "yes")

	_, err := c.do(ctx, http.MethodPost, membersPath(listAddress), query)
	return err
}

// DeleteMember removes identifier from listAddress. A member that is already gone counts as removed.
func (c *Client) DeleteMember(ctx context.Context, listAddress, identifier string) error {
	_, err := c.do(ctx, http.MethodDelete, membersPath(listAddress)+"/"+url.PathEscape(identifier), nil)

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		logger.Debug("mailgun member already absent", zap.String("list", listAddress))
		return nil
	}

	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ClientError{Message: "rate limiter: " + err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, &ClientError{Message: "create request: " + err.Error(), Err: err}
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	requestID := uuid.New().String()
	req.SetBasicAuth(apiUser, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Detail: fmt.Sprintf("%s %s: %v", method, path, err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Detail: "read response: " + err.Error(), Err: err}
	}

	logger.Debug("mailgun request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		_ = json.Unmarshal(body, &errResp)
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Message:    errResp.Message,
		}
	}

	return body, nil
}

func membersPath(listAddress string) string {
	return "/lists/" + url.PathEscape(listAddress) + "/members"
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
