package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/metrics"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/google/uuid"
	"github.com/machinebox/graphql"
)

// GraphQLClient implements Client against a GraphQL HTTP endpoint.
type GraphQLClient struct {
	endpoint   string
	gql        *graphql.Client
	httpClient *http.Client
	tokens     TokenSource
	timeout    time.Duration
	metrics    *metrics.Gateway
	logger     logging.Logger
}

type Option func(*GraphQLClient)

func WithHTTPClient(c *http.Client) Option {
	return func(g *GraphQLClient) { g.httpClient = c }
}

// WithTimeout bounds every request. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(g *GraphQLClient) { g.timeout = d }
}

func WithMetrics(m *metrics.Gateway) Option {
	return func(g *GraphQLClient) { g.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(g *GraphQLClient) { g.logger = l }
}

// NewGraphQLClient returns a client for endpoint that authenticates with the
// token from tokens when one is held.
func NewGraphQLClient(endpoint string, tokens TokenSource, opts ...Option) *GraphQLClient {
	c := &GraphQLClient{
		endpoint:   endpoint,
		tokens:     tokens,
		httpClient: &http.Client{},
		logger:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("module", "gateway")

	c.gql = graphql.NewClient(endpoint, graphql.WithHTTPClient(c.httpClient))
	c.gql.Log = func(s string) { c.logger.Debug(context.Background(), s) }
	return c
}

func (c *GraphQLClient) Login(ctx context.Context, email, password string) (*models.Auth, error) {
	req := graphql.NewRequest(loginMutation)
	req.Var("email", email)
	req.Var("password", password)

	var resp struct {
		Login *models.Auth `json:"login"`
	}
	if err := c.run(ctx, OpLogin, req, &resp); err != nil {
		return nil, err
	}
	if resp.Login == nil || resp.Login.Token == "" {
		return nil, fmt.Errorf("%w: empty login response", ErrUnauthorized)
	}
	return resp.Login, nil
}

func (c *GraphQLClient) GetMe(ctx context.Context) (*models.User, error) {
	req := graphql.NewRequest(getMeQuery)

	var resp struct {
		Me *models.User `json:"me"`
	}
	if err := c.run(ctx, OpGetMe, req, &resp); err != nil {
		return nil, err
	}
	if resp.Me == nil {
		return nil, fmt.Errorf("%w: no current user", ErrUnauthorized)
	}
	return resp.Me, nil
}

func (c *GraphQLClient) RemoveBook(ctx context.Context, bookID string) (*models.User, error) {
	req := graphql.NewRequest(removeBookMutation)
	req.Var("bookId", bookID)

	var resp struct {
		RemoveBook *models.User `json:"removeBook"`
	}
	if err := c.run(ctx, OpRemoveBook, req, &resp); err != nil {
		return nil, err
	}
	if resp.RemoveBook == nil {
		return nil, fmt.Errorf("%w: no current user", ErrUnauthorized)
	}
	return resp.RemoveBook, nil
}

func (c *GraphQLClient) SaveBook(ctx context.Context, book models.BookInput) (*models.User, error) {
	req := graphql.NewRequest(saveBookMutation)
	req.Var("bookData", book)

	var resp struct {
		SaveBook *models.User `json:"saveBook"`
	}
	if err := c.run(ctx, OpSaveBook, req, &resp); err != nil {
		return nil, err
	}
	if resp.SaveBook == nil {
		return nil, fmt.Errorf("%w: no current user", ErrUnauthorized)
	}
	return resp.SaveBook, nil
}

// Close releases idle connections.
func (c *GraphQLClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *GraphQLClient) run(ctx context.Context, op string, req *graphql.Request, resp any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerToken(token))
		}
	}

	err := c.metrics.Observe(op, func() error {
		return c.gql.Run(ctx, req, resp)
	})
	if err != nil {
		c.logger.Warn(ctx, "graphql request failed", "operation", op, "request_id", requestID, "error", err)
		return c.mapError(err)
	}
	c.logger.Debug(ctx, "graphql request done", "operation", op, "request_id", requestID)
	return nil
}

// mapError turns transport and GraphQL failures into the package sentinels.
func (c *GraphQLClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "non-200 status code"):
		if strings.HasSuffix(msg, ": 401") || strings.HasSuffix(msg, ": 403") {
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case strings.Contains(lower, "authenticate"), strings.Contains(lower, "logged in"), strings.Contains(lower, "unauthenticated"):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	default:
		return fmt.Errorf("graphql error: %w", err)
	}
}
