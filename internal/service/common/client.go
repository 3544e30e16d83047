//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	api "github.com/oshokin/elevator-ids/internal/api/grpc/experiment"
	"github.com/oshokin/elevator-ids/internal/config"
)

// Client wraps the ExperimentService client with typed convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the experiment server.
	conn *grpc.ClientConn
	// api is the ExperimentService client interface.
	api api.ExperimentClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errRequestRequired is returned when a nil request is passed.
	errRequestRequired = errors.New("request must be provided")
)

// Dial establishes a gRPC connection to the experiment server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	// Use the non-context NewClient API recommended by grpc-go
	// (DialContext is deprecated as of grpc-go v1.60+).
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial experiment server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewExperimentClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// RunRound asks the server to score a single round.
func (c *Client) RunRound(ctx context.Context, req *api.RoundRequest) (*api.RoundResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	in, err := api.Encode(req)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	out, err := c.api.RunRound(callCtx, in)
	if err != nil {
		return nil, fmt.Errorf("run round: %w", err)
	}

	response := new(api.RoundResponse)
	if err = api.Decode(out, response); err != nil {
		return nil, err
	}

	return response, nil
}

// RunGrid asks the server to run and store a grid search.
func (c *Client) RunGrid(ctx context.Context, req *api.GridRequest) (*api.GridResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	in, err := api.Encode(req)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	out, err := c.api.RunGrid(callCtx, in)
	if err != nil {
		return nil, fmt.Errorf("run grid: %w", err)
	}

	response := new(api.GridResponse)
	if err = api.Decode(out, response); err != nil {
		return nil, err
	}

	return response, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
