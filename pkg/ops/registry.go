// Package ops declares every exposed operation: its name, input contract,
// capability requirement, and the handler composing the upstream adapter
// with the response normalizer.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/sv/mcp-paradex-go/pkg/models"
	"github.com/sv/mcp-paradex-go/pkg/normalize"
	"github.com/sv/mcp-paradex-go/pkg/paradex"
)

// Exchange is the upstream capability surface consumed by operations. It is
// satisfied by *paradex.Client; tests substitute fakes.
type Exchange interface {
	SystemConfig(ctx context.Context) (json.RawMessage, error)
	SystemState(ctx context.Context) (json.RawMessage, error)
	SystemTime(ctx context.Context) (json.RawMessage, error)

	Markets(ctx context.Context, market string) (json.RawMessage, error)
	MarketsSummary(ctx context.Context, market string) (json.RawMessage, error)
	Orderbook(ctx context.Context, market string, depth int) (json.RawMessage, error)
	Klines(ctx context.Context, market, resolution string, startMs, endMs int64) (json.RawMessage, error)
	Trades(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error)
	BBO(ctx context.Context, market string) (json.RawMessage, error)
	FundingData(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error)

	AccountSummary(ctx context.Context) (json.RawMessage, error)
	Positions(ctx context.Context) (json.RawMessage, error)
	Fills(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error)
	FundingPayments(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error)
	Transactions(ctx context.Context, txType string, startMs, endMs int64) (json.RawMessage, error)

	OpenOrders(ctx context.Context, market string) (json.RawMessage, error)
	OrdersHistory(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error)
	Order(ctx context.Context, orderID string) (json.RawMessage, error)
	OrderByClientID(ctx context.Context, clientID string) (json.RawMessage, error)
	CreateOrder(ctx context.Context, req models.OrderRequest) (json.RawMessage, error)
	CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error)
	CancelOrderByClientID(ctx context.Context, clientID string) (json.RawMessage, error)
	CancelAllOrders(ctx context.Context, market string) (json.RawMessage, error)

	Vaults(ctx context.Context, address string) (json.RawMessage, error)
	VaultsConfig(ctx context.Context) (json.RawMessage, error)
	VaultBalance(ctx context.Context, address string) (json.RawMessage, error)
	VaultSummary(ctx context.Context, address string) (json.RawMessage, error)
	VaultTransfers(ctx context.Context, address string) (json.RawMessage, error)
	VaultPositions(ctx context.Context, address string) (json.RawMessage, error)
	VaultAccountSummary(ctx context.Context, address string) (json.RawMessage, error)
}

// Source yields the shared exchange client. Authenticated reports the
// configured mode without touching the network, so authenticated operations
// can fail fast before any upstream call.
type Source interface {
	Client(ctx context.Context) (Exchange, error)
	Authenticated() bool
}

// NewParadexSource adapts a paradex.Provider to the Source interface.
func NewParadexSource(p *paradex.Provider) Source {
	return providerSource{p}
}

type providerSource struct {
	p *paradex.Provider
}

func (s providerSource) Client(ctx context.Context) (Exchange, error) {
	return s.p.Client(ctx)
}

func (s providerSource) Authenticated() bool {
	return s.p.Authenticated()
}

// handlerFunc produces the operation payload from validated arguments.
type handlerFunc func(ctx context.Context, args map[string]any) (any, error)

// Operation is one named capability: a tool declaration, its entity schema
// for introspection, and its handler.
type Operation struct {
	Name         string
	Description  string
	Schema       *models.Schema
	RequiresAuth bool
	ReadOnly     bool

	tool    mcp.Tool
	handler handlerFunc
}

// Registry holds every operation and wires them onto an MCP server.
type Registry struct {
	source Source
	log    *logrus.Entry
	ops    map[string]*Operation
	order  []string
}

func New(source Source, logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
	}
	r := &Registry{
		source: source,
		log:    logger.WithField("component", "registry"),
		ops:    make(map[string]*Operation),
	}
	r.registerSystem()
	r.registerMarket()
	r.registerAccount()
	r.registerOrders()
	r.registerVaults()
	r.registerIntrospection()
	return r
}

func (r *Registry) add(op *Operation) {
	if _, dup := r.ops[op.Name]; dup {
		panic(fmt.Sprintf("duplicate operation %q", op.Name))
	}
	op.tool.Annotations.ReadOnlyHint = mcp.ToBoolPtr(op.ReadOnly)
	r.ops[op.Name] = op
	r.order = append(r.order, op.Name)
}

// Operation returns a registered operation by name.
func (r *Registry) Operation(name string) (*Operation, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, &UnknownOperationError{Operation: name}
	}
	return op, nil
}

// Operations lists registered operations in registration order.
func (r *Registry) Operations() []*Operation {
	out := make([]*Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name])
	}
	return out
}

// Attach registers every tool, resource and prompt on the MCP server.
func (r *Registry) Attach(s *server.MCPServer) {
	for _, name := range r.order {
		op := r.ops[name]
		s.AddTool(op.tool, r.toolHandler(op))
	}
	r.attachResources(s)
	r.attachPrompts(s)
}

// Invoke runs a named operation directly. Tests and resources go through
// here; the MCP tool handlers are thin wrappers over it.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	op, err := r.Operation(name)
	if err != nil {
		return nil, err
	}
	if op.RequiresAuth && !r.source.Authenticated() {
		return nil, &paradex.AuthenticationError{Reason: "no credential configured"}
	}
	return op.handler(ctx, args)
}

func (r *Registry) toolHandler(op *Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := r.Invoke(ctx, op.Name, req.GetArguments())
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			r.log.WithFields(logrus.Fields{"operation": op.Name, "error": err}).Warn("operation failed")
			return mcp.NewToolResultError(errorLabel(err) + ": " + err.Error()), nil
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s result: %w", op.Name, err)
		}
		return mcp.NewToolResultText(string(encoded)), nil
	}
}

// client resolves the shared exchange handle for one invocation.
func (r *Registry) client(ctx context.Context) (Exchange, error) {
	return r.source.Client(ctx)
}

func errorLabel(err error) string {
	var (
		validation *models.ValidationError
		auth       *paradex.AuthenticationError
		upstream   *paradex.UpstreamError
		protocol   *normalize.ProtocolError
		unknown    *UnknownOperationError
	)
	switch {
	case errors.As(err, &validation):
		return "VALIDATION_ERROR"
	case errors.As(err, &auth):
		return "AUTHENTICATION_ERROR"
	case errors.As(err, &unknown):
		return "UNKNOWN_OPERATION"
	case errors.As(err, &protocol):
		return "PROTOCOL_ERROR"
	case errors.As(err, &upstream):
		return "UPSTREAM_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
