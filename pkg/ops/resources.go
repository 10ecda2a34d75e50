package ops

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// resourceBinding maps a paradex:// URI onto a registered operation. The
// template variable, when present, becomes the named argument of the
// operation; fixed arguments are merged in as-is.
type resourceBinding struct {
	uri         string
	name        string
	description string
	operation   string
	variable    string
	fixed       map[string]any
}

func (r *Registry) resourceBindings() []resourceBinding {
	return []resourceBinding{
		{
			uri:         "paradex://system/config",
			name:        "System configuration",
			description: "Exchange-wide configuration parameters.",
			operation:   "paradex_system_config",
		},
		{
			uri:         "paradex://system/state",
			name:        "System state",
			description: "Operational state of the exchange.",
			operation:   "paradex_system_state",
		},
		{
			uri:         "paradex://system/time",
			name:        "System time",
			description: "Current exchange server time in unix milliseconds.",
			operation:   "paradex_system_time",
		},
		{
			uri:         "paradex://markets",
			name:        "Markets",
			description: "Tradeable markets with their static details.",
			operation:   "paradex_markets",
			fixed:       map[string]any{"limit": 100},
		},
		{
			uri:         "paradex://market/summary/{market_id}",
			name:        "Market summary",
			description: "Live statistics of one market.",
			operation:   "paradex_market_summaries",
			variable:    "market_id",
		},
		{
			uri:         "paradex://market/orderbook/{market_id}",
			name:        "Orderbook",
			description: "Orderbook snapshot of one market.",
			operation:   "paradex_orderbook",
			variable:    "market_id",
		},
		{
			uri:         "paradex://market/bbo/{market_id}",
			name:        "Best bid and offer",
			description: "Tightest current bid/ask pair of one market.",
			operation:   "paradex_bbo",
			variable:    "market_id",
		},
		{
			uri:         "paradex://vaults",
			name:        "Vaults",
			description: "Managed trading vaults.",
			operation:   "paradex_vault_list",
			fixed:       map[string]any{"limit": 100},
		},
		{
			uri:         "paradex://vaults/config",
			name:        "Vault configuration",
			description: "Global vault configuration of the exchange.",
			operation:   "paradex_vaults_config",
		},
		{
			uri:         "paradex://vaults/balance/{vault_id}",
			name:        "Vault balance",
			description: "Settlement-token balances of one vault.",
			operation:   "paradex_vault_balance",
			variable:    "vault_id",
		},
		{
			uri:         "paradex://vaults/summary/{vault_id}",
			name:        "Vault summary",
			description: "Performance statistics of one vault.",
			operation:   "paradex_vault_summary",
			variable:    "vault_id",
		},
		{
			uri:         "paradex://vaults/transfers/{vault_id}",
			name:        "Vault transfers",
			description: "Deposit and withdrawal history of one vault.",
			operation:   "paradex_vault_transfers",
			variable:    "vault_id",
		},
		{
			uri:         "paradex://vaults/positions/{vault_id}",
			name:        "Vault positions",
			description: "Positions held by one vault.",
			operation:   "paradex_vault_positions",
			variable:    "vault_id",
		},
		{
			uri:         "paradex://vaults/account-summary/{vault_id}",
			name:        "Vault account summary",
			description: "The account's stake in one vault.",
			operation:   "paradex_vault_account_summary",
			variable:    "vault_id",
		},
	}
}

func (r *Registry) attachResources(s *server.MCPServer) {
	for _, b := range r.resourceBindings() {
		binding := b
		if binding.variable == "" {
			s.AddResource(
				mcp.NewResource(binding.uri, binding.name,
					mcp.WithResourceDescription(binding.description),
					mcp.WithMIMEType("application/json"),
				),
				func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
					return r.readResource(ctx, binding, req.Params.URI)
				},
			)
			continue
		}
		s.AddResourceTemplate(
			mcp.NewResourceTemplate(binding.uri, binding.name,
				mcp.WithTemplateDescription(binding.description),
				mcp.WithTemplateMIMEType("application/json"),
			),
			func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return r.readResource(ctx, binding, req.Params.URI)
			},
		)
	}
}

func (r *Registry) readResource(ctx context.Context, b resourceBinding, uri string) ([]mcp.ResourceContents, error) {
	args := make(map[string]any, len(b.fixed)+1)
	for k, v := range b.fixed {
		args[k] = v
	}
	if b.variable != "" {
		value := templateValue(b.uri, uri)
		switch b.variable {
		case "market_id":
			// Summary records are keyed by symbol; the template value is
			// the filter, not an upstream path segment.
			if b.operation == "paradex_market_summaries" {
				args["market_ids"] = []string{value}
			} else {
				args[b.variable] = value
			}
		default:
			args[b.variable] = value
		}
	}

	payload, err := r.Invoke(ctx, b.operation, args)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		},
	}, nil
}

// templateValue extracts the single template variable from a concrete URI,
// given a template with exactly one trailing {variable} segment.
func templateValue(template, uri string) string {
	prefix := template
	if i := strings.Index(template, "{"); i >= 0 {
		prefix = template[:i]
	}
	return strings.TrimPrefix(uri, prefix)
}
