package ops

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sv/mcp-paradex-go/pkg/models"
	"github.com/sv/mcp-paradex-go/pkg/normalize"
)

var positionList = normalize.ListConfig[models.Position]{
	Description:  "Account positions, one per market.",
	Schema:       models.PositionSchema,
	Key:          func(p models.Position) string { return p.Market },
	Compare:      normalize.ByStringDesc(func(p models.Position) string { return p.Market }),
	DefaultLimit: 50,
	MaxLimit:     100,
}

var fillList = normalize.ListConfig[models.Fill]{
	Description:  "Account fills, newest first.",
	Schema:       models.FillSchema,
	Key:          func(f models.Fill) string { return f.Market },
	Compare:      normalize.ByInt64Desc(func(f models.Fill) int64 { return f.CreatedAt }),
	DefaultLimit: 50,
	MaxLimit:     100,
}

var fundingPaymentList = normalize.ListConfig[models.FundingPayment]{
	Description:  "Funding payments applied to the account, newest first.",
	Schema:       models.FundingPaymentSchema,
	Key:          func(p models.FundingPayment) string { return p.Market },
	Compare:      normalize.ByInt64Desc(func(p models.FundingPayment) int64 { return p.CreatedAt }),
	DefaultLimit: 50,
	MaxLimit:     100,
}

var transactionList = normalize.ListConfig[models.Transaction]{
	Description:  "Settlement-layer account events, newest first.",
	Schema:       models.TransactionSchema,
	Key:          func(t models.Transaction) string { return t.Type },
	Compare:      normalize.ByInt64Desc(func(t models.Transaction) int64 { return t.CreatedAt }),
	DefaultLimit: 50,
	MaxLimit:     100,
}

func (r *Registry) registerAccount() {
	r.add(&Operation{
		Name:         "paradex_account_summary",
		Description:  "Balances, margins and equity of the authenticated account.",
		Schema:       &models.AccountSummarySchema,
		RequiresAuth: true,
		ReadOnly:     true,
		tool: mcp.NewTool("paradex_account_summary",
			mcp.WithDescription("Account value, free collateral and margin requirements."),
		),
		handler: func(ctx context.Context, _ map[string]any) (any, error) {
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.AccountSummary(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.Single[models.AccountSummary](raw, models.AccountSummarySchema)
		},
	})

	r.add(&Operation{
		Name:         "paradex_account_positions",
		Description:  "Positions of the authenticated account, filterable by market.",
		Schema:       &models.PositionSchema,
		RequiresAuth: true,
		ReadOnly:     true,
		tool: mcp.NewTool("paradex_account_positions",
			withPagination(
				mcp.WithDescription("Open and closed positions of the account."),
				marketIDsOption(),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			ids, err := stringSliceArg(args, "market_ids")
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, positionList.DefaultLimit, positionList.MaxLimit)
			if err != nil {
				return nil, err
			}
			q.Keys = ids
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Positions(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, positionList, q)
		},
	})

	r.add(&Operation{
		Name:         "paradex_account_fills",
		Description:  "Fills of the authenticated account, newest first.",
		Schema:       &models.FillSchema,
		RequiresAuth: true,
		ReadOnly:     true,
		tool: mcp.NewTool("paradex_account_fills",
			withPagination(withTimeRange(
				mcp.WithDescription("Trade executions of the account over a time range."),
				mcp.WithString("market_id", mcp.Description("Restrict the history to one market.")),
			)...)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			market, err := stringArg(args, "market_id", "")
			if err != nil {
				return nil, err
			}
			start, end, err := timeRangeArgs(args)
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, fillList.DefaultLimit, fillList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Fills(ctx, market, start, end)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, fillList, q)
		},
	})

	r.add(&Operation{
		Name:         "paradex_account_funding_payments",
		Description:  "Funding payments of the authenticated account, newest first.",
		Schema:       &models.FundingPaymentSchema,
		RequiresAuth: true,
		ReadOnly:     true,
		tool: mcp.NewTool("paradex_account_funding_payments",
			withPagination(withTimeRange(
				mcp.WithDescription("Funding transfers applied to the account over a time range."),
				mcp.WithString("market_id", mcp.Description("Restrict the history to one market.")),
			)...)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			market, err := stringArg(args, "market_id", "")
			if err != nil {
				return nil, err
			}
			start, end, err := timeRangeArgs(args)
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, fundingPaymentList.DefaultLimit, fundingPaymentList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.FundingPayments(ctx, market, start, end)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, fundingPaymentList, q)
		},
	})

	r.add(&Operation{
		Name:         "paradex_account_transactions",
		Description:  "Settlement-layer events of the authenticated account, newest first.",
		Schema:       &models.TransactionSchema,
		RequiresAuth: true,
		ReadOnly:     true,
		tool: mcp.NewTool("paradex_account_transactions",
			withPagination(withTimeRange(
				mcp.WithDescription("Deposits, withdrawals and other settlement events over a time range."),
				mcp.WithString("transaction_type", mcp.Description("Restrict the history to one event type.")),
			)...)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			txType, err := stringArg(args, "transaction_type", "")
			if err != nil {
				return nil, err
			}
			start, end, err := timeRangeArgs(args)
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, transactionList.DefaultLimit, transactionList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Transactions(ctx, txType, start, end)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, transactionList, q)
		},
	})
}
