package ops

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sv/mcp-paradex-go/pkg/models"
	"github.com/sv/mcp-paradex-go/pkg/normalize"
)

var orderbookDepths = []int{5, 10, 20, 50, 100}

var klineResolutions = []string{"1", "3", "5", "15", "30", "60"}

var marketDetailsList = normalize.ListConfig[models.MarketDetails]{
	Description:  "Tradeable markets on the exchange.",
	Schema:       models.MarketDetailsSchema,
	Key:          func(m models.MarketDetails) string { return m.Symbol },
	Compare:      normalize.ByStringDesc(func(m models.MarketDetails) string { return m.Symbol }),
	DefaultLimit: 10,
	MaxLimit:     100,
}

var marketSummaryList = normalize.ListConfig[models.MarketSummary]{
	Description:  "Live market statistics, one snapshot per symbol.",
	Schema:       models.MarketSummarySchema,
	Key:          func(m models.MarketSummary) string { return m.Symbol },
	Compare:      normalize.ByStringDesc(func(m models.MarketSummary) string { return m.Symbol }),
	DefaultLimit: 10,
	MaxLimit:     100,
}

var tradeList = normalize.ListConfig[models.Trade]{
	Description:  "Executed trades, newest first.",
	Schema:       models.TradeSchema,
	Key:          func(t models.Trade) string { return t.Market },
	Compare:      normalize.ByInt64Desc(func(t models.Trade) int64 { return t.CreatedAt }),
	DefaultLimit: 10,
	MaxLimit:     100,
}

var fundingDataList = normalize.ListConfig[models.FundingData]{
	Description:  "Funding rate history, oldest first.",
	Schema:       models.FundingDataSchema,
	Key:          func(f models.FundingData) string { return f.Market },
	Compare:      normalize.ByInt64Asc(func(f models.FundingData) int64 { return f.CreatedAt }),
	DefaultLimit: 10,
	MaxLimit:     100,
}

// upstreamMarket narrows the upstream fetch to one market when the filter
// names exactly one explicit symbol; any other filter is applied locally
// after fetching everything.
func upstreamMarket(ids []string) string {
	if len(ids) == 1 && ids[0] != "" && ids[0] != normalize.FilterAll {
		return ids[0]
	}
	return ""
}

func withPagination(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results per page."),
			mcp.DefaultNumber(10),
			mcp.Min(1),
			mcp.Max(100),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of results to skip."),
			mcp.DefaultNumber(0),
			mcp.Min(0),
		),
	)
}

func withTimeRange(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithNumber("start_unix_ms", mcp.Description("Start of the time range in unix milliseconds.")),
		mcp.WithNumber("end_unix_ms", mcp.Description("End of the time range in unix milliseconds.")),
	)
}

func marketIDsOption() mcp.ToolOption {
	return mcp.WithArray("market_ids",
		mcp.Description("Market symbols to retain, or [\"ALL\"] for every market."),
		mcp.Items(map[string]any{"type": "string"}),
	)
}

func (r *Registry) registerMarket() {
	r.add(&Operation{
		Name:        "paradex_markets",
		Description: "List markets with their static details, filterable by symbol.",
		Schema:      &models.MarketDetailsSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_markets",
			withPagination(
				mcp.WithDescription("List tradeable markets with tick size, lot size and contract details."),
				marketIDsOption(),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			ids, err := stringSliceArg(args, "market_ids")
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, marketDetailsList.DefaultLimit, marketDetailsList.MaxLimit)
			if err != nil {
				return nil, err
			}
			q.Keys = ids
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Markets(ctx, upstreamMarket(ids))
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, marketDetailsList, q)
		},
	})

	r.add(&Operation{
		Name:        "paradex_market_names",
		Description: "List available market symbols.",
		Schema:      &models.MarketDetailsSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_market_names",
			withPagination(
				mcp.WithDescription("List the symbols of every available market."),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			q, err := pageArgs(args, marketDetailsList.DefaultLimit, marketDetailsList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Markets(ctx, "")
			if err != nil {
				return nil, err
			}
			env, err := normalize.List(raw, marketDetailsList, q)
			if err != nil {
				return nil, err
			}
			names := make([]string, 0, len(env.Results))
			for _, m := range env.Results {
				names = append(names, m.Symbol)
			}
			return &normalize.Envelope[string]{
				Description: "Available market symbols.",
				Fields:      map[string]string{"symbol": "Market symbol"},
				Results:     names,
				Total:       env.Total,
				Limit:       env.Limit,
				Offset:      env.Offset,
			}, nil
		},
	})

	r.add(&Operation{
		Name:        "paradex_market_summaries",
		Description: "List live market statistics, filterable by symbol.",
		Schema:      &models.MarketSummarySchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_market_summaries",
			withPagination(
				mcp.WithDescription("Current mark price, volume and open interest per market."),
				marketIDsOption(),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			ids, err := stringSliceArg(args, "market_ids")
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, marketSummaryList.DefaultLimit, marketSummaryList.MaxLimit)
			if err != nil {
				return nil, err
			}
			q.Keys = ids
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.MarketsSummary(ctx, upstreamMarket(ids))
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, marketSummaryList, q)
		},
	})

	r.add(&Operation{
		Name:        "paradex_orderbook",
		Description: "Orderbook depth snapshot for one market.",
		Schema:      &models.OrderbookSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_orderbook",
			mcp.WithDescription("Orderbook snapshot with bids descending and asks ascending."),
			mcp.WithString("market_id", mcp.Required(), mcp.Description("Market symbol.")),
			mcp.WithNumber("depth",
				mcp.Description("Number of levels per side: 5, 10, 20, 50 or 100."),
				mcp.DefaultNumber(10),
			),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			market, err := requireStringArg(args, "market_id")
			if err != nil {
				return nil, err
			}
			depth, err := intArg(args, "depth", 10)
			if err != nil {
				return nil, err
			}
			if !validDepth(depth) {
				return nil, &models.ValidationError{
					Path:     "depth",
					Expected: "one of [5 10 20 50 100]",
				}
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Orderbook(ctx, market, depth)
			if err != nil {
				return nil, err
			}
			book, err := normalize.Single[models.Orderbook](raw, models.OrderbookSchema)
			if err != nil {
				return nil, err
			}
			if len(book.Bids) > depth {
				book.Bids = book.Bids[:depth]
			}
			if len(book.Asks) > depth {
				book.Asks = book.Asks[:depth]
			}
			return book, nil
		},
	})

	r.add(&Operation{
		Name:        "paradex_klines",
		Description: "Candlestick history for one market, ascending by timestamp.",
		Schema:      &models.OHLCVSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_klines",
			withTimeRange(
				mcp.WithDescription("OHLCV candles for a market over a time range."),
				mcp.WithString("market_id", mcp.Required(), mcp.Description("Market symbol.")),
				mcp.WithString("resolution",
					mcp.Description("Candle resolution in minutes."),
					mcp.DefaultString("1"),
					mcp.Enum(klineResolutions...),
				),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			market, err := requireStringArg(args, "market_id")
			if err != nil {
				return nil, err
			}
			resolution, err := enumArg(args, "resolution", klineResolutions, "1")
			if err != nil {
				return nil, err
			}
			start, end, err := timeRangeArgs(args)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Klines(ctx, market, resolution, start, end)
			if err != nil {
				return nil, err
			}
			return normalize.Sequence(raw, models.OHLCVSchema,
				normalize.ByInt64Asc(func(c models.OHLCV) int64 { return c.Timestamp }))
		},
	})

	r.add(&Operation{
		Name:        "paradex_trades",
		Description: "Executed trades for one market, newest first.",
		Schema:      &models.TradeSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_trades",
			withPagination(withTimeRange(
				mcp.WithDescription("Trade history for a market over a time range."),
				mcp.WithString("market_id", mcp.Required(), mcp.Description("Market symbol.")),
			)...)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			market, err := requireStringArg(args, "market_id")
			if err != nil {
				return nil, err
			}
			start, end, err := timeRangeArgs(args)
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, tradeList.DefaultLimit, tradeList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Trades(ctx, market, start, end)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, tradeList, q)
		},
	})

	r.add(&Operation{
		Name:        "paradex_bbo",
		Description: "Best bid and offer snapshot for one market.",
		Schema:      &models.BBOSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_bbo",
			mcp.WithDescription("Tightest current bid/ask pair for a market."),
			mcp.WithString("market_id", mcp.Required(), mcp.Description("Market symbol.")),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			market, err := requireStringArg(args, "market_id")
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.BBO(ctx, market)
			if err != nil {
				return nil, err
			}
			return normalize.Single[models.BBO](raw, models.BBOSchema)
		},
	})

	r.add(&Operation{
		Name:        "paradex_funding_data",
		Description: "Funding rate history for one market, oldest first.",
		Schema:      &models.FundingDataSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_funding_data",
			withPagination(withTimeRange(
				mcp.WithDescription("Funding rate entries for a market over a time range."),
				mcp.WithString("market_id", mcp.Required(), mcp.Description("Market symbol.")),
			)...)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			market, err := requireStringArg(args, "market_id")
			if err != nil {
				return nil, err
			}
			start, end, err := timeRangeArgs(args)
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, fundingDataList.DefaultLimit, fundingDataList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.FundingData(ctx, market, start, end)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, fundingDataList, q)
		},
	})
}

func validDepth(depth int) bool {
	for _, d := range orderbookDepths {
		if d == depth {
			return true
		}
	}
	return false
}
