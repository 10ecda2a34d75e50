package ops

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (r *Registry) attachPrompts(s *server.MCPServer) {
	s.AddPrompt(
		mcp.NewPrompt("market_overview",
			mcp.WithPromptDescription("Survey current market conditions across the exchange."),
		),
		func(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			text := "Give me an overview of current market conditions. " +
				"Start from paradex_market_summaries to rank markets by volume and funding rate, " +
				"then drill into the most active ones with paradex_orderbook and paradex_klines. " +
				"Summarize notable moves, funding extremes and liquidity."
			return mcp.NewGetPromptResult(
				"Market overview",
				[]mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
				},
			), nil
		},
	)

	s.AddPrompt(
		mcp.NewPrompt("trading_analysis",
			mcp.WithPromptDescription("Analyze one market in depth before trading it."),
			mcp.WithArgument("market_id",
				mcp.ArgumentDescription("Market symbol to analyze, e.g. ETH-USD-PERP."),
				mcp.RequiredArgument(),
			),
		),
		func(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			market := req.Params.Arguments["market_id"]
			if market == "" {
				return nil, fmt.Errorf("market_id argument is required")
			}
			text := fmt.Sprintf(
				"Analyze %s for a potential trade. "+
					"Use paradex_market_summaries for the current snapshot, paradex_klines for trend "+
					"and volatility, paradex_orderbook for liquidity and imbalance, and "+
					"paradex_funding_data for the funding regime. "+
					"Conclude with the key risks and the levels that matter.", market)
			return mcp.NewGetPromptResult(
				fmt.Sprintf("Trading analysis for %s", market),
				[]mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
				},
			), nil
		},
	)
}
