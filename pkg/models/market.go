package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// TradeSide is the taker side of an executed trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// MarketDetails describes one tradeable market. The symbol is the sole
// identity used by filters across every market operation.
type MarketDetails struct {
	Symbol             string          `json:"symbol"`
	BaseCurrency       string          `json:"base_currency"`
	QuoteCurrency      string          `json:"quote_currency"`
	SettlementCurrency string          `json:"settlement_currency,omitempty"`
	OrderSizeIncrement decimal.Decimal `json:"order_size_increment"`
	PriceTickSize      decimal.Decimal `json:"price_tick_size"`
	MinNotional        decimal.Decimal `json:"min_notional"`
	MaxOrderSize       decimal.Decimal `json:"max_order_size,omitempty"`
	PositionLimit      decimal.Decimal `json:"position_limit,omitempty"`
	MaxOpenOrders      int             `json:"max_open_orders,omitempty"`
	AssetKind          string          `json:"asset_kind"`
	MarketKind         string          `json:"market_kind,omitempty"`
	OpenAt             int64           `json:"open_at,omitempty"`
	ExpiryAt           int64           `json:"expiry_at,omitempty"`
	FundingPeriodHours int             `json:"funding_period_hours,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
	OptionType         string          `json:"option_type,omitempty"`
	StrikePrice        decimal.Decimal `json:"strike_price,omitempty"`
}

var MarketDetailsSchema = Schema{
	Name:        "MarketDetails",
	Description: "Static details of a tradeable market.",
	Fields: []Field{
		{Name: "symbol", Kind: KindString, Required: true, Description: "Market symbol, unique key"},
		{Name: "base_currency", Kind: KindString, Required: true, Description: "Base currency of the market"},
		{Name: "quote_currency", Kind: KindString, Required: true, Description: "Quote currency of the market"},
		{Name: "settlement_currency", Kind: KindString, Description: "Settlement currency of the market"},
		{Name: "order_size_increment", Kind: KindDecimal, Required: true, Description: "Minimum size increment in base currency (lot size)"},
		{Name: "price_tick_size", Kind: KindDecimal, Required: true, Description: "Minimum price increment in USD"},
		{Name: "min_notional", Kind: KindDecimal, Required: true, Description: "Minimum order size in USD"},
		{Name: "max_order_size", Kind: KindDecimal, Description: "Maximum order size in base currency"},
		{Name: "position_limit", Kind: KindDecimal, Description: "Position limit"},
		{Name: "max_open_orders", Kind: KindInt, Description: "Maximum number of open orders"},
		{Name: "asset_kind", Kind: KindString, Required: true, Description: "Type of asset (PERP, PERP_OPTION)"},
		{Name: "market_kind", Kind: KindString, Description: "Type of market, always 'cross'"},
		{Name: "open_at", Kind: KindTimestamp, Description: "Market open time in milliseconds"},
		{Name: "expiry_at", Kind: KindTimestamp, Description: "Market expiry time in milliseconds"},
		{Name: "funding_period_hours", Kind: KindInt, Description: "Funding period in hours"},
		{Name: "tags", Kind: KindArray, Description: "Market tags"},
		{Name: "option_type", Kind: KindString, Description: "Option type (PUT or CALL)"},
		{Name: "strike_price", Kind: KindDecimal, Description: "Strike price for option markets"},
	},
}

// MarketSummary is a live statistics snapshot for one market, keyed by symbol.
type MarketSummary struct {
	Symbol             string          `json:"symbol"`
	MarkPrice          decimal.Decimal `json:"mark_price"`
	LastTradedPrice    decimal.Decimal `json:"last_traded_price"`
	Bid                decimal.Decimal `json:"bid"`
	Ask                decimal.Decimal `json:"ask"`
	Volume24h          decimal.Decimal `json:"volume_24h"`
	TotalVolume        decimal.Decimal `json:"total_volume,omitempty"`
	OpenInterest       decimal.Decimal `json:"open_interest"`
	FundingRate        decimal.Decimal `json:"funding_rate,omitempty"`
	PriceChangeRate24h string          `json:"price_change_rate_24h,omitempty"`
	UnderlyingPrice    string          `json:"underlying_price,omitempty"`
	CreatedAt          int64           `json:"created_at"`
}

var MarketSummarySchema = Schema{
	Name:        "MarketSummary",
	Description: "Live market statistics snapshot, one per symbol at fetch time.",
	Fields: []Field{
		{Name: "symbol", Kind: KindString, Required: true, Description: "Market symbol"},
		{Name: "mark_price", Kind: KindDecimal, Required: true, Description: "Mark price"},
		{Name: "last_traded_price", Kind: KindDecimal, Required: true, Description: "Last traded price"},
		{Name: "bid", Kind: KindDecimal, Required: true, Description: "Best bid price"},
		{Name: "ask", Kind: KindDecimal, Required: true, Description: "Best ask price"},
		{Name: "volume_24h", Kind: KindDecimal, Required: true, Description: "24 hour volume in USD"},
		{Name: "total_volume", Kind: KindDecimal, Description: "Lifetime traded volume in USD"},
		{Name: "open_interest", Kind: KindDecimal, Required: true, Description: "Open interest in base currency"},
		{Name: "funding_rate", Kind: KindDecimal, Description: "Current funding rate"},
		{Name: "price_change_rate_24h", Kind: KindString, Description: "Price change rate over the last 24 hours"},
		{Name: "underlying_price", Kind: KindString, Description: "Underlying asset spot price"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Snapshot creation time"},
	},
}

// PriceLevel is one (price, size) level of an orderbook side. Upstream
// transmits levels as two-element arrays of numeric strings.
type PriceLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("orderbook level must be an array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("orderbook level must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &l.Price); err != nil {
		return fmt.Errorf("orderbook level price: %w", err)
	}
	if err := json.Unmarshal(pair[1], &l.Size); err != nil {
		return fmt.Errorf("orderbook level size: %w", err)
	}
	return nil
}

// Orderbook is a depth snapshot: bids descending, asks ascending by price.
type Orderbook struct {
	Market        string       `json:"market"`
	SeqNo         int64        `json:"seq_no,omitempty"`
	Bids          []PriceLevel `json:"bids"`
	Asks          []PriceLevel `json:"asks"`
	LastUpdatedAt int64        `json:"last_updated_at"`
}

func (o *Orderbook) Validate() error {
	for i := 1; i < len(o.Bids); i++ {
		if o.Bids[i].Price.GreaterThan(o.Bids[i-1].Price) {
			return &ValidationError{Path: "Orderbook.bids", Expected: "prices in descending order"}
		}
	}
	for i := 1; i < len(o.Asks); i++ {
		if o.Asks[i].Price.LessThan(o.Asks[i-1].Price) {
			return &ValidationError{Path: "Orderbook.asks", Expected: "prices in ascending order"}
		}
	}
	return nil
}

var OrderbookSchema = Schema{
	Name:        "Orderbook",
	Description: "Orderbook depth snapshot with bids descending and asks ascending.",
	Fields: []Field{
		{Name: "market", Kind: KindString, Required: true, Description: "Market symbol"},
		{Name: "seq_no", Kind: KindInt, Description: "Orderbook sequence number"},
		{Name: "bids", Kind: KindArray, Required: true, Description: "Bid levels as [price, size] pairs, descending"},
		{Name: "asks", Kind: KindArray, Required: true, Description: "Ask levels as [price, size] pairs, ascending"},
		{Name: "last_updated_at", Kind: KindTimestamp, Required: true, Description: "Last orderbook update in milliseconds"},
	},
}

// OHLCV is one candlestick. Upstream records are positional arrays:
// [timestamp, open, high, low, close, volume].
type OHLCV struct {
	Timestamp int64           `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

func (c *OHLCV) UnmarshalJSON(data []byte) error {
	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return fmt.Errorf("kline must be an array: %w", err)
	}
	if len(row) < 6 {
		return fmt.Errorf("kline must have 6 elements, got %d", len(row))
	}
	if err := json.Unmarshal(row[0], &c.Timestamp); err != nil {
		return fmt.Errorf("kline timestamp: %w", err)
	}
	targets := []*decimal.Decimal{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume}
	names := []string{"open", "high", "low", "close", "volume"}
	for i, dst := range targets {
		if err := json.Unmarshal(row[i+1], dst); err != nil {
			return fmt.Errorf("kline %s: %w", names[i], err)
		}
	}
	return nil
}

var OHLCVSchema = Schema{
	Name:        "OHLCV",
	Description: "Candlestick aggregate for one interval, ordered ascending by timestamp.",
	ArrayRecord: true,
	Fields: []Field{
		{Name: "timestamp", Kind: KindTimestamp, Required: true, Description: "Interval start in milliseconds"},
		{Name: "open", Kind: KindDecimal, Required: true, Description: "Open price"},
		{Name: "high", Kind: KindDecimal, Required: true, Description: "High price"},
		{Name: "low", Kind: KindDecimal, Required: true, Description: "Low price"},
		{Name: "close", Kind: KindDecimal, Required: true, Description: "Close price"},
		{Name: "volume", Kind: KindDecimal, Required: true, Description: "Traded volume"},
	},
}

// Trade is one executed upstream transaction, immutable once fetched.
type Trade struct {
	ID        string          `json:"id"`
	Market    string          `json:"market"`
	Side      TradeSide       `json:"side"`
	Size      decimal.Decimal `json:"size"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt int64           `json:"created_at"`
	TradeType string          `json:"trade_type,omitempty"`
}

var TradeSchema = Schema{
	Name:        "Trade",
	Description: "One executed trade on the exchange.",
	Fields: []Field{
		{Name: "id", Kind: KindString, Required: true, Description: "Unique trade ID"},
		{Name: "market", Kind: KindString, Required: true, Description: "Market the trade was done on"},
		{Name: "side", Kind: KindEnum, Required: true, Enum: []string{"BUY", "SELL"}, Description: "Taker side"},
		{Name: "size", Kind: KindDecimal, Required: true, Description: "Trade size"},
		{Name: "price", Kind: KindDecimal, Required: true, Description: "Trade price"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Execution time in milliseconds"},
		{Name: "trade_type", Kind: KindString, Description: "FILL or LIQUIDATION"},
	},
}

// BBO is the current best bid and offer of a market; a single snapshot with
// no history.
type BBO struct {
	Market        string          `json:"market"`
	SeqNo         int64           `json:"seq_no,omitempty"`
	Bid           decimal.Decimal `json:"bid"`
	BidSize       decimal.Decimal `json:"bid_size"`
	Ask           decimal.Decimal `json:"ask"`
	AskSize       decimal.Decimal `json:"ask_size"`
	LastUpdatedAt int64           `json:"last_updated_at"`
}

var BBOSchema = Schema{
	Name:        "BBO",
	Description: "Best bid and offer snapshot for a market.",
	Fields: []Field{
		{Name: "market", Kind: KindString, Required: true, Description: "Market symbol"},
		{Name: "seq_no", Kind: KindInt, Description: "Orderbook sequence number"},
		{Name: "bid", Kind: KindDecimal, Required: true, Description: "Best bid price"},
		{Name: "bid_size", Kind: KindDecimal, Required: true, Description: "Best bid size"},
		{Name: "ask", Kind: KindDecimal, Required: true, Description: "Best ask price"},
		{Name: "ask_size", Kind: KindDecimal, Required: true, Description: "Best ask size"},
		{Name: "last_updated_at", Kind: KindTimestamp, Description: "Last update in milliseconds"},
	},
}

// FundingData is one funding interval entry for a market.
type FundingData struct {
	Market         string          `json:"market"`
	FundingRate    decimal.Decimal `json:"funding_rate"`
	FundingIndex   string          `json:"funding_index,omitempty"`
	FundingPremium string          `json:"funding_premium,omitempty"`
	CreatedAt      int64           `json:"created_at"`
}

var FundingDataSchema = Schema{
	Name:        "FundingData",
	Description: "Funding rate entry, one per funding interval.",
	Fields: []Field{
		{Name: "market", Kind: KindString, Required: true, Description: "Market symbol"},
		{Name: "funding_rate", Kind: KindDecimal, Required: true, Description: "Funding rate for the interval"},
		{Name: "funding_index", Kind: KindString, Description: "Funding index"},
		{Name: "funding_premium", Kind: KindString, Description: "Funding premium"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Funding timestamp in milliseconds"},
	},
}
