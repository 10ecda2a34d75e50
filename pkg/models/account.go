package models

import "github.com/shopspring/decimal"

// AccountSummary is the single margin/equity snapshot of the authenticated
// account.
type AccountSummary struct {
	Account                      string          `json:"account"`
	AccountValue                 decimal.Decimal `json:"account_value"`
	FreeCollateral               decimal.Decimal `json:"free_collateral"`
	InitialMarginRequirement     decimal.Decimal `json:"initial_margin_requirement"`
	MaintenanceMarginRequirement decimal.Decimal `json:"maintenance_margin_requirement"`
	MarginCushion                decimal.Decimal `json:"margin_cushion,omitempty"`
	TotalCollateral              decimal.Decimal `json:"total_collateral"`
	SettlementAsset              string          `json:"settlement_asset,omitempty"`
	Status                       string          `json:"status"`
	SeqNo                        int64           `json:"seq_no,omitempty"`
	UpdatedAt                    int64           `json:"updated_at,omitempty"`
}

var AccountSummarySchema = Schema{
	Name:        "AccountSummary",
	Description: "Balances, margins and equity of the authenticated account.",
	Fields: []Field{
		{Name: "account", Kind: KindString, Required: true, Description: "Account address"},
		{Name: "account_value", Kind: KindDecimal, Required: true, Description: "Account value including unrealized PnL"},
		{Name: "free_collateral", Kind: KindDecimal, Required: true, Description: "Collateral in excess of initial margin"},
		{Name: "initial_margin_requirement", Kind: KindDecimal, Required: true, Description: "Margin required to open the existing positions"},
		{Name: "maintenance_margin_requirement", Kind: KindDecimal, Required: true, Description: "Margin required to maintain the existing positions"},
		{Name: "margin_cushion", Kind: KindDecimal, Description: "Account value in excess of maintenance margin"},
		{Name: "total_collateral", Kind: KindDecimal, Required: true, Description: "Total collateral"},
		{Name: "settlement_asset", Kind: KindString, Description: "Settlement asset of the account"},
		{Name: "status", Kind: KindString, Required: true, Description: "Account status, e.g. ACTIVE or LIQUIDATION"},
		{Name: "seq_no", Kind: KindInt, Description: "Increasing number assigned to each account update"},
		{Name: "updated_at", Kind: KindTimestamp, Description: "Last account update time"},
	},
}

// Position is the exposure of the account on one market. Size zero (or
// status CLOSED) represents no exposure.
type Position struct {
	ID                string          `json:"id"`
	Account           string          `json:"account,omitempty"`
	Market            string          `json:"market"`
	Status            string          `json:"status"`
	Side              string          `json:"side"`
	Size              decimal.Decimal `json:"size"`
	AverageEntryPrice decimal.Decimal `json:"average_entry_price"`
	UnrealizedPnl     decimal.Decimal `json:"unrealized_pnl"`
	Cost              decimal.Decimal `json:"cost,omitempty"`
	LiquidationPrice  string          `json:"liquidation_price,omitempty"`
	Leverage          decimal.Decimal `json:"leverage,omitempty"`
	LastFillID        string          `json:"last_fill_id,omitempty"`
	SeqNo             int64           `json:"seq_no,omitempty"`
	CreatedAt         int64           `json:"created_at,omitempty"`
	LastUpdatedAt     int64           `json:"last_updated_at,omitempty"`
}

var PositionSchema = Schema{
	Name:        "Position",
	Description: "Open or closed exposure of the account on one market.",
	Fields: []Field{
		{Name: "id", Kind: KindString, Required: true, Description: "Unique position ID"},
		{Name: "account", Kind: KindString, Description: "Account that owns the position"},
		{Name: "market", Kind: KindString, Required: true, Description: "Market symbol"},
		{Name: "status", Kind: KindEnum, Required: true, Enum: []string{"OPEN", "CLOSED"}, Description: "Position status"},
		{Name: "side", Kind: KindEnum, Required: true, Enum: []string{"LONG", "SHORT", "FLAT"}, Description: "Position side"},
		{Name: "size", Kind: KindDecimal, Required: true, Description: "Signed position size, positive when long"},
		{Name: "average_entry_price", Kind: KindDecimal, Required: true, Description: "Average entry price"},
		{Name: "unrealized_pnl", Kind: KindDecimal, Required: true, Description: "Unrealized PnL in the quote asset"},
		{Name: "cost", Kind: KindDecimal, Description: "Position cost"},
		{Name: "liquidation_price", Kind: KindString, Description: "Liquidation price, empty when not at risk"},
		{Name: "leverage", Kind: KindDecimal, Description: "Position leverage"},
		{Name: "last_fill_id", Kind: KindString, Description: "Fill that last updated the position"},
		{Name: "seq_no", Kind: KindInt, Description: "Increasing number assigned to each position update"},
		{Name: "created_at", Kind: KindTimestamp, Description: "Position creation time"},
		{Name: "last_updated_at", Kind: KindTimestamp, Description: "Last position update time"},
	},
}

// Fill is one immutable trade-execution record of the account.
type Fill struct {
	ID            string          `json:"id"`
	Side          OrderSide       `json:"side"`
	Liquidity     string          `json:"liquidity"`
	Market        string          `json:"market"`
	OrderID       string          `json:"order_id"`
	Price         decimal.Decimal `json:"price"`
	Size          decimal.Decimal `json:"size"`
	Fee           decimal.Decimal `json:"fee"`
	FeeCurrency   string          `json:"fee_currency"`
	CreatedAt     int64           `json:"created_at"`
	RemainingSize decimal.Decimal `json:"remaining_size,omitempty"`
	ClientID      string          `json:"client_id,omitempty"`
	FillType      string          `json:"fill_type,omitempty"`
	RealizedPnl   decimal.Decimal `json:"realized_pnl,omitempty"`
}

var FillSchema = Schema{
	Name:        "Fill",
	Description: "Immutable execution record tied to one order.",
	Fields: []Field{
		{Name: "id", Kind: KindString, Required: true, Description: "Unique fill ID"},
		{Name: "side", Kind: KindEnum, Required: true, Enum: []string{"BUY", "SELL"}, Description: "Taker side"},
		{Name: "liquidity", Kind: KindEnum, Required: true, Enum: []string{"MAKER", "TAKER"}, Description: "Liquidity role of the account"},
		{Name: "market", Kind: KindString, Required: true, Description: "Market symbol"},
		{Name: "order_id", Kind: KindString, Required: true, Description: "Order the fill executed against"},
		{Name: "price", Kind: KindDecimal, Required: true, Description: "Execution price"},
		{Name: "size", Kind: KindDecimal, Required: true, Description: "Executed size"},
		{Name: "fee", Kind: KindDecimal, Required: true, Description: "Fee paid"},
		{Name: "fee_currency", Kind: KindString, Required: true, Description: "Asset the fee is charged in"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Fill time"},
		{Name: "remaining_size", Kind: KindDecimal, Description: "Remaining size of the order after the fill"},
		{Name: "client_id", Kind: KindString, Description: "Client-assigned ID of the order"},
		{Name: "fill_type", Kind: KindString, Description: "FILL, LIQUIDATION or TRANSFER"},
		{Name: "realized_pnl", Kind: KindDecimal, Description: "Realized PnL of the fill"},
	},
}

// Transaction is one settlement-layer account event. The type set is open:
// deposits, withdrawals, fees, funding, realized PnL and whatever upstream
// adds next, so it is not constrained to an enum.
type Transaction struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Hash        string          `json:"hash,omitempty"`
	State       string          `json:"state"`
	Amount      decimal.Decimal `json:"amount,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	CreatedAt   int64           `json:"created_at"`
	CompletedAt int64           `json:"completed_at,omitempty"`
	Data        map[string]any  `json:"data,omitempty"`
}

var TransactionSchema = Schema{
	Name:        "Transaction",
	Description: "Settlement-layer account event such as a deposit, withdrawal or funding payment.",
	Fields: []Field{
		{Name: "id", Kind: KindString, Required: true, Description: "Unique transaction ID"},
		{Name: "type", Kind: KindString, Required: true, Description: "Event that triggered the transaction"},
		{Name: "hash", Kind: KindString, Description: "Settlement transaction hash"},
		{Name: "state", Kind: KindString, Required: true, Description: "Settlement status of the transaction"},
		{Name: "amount", Kind: KindDecimal, Description: "Transaction amount"},
		{Name: "currency", Kind: KindString, Description: "Transaction currency"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Time the transaction was submitted"},
		{Name: "completed_at", Kind: KindTimestamp, Description: "Time the transaction completed"},
		{Name: "data", Kind: KindObject, Description: "Free-form transaction detail"},
	},
}

// FundingPayment is one funding transfer applied to an account position.
type FundingPayment struct {
	ID        string          `json:"id"`
	Market    string          `json:"market"`
	Payment   decimal.Decimal `json:"payment"`
	Index     string          `json:"index,omitempty"`
	FillID    string          `json:"fill_id,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

var FundingPaymentSchema = Schema{
	Name:        "FundingPayment",
	Description: "Funding transfer applied to an account position.",
	Fields: []Field{
		{Name: "id", Kind: KindString, Required: true, Description: "Unique payment ID"},
		{Name: "market", Kind: KindString, Required: true, Description: "Market symbol"},
		{Name: "payment", Kind: KindDecimal, Required: true, Description: "Signed payment amount"},
		{Name: "index", Kind: KindString, Description: "Funding index at payment time"},
		{Name: "fill_id", Kind: KindString, Description: "Fill the payment is attributed to"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Payment time"},
	},
}
