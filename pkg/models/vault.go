package models

import "github.com/shopspring/decimal"

// Vault is one managed trading vault.
type Vault struct {
	Address         string   `json:"address"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	OwnerAccount    string   `json:"owner_account,omitempty"`
	OperatorAccount string   `json:"operator_account,omitempty"`
	Strategies      []string `json:"strategies,omitempty"`
	TokenAddress    string   `json:"token_address,omitempty"`
	Status          string   `json:"status"`
	Kind            string   `json:"kind,omitempty"`
	ProfitShare     int      `json:"profit_share,omitempty"`
	LockupPeriod    int      `json:"lockup_period,omitempty"`
	MaxTVL          int64    `json:"max_tvl,omitempty"`
	CreatedAt       int64    `json:"created_at"`
	LastUpdatedAt   int64    `json:"last_updated_at,omitempty"`
}

var VaultSchema = Schema{
	Name:        "Vault",
	Description: "Managed trading vault.",
	Fields: []Field{
		{Name: "address", Kind: KindString, Required: true, Description: "Contract address of the vault, unique key"},
		{Name: "name", Kind: KindString, Required: true, Description: "Vault name"},
		{Name: "description", Kind: KindString, Description: "Vault description"},
		{Name: "owner_account", Kind: KindString, Description: "Owner account"},
		{Name: "operator_account", Kind: KindString, Description: "Operator account"},
		{Name: "strategies", Kind: KindArray, Description: "Strategy addresses of the vault"},
		{Name: "token_address", Kind: KindString, Description: "LP token address"},
		{Name: "status", Kind: KindString, Required: true, Description: "Vault status"},
		{Name: "kind", Kind: KindString, Description: "'user' or 'protocol'"},
		{Name: "profit_share", Kind: KindInt, Description: "Profit share in percent"},
		{Name: "lockup_period", Kind: KindInt, Description: "Lockup period in days"},
		{Name: "max_tvl", Kind: KindInt, Description: "Maximum assets the vault can hold in USDC"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Vault creation time"},
		{Name: "last_updated_at", Kind: KindTimestamp, Description: "Last vault update time"},
	},
}

// VaultBalance is the settlement-token balance of one vault.
type VaultBalance struct {
	Token         string          `json:"token"`
	Size          decimal.Decimal `json:"size"`
	LastUpdatedAt int64           `json:"last_updated_at,omitempty"`
}

var VaultBalanceSchema = Schema{
	Name:        "VaultBalance",
	Description: "Settlement-token balance of a vault.",
	Fields: []Field{
		{Name: "token", Kind: KindString, Required: true, Description: "Token name"},
		{Name: "size", Kind: KindDecimal, Required: true, Description: "Balance amount"},
		{Name: "last_updated_at", Kind: KindTimestamp, Description: "Last balance update time"},
	},
}

// VaultSummary aggregates performance statistics of one vault.
type VaultSummary struct {
	Address       string          `json:"address"`
	OwnerEquity   decimal.Decimal `json:"owner_equity,omitempty"`
	VTokenSupply  decimal.Decimal `json:"vtoken_supply,omitempty"`
	VTokenPrice   decimal.Decimal `json:"vtoken_price,omitempty"`
	NetDeposits   decimal.Decimal `json:"net_deposits"`
	TotalROI      decimal.Decimal `json:"total_roi,omitempty"`
	TotalPnl      decimal.Decimal `json:"total_pnl,omitempty"`
	Volume24h     decimal.Decimal `json:"volume_24h,omitempty"`
	MaxDrawdown   decimal.Decimal `json:"max_drawdown,omitempty"`
	NumDepositors int             `json:"num_depositors,omitempty"`
}

var VaultSummarySchema = Schema{
	Name:        "VaultSummary",
	Description: "Performance and deposit statistics of a vault.",
	Fields: []Field{
		{Name: "address", Kind: KindString, Required: true, Description: "Contract address of the vault"},
		{Name: "owner_equity", Kind: KindDecimal, Description: "Owner share of the vault, 0.1 means 10%"},
		{Name: "vtoken_supply", Kind: KindDecimal, Description: "Total vault tokens outstanding"},
		{Name: "vtoken_price", Kind: KindDecimal, Description: "Vault token price in USD"},
		{Name: "net_deposits", Kind: KindDecimal, Required: true, Description: "Net deposits in USDC"},
		{Name: "total_roi", Kind: KindDecimal, Description: "Total ROI, 0.1 means 10%"},
		{Name: "total_pnl", Kind: KindDecimal, Description: "Total PnL in USD"},
		{Name: "volume_24h", Kind: KindDecimal, Description: "Volume traded in the last 24 hours in USD"},
		{Name: "max_drawdown", Kind: KindDecimal, Description: "Max all-time drawdown, 0.1 means 10%"},
		{Name: "num_depositors", Kind: KindInt, Description: "Number of depositors"},
	},
}

// VaultTransfer is one deposit or withdrawal request against a vault.
type VaultTransfer struct {
	ID            string          `json:"id"`
	Address       string          `json:"address,omitempty"`
	Account       string          `json:"account,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Token         string          `json:"token,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     int64           `json:"created_at"`
	LastUpdatedAt int64           `json:"last_updated_at,omitempty"`
}

var VaultTransferSchema = Schema{
	Name:        "VaultTransfer",
	Description: "Deposit or withdrawal request against a vault.",
	Fields: []Field{
		{Name: "id", Kind: KindString, Required: true, Description: "Unique transfer ID"},
		{Name: "address", Kind: KindString, Description: "Contract address of the vault"},
		{Name: "account", Kind: KindString, Description: "Account that requested the transfer"},
		{Name: "type", Kind: KindEnum, Required: true, Enum: []string{"DEPOSIT", "WITHDRAWAL"}, Description: "Transfer direction"},
		{Name: "amount", Kind: KindDecimal, Required: true, Description: "Transfer amount in USDC"},
		{Name: "token", Kind: KindString, Description: "Transfer token"},
		{Name: "status", Kind: KindString, Required: true, Description: "Transfer status"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Time the transfer was requested"},
		{Name: "last_updated_at", Kind: KindTimestamp, Description: "Last transfer update time"},
	},
}

// VaultAccountSummary is the authenticated account's stake in one vault.
type VaultAccountSummary struct {
	Address         string          `json:"address"`
	DepositedAmount decimal.Decimal `json:"deposited_amount"`
	VTokenAmount    decimal.Decimal `json:"vtoken_amount"`
	TotalROI        decimal.Decimal `json:"total_roi,omitempty"`
	TotalPnl        decimal.Decimal `json:"total_pnl,omitempty"`
	CreatedAt       int64           `json:"created_at,omitempty"`
}

var VaultAccountSummarySchema = Schema{
	Name:        "VaultAccountSummary",
	Description: "The account's deposit and returns in one vault.",
	Fields: []Field{
		{Name: "address", Kind: KindString, Required: true, Description: "Contract address of the vault"},
		{Name: "deposited_amount", Kind: KindDecimal, Required: true, Description: "Amount deposited by the account in USDC"},
		{Name: "vtoken_amount", Kind: KindDecimal, Required: true, Description: "Vault tokens owned by the account"},
		{Name: "total_roi", Kind: KindDecimal, Description: "Total ROI realized by the account"},
		{Name: "total_pnl", Kind: KindDecimal, Description: "Total PnL realized by the account in USD"},
		{Name: "created_at", Kind: KindTimestamp, Description: "Time the account joined the vault"},
	},
}
