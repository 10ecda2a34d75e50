package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

type OrderType string

const (
	OrderTypeMarket           OrderType = "MARKET"
	OrderTypeLimit            OrderType = "LIMIT"
	OrderTypeStopLimit        OrderType = "STOP_LIMIT"
	OrderTypeStopMarket       OrderType = "STOP_MARKET"
	OrderTypeTakeProfitLimit  OrderType = "TAKE_PROFIT_LIMIT"
	OrderTypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"
	OrderTypeStopLossMarket   OrderType = "STOP_LOSS_MARKET"
	OrderTypeStopLossLimit    OrderType = "STOP_LOSS_LIMIT"
)

// OrderTypes lists every accepted order type, in declaration order.
var OrderTypes = []string{
	string(OrderTypeMarket), string(OrderTypeLimit),
	string(OrderTypeStopLimit), string(OrderTypeStopMarket),
	string(OrderTypeTakeProfitLimit), string(OrderTypeTakeProfitMarket),
	string(OrderTypeStopLossMarket), string(OrderTypeStopLossLimit),
}

type Instruction string

const (
	InstructionGTC      Instruction = "GTC"
	InstructionIOC      Instruction = "IOC"
	InstructionPostOnly Instruction = "POST_ONLY"
)

var Instructions = []string{
	string(InstructionGTC), string(InstructionIOC), string(InstructionPostOnly),
}

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusOpen            OrderStatus = "OPEN"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusClosed          OrderStatus = "CLOSED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

var orderStatuses = []string{
	string(OrderStatusNew), string(OrderStatusOpen),
	string(OrderStatusPartiallyFilled), string(OrderStatusFilled),
	string(OrderStatusClosed), string(OrderStatusCanceled),
	string(OrderStatusExpired),
}

// Terminal reports whether no further upstream mutation of the order is
// possible.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusClosed, OrderStatusCanceled, OrderStatusFilled, OrderStatusExpired:
		return true
	}
	return false
}

// OrderState is an observed snapshot of an exchange-owned order. This system
// never mutates it.
type OrderState struct {
	ID            string          `json:"id"`
	Account       string          `json:"account,omitempty"`
	Market        string          `json:"market"`
	Side          OrderSide       `json:"side"`
	Type          OrderType       `json:"type"`
	Size          decimal.Decimal `json:"size"`
	RemainingSize decimal.Decimal `json:"remaining_size"`
	Price         decimal.Decimal `json:"price,omitempty"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     int64           `json:"created_at"`
	LastUpdatedAt int64           `json:"last_updated_at,omitempty"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
	ClientID      string          `json:"client_id,omitempty"`
	SeqNo         int64           `json:"seq_no,omitempty"`
	Instruction   Instruction     `json:"instruction,omitempty"`
	AvgFillPrice  string          `json:"avg_fill_price,omitempty"`
	Flags         []string        `json:"flags,omitempty"`
	TriggerPrice  string          `json:"trigger_price,omitempty"`
	ReceivedAt    int64           `json:"received_at,omitempty"`
}

// FilledSize is the executed quantity, derived as size - remaining_size.
func (o *OrderState) FilledSize() decimal.Decimal {
	return o.Size.Sub(o.RemainingSize)
}

// Validate enforces the size accounting invariant
// 0 <= remaining_size <= size. Upstream records violating it are rejected
// rather than passed through.
func (o *OrderState) Validate() error {
	if o.RemainingSize.IsNegative() {
		return &ValidationError{
			Path:     "OrderState.remaining_size",
			Expected: "non-negative decimal",
			Err:      fmt.Errorf("got %s", o.RemainingSize),
		}
	}
	if o.RemainingSize.GreaterThan(o.Size) {
		return &ValidationError{
			Path:     "OrderState.remaining_size",
			Expected: "remaining_size <= size",
			Err:      fmt.Errorf("remaining %s exceeds size %s", o.RemainingSize, o.Size),
		}
	}
	return nil
}

var OrderStateSchema = Schema{
	Name:        "OrderState",
	Description: "Observed state of an order owned by the upstream matching engine.",
	Fields: []Field{
		{Name: "id", Kind: KindString, Required: true, Description: "Exchange-assigned order ID"},
		{Name: "account", Kind: KindString, Description: "Account that owns the order"},
		{Name: "market", Kind: KindString, Required: true, Description: "Market symbol"},
		{Name: "side", Kind: KindEnum, Required: true, Enum: []string{"BUY", "SELL"}, Description: "Order side"},
		{Name: "type", Kind: KindEnum, Required: true, Enum: OrderTypes, Description: "Order type"},
		{Name: "size", Kind: KindDecimal, Required: true, Description: "Order size"},
		{Name: "remaining_size", Kind: KindDecimal, Required: true, Description: "Unfilled size; size - remaining_size is the filled quantity"},
		{Name: "price", Kind: KindDecimal, Description: "Order price, 0 for MARKET orders"},
		{Name: "status", Kind: KindEnum, Required: true, Enum: orderStatuses, Description: "Order status; CLOSED, CANCELED, FILLED and EXPIRED are terminal"},
		{Name: "created_at", Kind: KindTimestamp, Required: true, Description: "Order creation time"},
		{Name: "last_updated_at", Kind: KindTimestamp, Description: "Last update time, frozen once terminal"},
		{Name: "cancel_reason", Kind: KindString, Description: "Reason the order was canceled, when applicable"},
		{Name: "client_id", Kind: KindString, Description: "Client-assigned correlation ID, unique per account"},
		{Name: "seq_no", Kind: KindInt, Description: "Increasing number assigned to each order update"},
		{Name: "instruction", Kind: KindEnum, Enum: Instructions, Description: "Execution instruction for order matching"},
		{Name: "avg_fill_price", Kind: KindString, Description: "Average fill price of the order"},
		{Name: "flags", Kind: KindArray, Description: "Order flags, e.g. REDUCE_ONLY"},
		{Name: "trigger_price", Kind: KindString, Description: "Trigger price for stop orders"},
		{Name: "received_at", Kind: KindTimestamp, Description: "Time the order was received by the API service"},
	},
}

// OrderRequest carries the caller-side parameters of an order submission.
type OrderRequest struct {
	Market       string          `json:"market"`
	Side         OrderSide       `json:"side"`
	Type         OrderType       `json:"type"`
	Size         decimal.Decimal `json:"size"`
	Price        decimal.Decimal `json:"price,omitempty"`
	TriggerPrice decimal.Decimal `json:"trigger_price,omitempty"`
	Instruction  Instruction     `json:"instruction,omitempty"`
	ReduceOnly   bool            `json:"reduce_only,omitempty"`
	ClientID     string          `json:"client_id,omitempty"`
}
