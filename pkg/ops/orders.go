package ops

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shopspring/decimal"

	"github.com/sv/mcp-paradex-go/pkg/models"
	"github.com/sv/mcp-paradex-go/pkg/normalize"
)

var orderSides = []string{
	string(models.OrderSideBuy), string(models.OrderSideSell),
}

var openOrderList = normalize.ListConfig[models.OrderState]{
	Description:  "Resting orders of the account, newest first.",
	Schema:       models.OrderStateSchema,
	Key:          func(o models.OrderState) string { return o.Market },
	Compare:      normalize.ByInt64Desc(func(o models.OrderState) int64 { return o.CreatedAt }),
	DefaultLimit: 50,
	MaxLimit:     100,
}

var orderHistoryList = normalize.ListConfig[models.OrderState]{
	Description:  "Historical orders of the account, newest first.",
	Schema:       models.OrderStateSchema,
	Key:          func(o models.OrderState) string { return o.Market },
	Compare:      normalize.ByInt64Desc(func(o models.OrderState) int64 { return o.CreatedAt }),
	DefaultLimit: 50,
	MaxLimit:     100,
}

func (r *Registry) registerOrders() {
	r.add(&Operation{
		Name:         "paradex_open_orders",
		Description:  "Resting orders of the authenticated account, filterable by market.",
		Schema:       &models.OrderStateSchema,
		RequiresAuth: true,
		ReadOnly:     true,
		tool: mcp.NewTool("paradex_open_orders",
			withPagination(
				mcp.WithDescription("Orders currently resting on the book."),
				marketIDsOption(),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			ids, err := stringSliceArg(args, "market_ids")
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, openOrderList.DefaultLimit, openOrderList.MaxLimit)
			if err != nil {
				return nil, err
			}
			q.Keys = ids
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.OpenOrders(ctx, upstreamMarket(ids))
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, openOrderList, q)
		},
	})

	r.add(&Operation{
		Name:         "paradex_create_order",
		Description:  "Submit a new order and return its initial observed state.",
		Schema:       &models.OrderStateSchema,
		RequiresAuth: true,
		tool: mcp.NewTool("paradex_create_order",
			mcp.WithDescription("Submit an order. Limit variants need a price, triggered variants a trigger price."),
			mcp.WithString("market_id", mcp.Required(), mcp.Description("Market symbol.")),
			mcp.WithString("order_side", mcp.Required(), mcp.Enum(orderSides...), mcp.Description("BUY or SELL.")),
			mcp.WithString("order_type", mcp.Required(), mcp.Enum(models.OrderTypes...), mcp.Description("Order type.")),
			mcp.WithString("size", mcp.Required(), mcp.Description("Order size as a decimal string.")),
			mcp.WithString("price", mcp.Description("Limit price, required for limit order types.")),
			mcp.WithString("trigger_price", mcp.Description("Trigger price, required for stop and take-profit types.")),
			mcp.WithString("instruction", mcp.Enum(models.Instructions...), mcp.DefaultString(string(models.InstructionGTC)), mcp.Description("Execution instruction.")),
			mcp.WithBoolean("reduce_only", mcp.Description("Only reduce an existing position.")),
			mcp.WithString("client_id", mcp.Description("Client correlation ID; generated when omitted.")),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			req, err := orderRequestArgs(args)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.CreateOrder(ctx, req)
			if err != nil {
				return nil, err
			}
			return normalize.Single[models.OrderState](raw, models.OrderStateSchema)
		},
	})

	r.add(&Operation{
		Name:         "paradex_cancel_orders",
		Description:  "Request cancellation of one order or of every order on a market.",
		RequiresAuth: true,
		tool: mcp.NewTool("paradex_cancel_orders",
			mcp.WithDescription("Cancel by order ID, by client ID, or everything resting on a market."),
			mcp.WithString("order_id", mcp.Description("Exchange-assigned order ID to cancel.")),
			mcp.WithString("client_id", mcp.Description("Client-assigned order ID to cancel.")),
			mcp.WithString("market_id", mcp.Description("Cancel every resting order on this market.")),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			orderID, err := stringArg(args, "order_id", "")
			if err != nil {
				return nil, err
			}
			clientID, err := stringArg(args, "client_id", "")
			if err != nil {
				return nil, err
			}
			market, err := stringArg(args, "market_id", "")
			if err != nil {
				return nil, err
			}
			if orderID == "" && clientID == "" && market == "" {
				return nil, &models.ValidationError{
					Path:     "order_id",
					Expected: "one of order_id, client_id or market_id",
				}
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			var raw []byte
			switch {
			case orderID != "":
				raw, err = client.CancelOrder(ctx, orderID)
			case clientID != "":
				raw, err = client.CancelOrderByClientID(ctx, clientID)
			default:
				raw, err = client.CancelAllOrders(ctx, market)
			}
			if err != nil {
				return nil, err
			}
			// Cancellation is queued upstream; the DELETE returns no body.
			// Terminal confirmation comes from a later order_status poll.
			if len(raw) == 0 {
				return map[string]any{"queued": true}, nil
			}
			return normalize.Single[models.OrderState](raw, models.OrderStateSchema)
		},
	})

	r.add(&Operation{
		Name:         "paradex_order_status",
		Description:  "Fetch the current observed state of one order.",
		Schema:       &models.OrderStateSchema,
		RequiresAuth: true,
		ReadOnly:     true,
		tool: mcp.NewTool("paradex_order_status",
			mcp.WithDescription("Look up an order by exchange ID or client ID."),
			mcp.WithString("order_id", mcp.Description("Exchange-assigned order ID.")),
			mcp.WithString("client_id", mcp.Description("Client-assigned order ID.")),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			orderID, err := stringArg(args, "order_id", "")
			if err != nil {
				return nil, err
			}
			clientID, err := stringArg(args, "client_id", "")
			if err != nil {
				return nil, err
			}
			if orderID == "" && clientID == "" {
				return nil, &models.ValidationError{
					Path:     "order_id",
					Expected: "order_id or client_id",
				}
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			var raw []byte
			if orderID != "" {
				raw, err = client.Order(ctx, orderID)
			} else {
				raw, err = client.OrderByClientID(ctx, clientID)
			}
			if err != nil {
				return nil, err
			}
			return normalize.Single[models.OrderState](raw, models.OrderStateSchema)
		},
	})

	r.add(&Operation{
		Name:         "paradex_orders_history",
		Description:  "Historical orders of the authenticated account, newest first.",
		Schema:       &models.OrderStateSchema,
		RequiresAuth: true,
		ReadOnly:     true,
		tool: mcp.NewTool("paradex_orders_history",
			withPagination(withTimeRange(
				mcp.WithDescription("Past orders, including terminal ones, over a time range."),
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
			q, err := pageArgs(args, orderHistoryList.DefaultLimit, orderHistoryList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.OrdersHistory(ctx, market, start, end)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, orderHistoryList, q)
		},
	})
}

// orderRequestArgs validates the submission parameters before anything is
// sent upstream. Limit variants require a price, triggered variants a
// trigger price, and a client_id is generated when the caller omits one.
func orderRequestArgs(args map[string]any) (models.OrderRequest, error) {
	var req models.OrderRequest

	market, err := requireStringArg(args, "market_id")
	if err != nil {
		return req, err
	}
	side, err := enumArg(args, "order_side", orderSides, "")
	if err != nil {
		return req, err
	}
	if side == "" {
		return req, &models.ValidationError{Path: "order_side", Expected: "BUY or SELL"}
	}
	typ, err := enumArg(args, "order_type", models.OrderTypes, "")
	if err != nil {
		return req, err
	}
	if typ == "" {
		return req, &models.ValidationError{Path: "order_type", Expected: "a supported order type"}
	}
	size, err := decimalArg(args, "size", true)
	if err != nil {
		return req, err
	}
	if !size.IsPositive() {
		return req, &models.ValidationError{Path: "size", Expected: "positive decimal"}
	}
	instruction, err := enumArg(args, "instruction", models.Instructions, string(models.InstructionGTC))
	if err != nil {
		return req, err
	}
	reduceOnly, err := boolArg(args, "reduce_only", false)
	if err != nil {
		return req, err
	}
	clientID, err := stringArg(args, "client_id", "")
	if err != nil {
		return req, err
	}
	if clientID == "" {
		clientID = uuid.NewString()
	}

	orderType := models.OrderType(typ)
	var price, triggerPrice decimal.Decimal
	if limitOrderType(orderType) {
		price, err = decimalArg(args, "price", true)
		if err != nil {
			return req, err
		}
		if !price.IsPositive() {
			return req, &models.ValidationError{Path: "price", Expected: "positive decimal"}
		}
	}
	if triggeredOrderType(orderType) {
		triggerPrice, err = decimalArg(args, "trigger_price", true)
		if err != nil {
			return req, err
		}
		if !triggerPrice.IsPositive() {
			return req, &models.ValidationError{Path: "trigger_price", Expected: "positive decimal"}
		}
	}

	return models.OrderRequest{
		Market:       market,
		Side:         models.OrderSide(side),
		Type:         orderType,
		Size:         size,
		Price:        price,
		TriggerPrice: triggerPrice,
		Instruction:  models.Instruction(instruction),
		ReduceOnly:   reduceOnly,
		ClientID:     clientID,
	}, nil
}

func limitOrderType(t models.OrderType) bool {
	switch t {
	case models.OrderTypeLimit, models.OrderTypeStopLimit,
		models.OrderTypeTakeProfitLimit, models.OrderTypeStopLossLimit:
		return true
	}
	return false
}

func triggeredOrderType(t models.OrderType) bool {
	switch t {
	case models.OrderTypeStopLimit, models.OrderTypeStopMarket,
		models.OrderTypeTakeProfitLimit, models.OrderTypeTakeProfitMarket,
		models.OrderTypeStopLossLimit, models.OrderTypeStopLossMarket:
		return true
	}
	return false
}
