package ops

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sv/mcp-paradex-go/pkg/models"
	"github.com/sv/mcp-paradex-go/pkg/normalize"
	"github.com/sv/mcp-paradex-go/pkg/paradex"
)

// fakeExchange serves canned payloads keyed by capability name and records
// every call, so tests can assert that an operation never reached upstream.
type fakeExchange struct {
	responses map[string]json.RawMessage
	calls     []string
	lastOrder models.OrderRequest
}

func (f *fakeExchange) respond(name string) (json.RawMessage, error) {
	f.calls = append(f.calls, name)
	if raw, ok := f.responses[name]; ok {
		return raw, nil
	}
	return json.RawMessage(`{"results":[]}`), nil
}

func (f *fakeExchange) SystemConfig(ctx context.Context) (json.RawMessage, error) {
	return f.respond("SystemConfig")
}
func (f *fakeExchange) SystemState(ctx context.Context) (json.RawMessage, error) {
	return f.respond("SystemState")
}
func (f *fakeExchange) SystemTime(ctx context.Context) (json.RawMessage, error) {
	return f.respond("SystemTime")
}
func (f *fakeExchange) Markets(ctx context.Context, market string) (json.RawMessage, error) {
	return f.respond("Markets")
}
func (f *fakeExchange) MarketsSummary(ctx context.Context, market string) (json.RawMessage, error) {
	return f.respond("MarketsSummary")
}
func (f *fakeExchange) Orderbook(ctx context.Context, market string, depth int) (json.RawMessage, error) {
	return f.respond("Orderbook")
}
func (f *fakeExchange) Klines(ctx context.Context, market, resolution string, startMs, endMs int64) (json.RawMessage, error) {
	return f.respond("Klines")
}
func (f *fakeExchange) Trades(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	return f.respond("Trades")
}
func (f *fakeExchange) BBO(ctx context.Context, market string) (json.RawMessage, error) {
	return f.respond("BBO")
}
func (f *fakeExchange) FundingData(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	return f.respond("FundingData")
}
func (f *fakeExchange) AccountSummary(ctx context.Context) (json.RawMessage, error) {
	return f.respond("AccountSummary")
}
func (f *fakeExchange) Positions(ctx context.Context) (json.RawMessage, error) {
	return f.respond("Positions")
}
func (f *fakeExchange) Fills(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	return f.respond("Fills")
}
func (f *fakeExchange) FundingPayments(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	return f.respond("FundingPayments")
}
func (f *fakeExchange) Transactions(ctx context.Context, txType string, startMs, endMs int64) (json.RawMessage, error) {
	return f.respond("Transactions")
}
func (f *fakeExchange) OpenOrders(ctx context.Context, market string) (json.RawMessage, error) {
	return f.respond("OpenOrders")
}
func (f *fakeExchange) OrdersHistory(ctx context.Context, market string, startMs, endMs int64) (json.RawMessage, error) {
	return f.respond("OrdersHistory")
}
func (f *fakeExchange) Order(ctx context.Context, orderID string) (json.RawMessage, error) {
	return f.respond("Order")
}
func (f *fakeExchange) OrderByClientID(ctx context.Context, clientID string) (json.RawMessage, error) {
	return f.respond("OrderByClientID")
}
func (f *fakeExchange) CreateOrder(ctx context.Context, req models.OrderRequest) (json.RawMessage, error) {
	f.lastOrder = req
	return f.respond("CreateOrder")
}
func (f *fakeExchange) CancelOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	return f.respond("CancelOrder")
}
func (f *fakeExchange) CancelOrderByClientID(ctx context.Context, clientID string) (json.RawMessage, error) {
	return f.respond("CancelOrderByClientID")
}
func (f *fakeExchange) CancelAllOrders(ctx context.Context, market string) (json.RawMessage, error) {
	return f.respond("CancelAllOrders")
}
func (f *fakeExchange) Vaults(ctx context.Context, address string) (json.RawMessage, error) {
	return f.respond("Vaults")
}
func (f *fakeExchange) VaultsConfig(ctx context.Context) (json.RawMessage, error) {
	return f.respond("VaultsConfig")
}
func (f *fakeExchange) VaultBalance(ctx context.Context, address string) (json.RawMessage, error) {
	return f.respond("VaultBalance")
}
func (f *fakeExchange) VaultSummary(ctx context.Context, address string) (json.RawMessage, error) {
	return f.respond("VaultSummary")
}
func (f *fakeExchange) VaultTransfers(ctx context.Context, address string) (json.RawMessage, error) {
	return f.respond("VaultTransfers")
}
func (f *fakeExchange) VaultPositions(ctx context.Context, address string) (json.RawMessage, error) {
	return f.respond("VaultPositions")
}
func (f *fakeExchange) VaultAccountSummary(ctx context.Context, address string) (json.RawMessage, error) {
	return f.respond("VaultAccountSummary")
}

type fakeSource struct {
	exchange      *fakeExchange
	authenticated bool
}

func (s fakeSource) Client(ctx context.Context) (Exchange, error) { return s.exchange, nil }
func (s fakeSource) Authenticated() bool                          { return s.authenticated }

func newTestRegistry(t *testing.T, responses map[string]json.RawMessage, authenticated bool) (*Registry, *fakeExchange) {
	t.Helper()
	fake := &fakeExchange{responses: responses}
	return New(fakeSource{exchange: fake, authenticated: authenticated}, nil), fake
}

const twoMarkets = `{"results":[
	{"symbol":"BTC-USD-PERP","base_currency":"BTC","quote_currency":"USD",
	 "order_size_increment":"0.001","price_tick_size":"0.1","min_notional":"10","asset_kind":"PERP"},
	{"symbol":"ETH-USD-PERP","base_currency":"ETH","quote_currency":"USD",
	 "order_size_increment":"0.01","price_tick_size":"0.01","min_notional":"10","asset_kind":"PERP"}
]}`

func TestMarketsListFirstPage(t *testing.T) {
	r, _ := newTestRegistry(t, map[string]json.RawMessage{
		"Markets": json.RawMessage(twoMarkets),
	}, false)

	payload, err := r.Invoke(context.Background(), "paradex_markets", map[string]any{"limit": 1})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	env := payload.(*normalize.Envelope[models.MarketDetails])
	if env.Total != 2 {
		t.Fatalf("total %d, want 2", env.Total)
	}
	if len(env.Results) != 1 || env.Results[0].Symbol != "ETH-USD-PERP" {
		t.Fatalf("first page %+v, want single ETH-USD-PERP (symbol descending)", env.Results)
	}
}

func TestMarketsExplicitFilter(t *testing.T) {
	r, _ := newTestRegistry(t, map[string]json.RawMessage{
		"Markets": json.RawMessage(twoMarkets),
	}, false)

	payload, err := r.Invoke(context.Background(), "paradex_markets", map[string]any{
		"market_ids": []any{"BTC-USD-PERP", "NO-SUCH-MARKET"},
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	env := payload.(*normalize.Envelope[models.MarketDetails])
	if env.Total != 1 || env.Results[0].Symbol != "BTC-USD-PERP" {
		t.Fatalf("filter kept %+v, want only BTC-USD-PERP", env.Results)
	}
}

func TestOrderbookDepthValidationAndOrdering(t *testing.T) {
	book := `{"market":"ETH-USD-PERP",
		"bids":[["2500","1"],["2499","2"]],
		"asks":[["2501","1"],["2502","2"]],
		"last_updated_at":1700000000000}`
	r, fake := newTestRegistry(t, map[string]json.RawMessage{
		"Orderbook": json.RawMessage(book),
	}, false)

	payload, err := r.Invoke(context.Background(), "paradex_orderbook", map[string]any{
		"market_id": "ETH-USD-PERP", "depth": 10,
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	ob := payload.(models.Orderbook)
	if len(ob.Bids) > 10 || len(ob.Asks) > 10 {
		t.Fatalf("levels exceed requested depth: %d bids, %d asks", len(ob.Bids), len(ob.Asks))
	}

	fake.calls = nil
	_, err = r.Invoke(context.Background(), "paradex_orderbook", map[string]any{
		"market_id": "ETH-USD-PERP", "depth": 7,
	})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("depth 7: got %v, want *ValidationError", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("invalid depth still reached upstream: %v", fake.calls)
	}
}

func TestKlinesSortedAscending(t *testing.T) {
	rows := `{"results":[
		[1700000120000,"2500","2510","2490","2505","10"],
		[1700000000000,"2490","2502","2488","2500","12"],
		[1700000060000,"2500","2508","2495","2501","8"]
	]}`
	r, _ := newTestRegistry(t, map[string]json.RawMessage{
		"Klines": json.RawMessage(rows),
	}, false)

	payload, err := r.Invoke(context.Background(), "paradex_klines", map[string]any{
		"market_id": "ETH-USD-PERP", "resolution": "1",
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	candles := payload.([]models.OHLCV)
	if len(candles) != 3 {
		t.Fatalf("got %d candles, want 3", len(candles))
	}
	for i := 1; i < len(candles); i++ {
		if candles[i].Timestamp < candles[i-1].Timestamp {
			t.Fatalf("candles not ascending at %d: %d < %d", i, candles[i].Timestamp, candles[i-1].Timestamp)
		}
	}
}

func TestKlinesRejectsUnknownResolution(t *testing.T) {
	r, fake := newTestRegistry(t, nil, false)
	_, err := r.Invoke(context.Background(), "paradex_klines", map[string]any{
		"market_id": "ETH-USD-PERP", "resolution": "7",
	})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("invalid resolution still reached upstream: %v", fake.calls)
	}
}

func TestAuthenticatedOperationFailsFastWithoutCredential(t *testing.T) {
	r, fake := newTestRegistry(t, nil, false)
	for _, name := range []string{
		"paradex_account_summary",
		"paradex_open_orders",
		"paradex_create_order",
		"paradex_cancel_orders",
	} {
		_, err := r.Invoke(context.Background(), name, map[string]any{})
		var aerr *paradex.AuthenticationError
		if !errors.As(err, &aerr) {
			t.Fatalf("%s: got %v, want *paradex.AuthenticationError", name, err)
		}
	}
	if len(fake.calls) != 0 {
		t.Fatalf("unauthenticated operations reached upstream: %v", fake.calls)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	orderResponse := `{"id":"o1","market":"ETH-USD-PERP","side":"BUY","type":"LIMIT",
		"size":"1","remaining_size":"1","status":"NEW","created_at":1700000000000}`
	r, fake := newTestRegistry(t, map[string]json.RawMessage{
		"CreateOrder": json.RawMessage(orderResponse),
	}, true)

	// Limit order without a price never reaches upstream.
	_, err := r.Invoke(context.Background(), "paradex_create_order", map[string]any{
		"market_id": "ETH-USD-PERP", "order_side": "BUY", "order_type": "LIMIT", "size": "1",
	})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError for missing price", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("invalid order reached upstream: %v", fake.calls)
	}

	payload, err := r.Invoke(context.Background(), "paradex_create_order", map[string]any{
		"market_id": "ETH-USD-PERP", "order_side": "BUY", "order_type": "LIMIT",
		"size": "1", "price": "2500",
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	state := payload.(models.OrderState)
	if state.ID != "o1" {
		t.Fatalf("order ID %q, want o1", state.ID)
	}
	if fake.lastOrder.ClientID == "" {
		t.Fatal("client_id should be generated when the caller omits one")
	}
	if fake.lastOrder.Instruction != models.InstructionGTC {
		t.Fatalf("instruction %q, want GTC default", fake.lastOrder.Instruction)
	}
}

func TestCancelOrdersNeedsSelector(t *testing.T) {
	r, fake := newTestRegistry(t, nil, true)
	_, err := r.Invoke(context.Background(), "paradex_cancel_orders", map[string]any{})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("selector-less cancel reached upstream: %v", fake.calls)
	}
}

func TestCancelOrdersQueuedOnEmptyBody(t *testing.T) {
	r, _ := newTestRegistry(t, map[string]json.RawMessage{
		"CancelOrder": json.RawMessage(``),
	}, true)
	payload, err := r.Invoke(context.Background(), "paradex_cancel_orders", map[string]any{
		"order_id": "o1",
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	out := payload.(map[string]any)
	if out["queued"] != true {
		t.Fatalf("payload %v, want queued acknowledgement", out)
	}
}

func TestFiltersModel(t *testing.T) {
	r, fake := newTestRegistry(t, nil, false)

	payload, err := r.Invoke(context.Background(), "paradex_filters_model", map[string]any{
		"operation_name": "paradex_markets",
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	model := payload.(*operationModel)
	if model.Entity != "MarketDetails" {
		t.Fatalf("entity %q, want MarketDetails", model.Entity)
	}
	if len(model.Fields) == 0 {
		t.Fatal("expected field descriptions")
	}
	op, _ := r.Operation("paradex_markets")
	if model.Description != op.Description {
		t.Fatalf("description %q, want the operation's own %q", model.Description, op.Description)
	}
	if model.EntityDescription != models.MarketDetailsSchema.Description {
		t.Fatalf("entity description %q, want the schema's %q",
			model.EntityDescription, models.MarketDetailsSchema.Description)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("introspection reached upstream: %v", fake.calls)
	}

	_, err = r.Invoke(context.Background(), "paradex_filters_model", map[string]any{
		"operation_name": "paradex_nonexistent",
	})
	var uerr *UnknownOperationError
	if !errors.As(err, &uerr) {
		t.Fatalf("got %v, want *UnknownOperationError", err)
	}
}

func TestUnknownOperation(t *testing.T) {
	r, _ := newTestRegistry(t, nil, false)
	_, err := r.Invoke(context.Background(), "paradex_made_up", nil)
	var uerr *UnknownOperationError
	if !errors.As(err, &uerr) {
		t.Fatalf("got %v, want *UnknownOperationError", err)
	}
}

func TestSystemStateMergesServerTime(t *testing.T) {
	r, _ := newTestRegistry(t, map[string]json.RawMessage{
		"SystemState": json.RawMessage(`{"status":"ok"}`),
		"SystemTime":  json.RawMessage(`{"server_time":1700000000000}`),
	}, false)
	payload, err := r.Invoke(context.Background(), "paradex_system_state", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	state := payload.(models.SystemState)
	if state.Status != "ok" || state.Timestamp != 1700000000000 {
		t.Fatalf("state %+v, want ok at 1700000000000", state)
	}
}

func TestResourceBindingsCoverServedURIs(t *testing.T) {
	r, _ := newTestRegistry(t, nil, false)

	bound := make(map[string]resourceBinding)
	for _, b := range r.resourceBindings() {
		if _, dup := bound[b.uri]; dup {
			t.Fatalf("URI %s bound twice", b.uri)
		}
		if _, err := r.Operation(b.operation); err != nil {
			t.Fatalf("URI %s bound to unregistered operation %s", b.uri, b.operation)
		}
		bound[b.uri] = b
	}

	want := []string{
		"paradex://system/config",
		"paradex://system/state",
		"paradex://system/time",
		"paradex://markets",
		"paradex://market/summary/{market_id}",
		"paradex://market/orderbook/{market_id}",
		"paradex://market/bbo/{market_id}",
		"paradex://vaults",
		"paradex://vaults/config",
		"paradex://vaults/balance/{vault_id}",
		"paradex://vaults/summary/{vault_id}",
		"paradex://vaults/transfers/{vault_id}",
		"paradex://vaults/positions/{vault_id}",
		"paradex://vaults/account-summary/{vault_id}",
	}
	for _, uri := range want {
		if _, ok := bound[uri]; !ok {
			t.Errorf("URI %s not bound", uri)
		}
	}
	if len(bound) != len(want) {
		t.Fatalf("%d bindings, want %d", len(bound), len(want))
	}
}

func TestVaultTransfersResource(t *testing.T) {
	transfers := `{"results":[
		{"id":"t1","type":"DEPOSIT","amount":"100","status":"COMPLETED","created_at":1700000000000}
	]}`
	r, _ := newTestRegistry(t, map[string]json.RawMessage{
		"VaultTransfers": json.RawMessage(transfers),
	}, false)

	var binding resourceBinding
	for _, b := range r.resourceBindings() {
		if b.uri == "paradex://vaults/transfers/{vault_id}" {
			binding = b
		}
	}
	if binding.operation == "" {
		t.Fatal("vault transfers URI not bound")
	}

	contents, err := r.readResource(context.Background(), binding, "paradex://vaults/transfers/0xvault")
	if err != nil {
		t.Fatalf("readResource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
}

func TestToolAnnotationsCarryReadOnlyHint(t *testing.T) {
	r, _ := newTestRegistry(t, nil, false)
	tests := []struct {
		name     string
		readOnly bool
	}{
		{"paradex_markets", true},
		{"paradex_account_summary", true},
		{"paradex_create_order", false},
		{"paradex_cancel_orders", false},
	}
	for _, tt := range tests {
		op, err := r.Operation(tt.name)
		if err != nil {
			t.Fatalf("Operation(%s): %v", tt.name, err)
		}
		hint := op.tool.Annotations.ReadOnlyHint
		if hint == nil {
			t.Fatalf("%s: tool carries no read-only hint", tt.name)
		}
		if *hint != tt.readOnly {
			t.Fatalf("%s: read-only hint %v, want %v", tt.name, *hint, tt.readOnly)
		}
	}
}

func TestOperationsRegisteredOnce(t *testing.T) {
	r, _ := newTestRegistry(t, nil, false)
	seen := make(map[string]bool)
	for _, op := range r.Operations() {
		if seen[op.Name] {
			t.Fatalf("operation %s registered twice", op.Name)
		}
		seen[op.Name] = true
	}
	for _, name := range []string{
		"paradex_system_config", "paradex_markets", "paradex_orderbook",
		"paradex_klines", "paradex_account_summary", "paradex_create_order",
		"paradex_vault_list", "paradex_filters_model",
	} {
		if !seen[name] {
			t.Fatalf("operation %s not registered", name)
		}
	}
}
