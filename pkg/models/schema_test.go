package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func mustParse(t *testing.T, s Schema, raw string, dst any) {
	t.Helper()
	if err := s.Parse(json.RawMessage(raw), dst); err != nil {
		t.Fatalf("Parse(%s): %v", raw, err)
	}
}

func wantValidationError(t *testing.T, err error, path string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v (%T), want *ValidationError", err, err)
	}
	if verr.Path != path {
		t.Fatalf("error path %q, want %q", verr.Path, path)
	}
}

func TestParseMissingRequiredField(t *testing.T) {
	err := TradeSchema.Parse(json.RawMessage(
		`{"id":"1","market":"ETH-USD-PERP","side":"BUY","size":"1","created_at":5}`), &Trade{})
	wantValidationError(t, err, "Trade.price")
}

func TestParseNullRequiredField(t *testing.T) {
	err := TradeSchema.Parse(json.RawMessage(
		`{"id":"1","market":"ETH-USD-PERP","side":"BUY","size":"1","price":null,"created_at":5}`), &Trade{})
	wantValidationError(t, err, "Trade.price")
}

func TestParseEnumOutsideAllowedSet(t *testing.T) {
	err := TradeSchema.Parse(json.RawMessage(
		`{"id":"1","market":"ETH-USD-PERP","side":"HOLD","size":"1","price":"2500","created_at":5}`), &Trade{})
	wantValidationError(t, err, "Trade.side")
}

func TestParseDecimalFromStringAndNumber(t *testing.T) {
	var a, b Trade
	mustParse(t, TradeSchema,
		`{"id":"1","market":"M","side":"BUY","size":"0.1","price":"2500.5","created_at":5}`, &a)
	mustParse(t, TradeSchema,
		`{"id":"1","market":"M","side":"BUY","size":0.1,"price":2500.5,"created_at":5}`, &b)
	if !a.Price.Equal(b.Price) || !a.Size.Equal(b.Size) {
		t.Fatalf("string and number coercion disagree: %s/%s vs %s/%s",
			a.Price, a.Size, b.Price, b.Size)
	}
}

func TestParseNonCoercibleDecimal(t *testing.T) {
	err := TradeSchema.Parse(json.RawMessage(
		`{"id":"1","market":"M","side":"BUY","size":"abc","price":"1","created_at":5}`), &Trade{})
	wantValidationError(t, err, "Trade.size")

	err = TradeSchema.Parse(json.RawMessage(
		`{"id":"1","market":"M","side":"BUY","size":true,"price":"1","created_at":5}`), &Trade{})
	wantValidationError(t, err, "Trade.size")
}

func TestOrderStateRemainingSizeInvariant(t *testing.T) {
	base := `{"id":"o1","market":"M","side":"BUY","type":"LIMIT","size":"2","remaining_size":%q,
		"status":"OPEN","created_at":5}`

	var ok OrderState
	mustParse(t, OrderStateSchema, `{"id":"o1","market":"M","side":"BUY","type":"LIMIT","size":"2","remaining_size":"0.5","status":"OPEN","created_at":5}`, &ok)
	if got := ok.FilledSize().String(); got != "1.5" {
		t.Fatalf("FilledSize = %s, want 1.5", got)
	}

	for _, remaining := range []string{"-1", "3"} {
		raw := json.RawMessage(fmt.Sprintf(base, remaining))
		err := OrderStateSchema.Parse(raw, &OrderState{})
		wantValidationError(t, err, "OrderState.remaining_size")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	terminal := []OrderStatus{OrderStatusClosed, OrderStatusCanceled, OrderStatusFilled, OrderStatusExpired}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusNew, OrderStatusOpen, OrderStatusPartiallyFilled} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestOrderbookLevelOrdering(t *testing.T) {
	valid := `{"market":"M","bids":[["2500","1"],["2499","2"]],"asks":[["2501","1"],["2502","2"]],"last_updated_at":5}`
	mustParse(t, OrderbookSchema, valid, &Orderbook{})

	badBids := `{"market":"M","bids":[["2499","1"],["2500","2"]],"asks":[],"last_updated_at":5}`
	err := OrderbookSchema.Parse(json.RawMessage(badBids), &Orderbook{})
	wantValidationError(t, err, "Orderbook.bids")

	badAsks := `{"market":"M","bids":[],"asks":[["2502","1"],["2501","2"]],"last_updated_at":5}`
	err = OrderbookSchema.Parse(json.RawMessage(badAsks), &Orderbook{})
	wantValidationError(t, err, "Orderbook.asks")
}

func TestPriceLevelRejectsShortPair(t *testing.T) {
	var l PriceLevel
	if err := json.Unmarshal([]byte(`["2500"]`), &l); err == nil {
		t.Fatal("expected error for 1-element level")
	}
}

func TestOHLCVPositionalDecode(t *testing.T) {
	var c OHLCV
	mustParse(t, OHLCVSchema, `[1700000000000,"2500","2510","2490","2505","1234.5"]`, &c)
	if c.Timestamp != 1700000000000 {
		t.Fatalf("timestamp %d", c.Timestamp)
	}
	if c.Close.String() != "2505" {
		t.Fatalf("close %s, want 2505", c.Close)
	}

	err := OHLCVSchema.Parse(json.RawMessage(`[1700000000000,"2500","2510"]`), &OHLCV{})
	if err == nil {
		t.Fatal("expected error for short kline row")
	}
}

func TestFieldDescriptionsCoverEveryField(t *testing.T) {
	descs := MarketSummarySchema.FieldDescriptions()
	if len(descs) != len(MarketSummarySchema.Fields) {
		t.Fatalf("got %d descriptions, want %d", len(descs), len(MarketSummarySchema.Fields))
	}
	for _, f := range MarketSummarySchema.Fields {
		if descs[f.Name] == "" {
			t.Fatalf("field %s has no description", f.Name)
		}
	}
}
