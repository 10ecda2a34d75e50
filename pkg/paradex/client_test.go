package paradex

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("marshaling key: %v", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
}

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL}), srv
}

func TestMarketsRequest(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"results":[]}`))
	}))

	if _, err := client.Markets(context.Background(), "ETH-USD-PERP"); err != nil {
		t.Fatalf("Markets: %v", err)
	}
	if gotPath != "/markets" {
		t.Fatalf("path %q, want /markets", gotPath)
	}
	if !strings.Contains(gotQuery, "market=ETH-USD-PERP") {
		t.Fatalf("query %q missing market param", gotQuery)
	}

	// The ALL sentinel must not leak upstream as a literal market name.
	if _, err := client.Markets(context.Background(), "ALL"); err != nil {
		t.Fatalf("Markets(ALL): %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("query %q, want no market param for ALL", gotQuery)
	}
}

func TestPrivateCallWithoutSignerFailsBeforeNetwork(t *testing.T) {
	var hits atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	_, err := client.AccountSummary(context.Background())
	var aerr *AuthenticationError
	if !errors.As(err, &aerr) {
		t.Fatalf("got %v, want *AuthenticationError", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("upstream was called %d times, want 0", hits.Load())
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr any
	}{
		{http.StatusUnauthorized, &AuthenticationError{}},
		{http.StatusForbidden, &AuthenticationError{}},
		{http.StatusServiceUnavailable, &UpstreamError{}},
		{http.StatusNotFound, &UpstreamError{}},
	}
	for _, tt := range tests {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := client.SystemState(context.Background())
		switch want := tt.wantErr.(type) {
		case *AuthenticationError:
			if !errors.As(err, &want) {
				t.Fatalf("status %d: got %v, want *AuthenticationError", tt.status, err)
			}
		case *UpstreamError:
			if !errors.As(err, &want) {
				t.Fatalf("status %d: got %v, want *UpstreamError", tt.status, err)
			}
			if want.Status != tt.status {
				t.Fatalf("UpstreamError.Status = %d, want %d", want.Status, tt.status)
			}
		}
	}
}

func TestFractionalRateLimitStillServes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	client := NewClient(Options{BaseURL: srv.URL, RequestsPerSecond: 0.5})
	if _, err := client.SystemState(context.Background()); err != nil {
		t.Fatalf("sub-1 rps must keep a burst of at least 1: %v", err)
	}
}

func TestCanceledContextPropagates(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.SystemState(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestAuthenticateBindsSigner(t *testing.T) {
	var authHeader string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/system/config":
			w.Write([]byte(`{"starknet_chain_id":"PRIVATE_SN_POTC_SEPOLIA"}`))
		case "/account":
			authHeader = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	if client.Authenticated() {
		t.Fatal("fresh client should be public")
	}
	if err := client.Authenticate(context.Background(), "0xabc", testPrivateKeyPEM(t)); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !client.Authenticated() {
		t.Fatal("client should be authenticated after Authenticate")
	}

	if _, err := client.AccountSummary(context.Background()); err != nil {
		t.Fatalf("AccountSummary: %v", err)
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		t.Fatalf("Authorization header %q, want Bearer token", authHeader)
	}
}

func TestAuthenticateRejectsBadKey(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"starknet_chain_id":"PRIVATE_SN_POTC_SEPOLIA"}`))
	}))
	err := client.Authenticate(context.Background(), "0xabc", "not a pem key")
	var aerr *AuthenticationError
	if !errors.As(err, &aerr) {
		t.Fatalf("got %v, want *AuthenticationError", err)
	}
	if client.Authenticated() {
		t.Fatal("failed Authenticate must leave the client public")
	}
}

func TestProviderSharesOneInitialization(t *testing.T) {
	var configHits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/system/config" {
			configHits.Add(1)
		}
		w.Write([]byte(`{"starknet_chain_id":"PRIVATE_SN_POTC_SEPOLIA"}`))
	}))
	defer srv.Close()

	p := NewProvider(Options{
		BaseURL:        srv.URL,
		AccountAddress: "0xabc",
		PrivateKey:     testPrivateKeyPEM(t),
	})
	if !p.Authenticated() {
		t.Fatal("provider with a key should report authenticated mode")
	}

	var wg sync.WaitGroup
	clients := make([]*Client, 8)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := p.Client(context.Background())
			if err != nil {
				t.Errorf("Client: %v", err)
				return
			}
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range clients[1:] {
		if c != clients[0] {
			t.Fatal("concurrent callers received different clients")
		}
	}
	if configHits.Load() != 1 {
		t.Fatalf("system config fetched %d times, want 1", configHits.Load())
	}
}

func TestProviderDoesNotCacheFailedInitialization(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"starknet_chain_id":"PRIVATE_SN_POTC_SEPOLIA"}`))
	}))
	defer srv.Close()

	p := NewProvider(Options{
		BaseURL:        srv.URL,
		AccountAddress: "0xabc",
		PrivateKey:     testPrivateKeyPEM(t),
	})

	if _, err := p.Client(context.Background()); err == nil {
		t.Fatal("first initialization should fail")
	}
	c, err := p.Client(context.Background())
	if err != nil {
		t.Fatalf("second initialization: %v", err)
	}
	if !c.Authenticated() {
		t.Fatal("retried client should be authenticated")
	}
}
