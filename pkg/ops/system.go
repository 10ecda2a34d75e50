package ops

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sv/mcp-paradex-go/pkg/models"
	"github.com/sv/mcp-paradex-go/pkg/normalize"
)

// serverTime is the shape of the /system/time response.
type serverTime struct {
	ServerTime int64 `json:"server_time"`
}

func (r *Registry) registerSystem() {
	r.add(&Operation{
		Name:        "paradex_system_config",
		Description: "Exchange-wide configuration parameters.",
		Schema:      &models.SystemConfigSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_system_config",
			mcp.WithDescription("Chain ID, contract addresses and other exchange-wide settings."),
		),
		handler: func(ctx context.Context, _ map[string]any) (any, error) {
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.SystemConfig(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.Single[models.SystemConfig](raw, models.SystemConfigSchema)
		},
	})

	r.add(&Operation{
		Name:        "paradex_system_state",
		Description: "Operational state of the exchange with the current server time.",
		Schema:      &models.SystemStateSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_system_state",
			mcp.WithDescription("Whether the exchange is operational, stamped with server time."),
		),
		handler: func(ctx context.Context, _ map[string]any) (any, error) {
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			rawState, err := client.SystemState(ctx)
			if err != nil {
				return nil, err
			}
			state, err := normalize.Single[models.SystemState](rawState, models.SystemStateSchema)
			if err != nil {
				return nil, err
			}
			rawTime, err := client.SystemTime(ctx)
			if err != nil {
				return nil, err
			}
			now, err := decodeServerTime(rawTime)
			if err != nil {
				return nil, err
			}
			state.Timestamp = now.ServerTime
			return state, nil
		},
	})

	r.add(&Operation{
		Name:        "paradex_system_time",
		Description: "Current exchange server time in unix milliseconds.",
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_system_time",
			mcp.WithDescription("Current server time in unix milliseconds."),
		),
		handler: func(ctx context.Context, _ map[string]any) (any, error) {
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.SystemTime(ctx)
			if err != nil {
				return nil, err
			}
			return decodeServerTime(raw)
		},
	})
}

func decodeServerTime(raw json.RawMessage) (*serverTime, error) {
	var now serverTime
	if err := json.Unmarshal(raw, &now); err != nil {
		return nil, &normalize.ProtocolError{Shape: "malformed server time"}
	}
	if now.ServerTime <= 0 {
		return nil, &models.ValidationError{
			Path:     "server_time",
			Expected: "positive unix millisecond timestamp",
			Err:      fmt.Errorf("got %d", now.ServerTime),
		}
	}
	return &now, nil
}
