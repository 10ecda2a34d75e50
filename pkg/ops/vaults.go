package ops

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sv/mcp-paradex-go/pkg/models"
	"github.com/sv/mcp-paradex-go/pkg/normalize"
)

var vaultList = normalize.ListConfig[models.Vault]{
	Description:  "Managed trading vaults, ordered by address.",
	Schema:       models.VaultSchema,
	Key:          func(v models.Vault) string { return v.Address },
	Compare:      normalize.ByStringAsc(func(v models.Vault) string { return v.Address }),
	DefaultLimit: 10,
	MaxLimit:     100,
}

var vaultBalanceList = normalize.ListConfig[models.VaultBalance]{
	Description:  "Settlement-token balances of a vault.",
	Schema:       models.VaultBalanceSchema,
	Key:          func(b models.VaultBalance) string { return b.Token },
	Compare:      normalize.ByStringAsc(func(b models.VaultBalance) string { return b.Token }),
	DefaultLimit: 10,
	MaxLimit:     100,
}

var vaultTransferList = normalize.ListConfig[models.VaultTransfer]{
	Description:  "Deposits and withdrawals of a vault, newest first.",
	Schema:       models.VaultTransferSchema,
	Key:          func(t models.VaultTransfer) string { return t.Type },
	Compare:      normalize.ByInt64Desc(func(t models.VaultTransfer) int64 { return t.CreatedAt }),
	DefaultLimit: 10,
	MaxLimit:     100,
}

var vaultPositionList = normalize.ListConfig[models.Position]{
	Description:  "Positions held by a vault, one per market.",
	Schema:       models.PositionSchema,
	Key:          func(p models.Position) string { return p.Market },
	Compare:      normalize.ByStringDesc(func(p models.Position) string { return p.Market }),
	DefaultLimit: 10,
	MaxLimit:     100,
}

func vaultAddressOption() mcp.ToolOption {
	return mcp.WithString("vault_id", mcp.Required(), mcp.Description("Contract address of the vault."))
}

func (r *Registry) registerVaults() {
	r.add(&Operation{
		Name:        "paradex_vault_list",
		Description: "List managed trading vaults.",
		Schema:      &models.VaultSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_vault_list",
			withPagination(
				mcp.WithDescription("Available vaults ordered by contract address."),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			q, err := pageArgs(args, vaultList.DefaultLimit, vaultList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Vaults(ctx, "")
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, vaultList, q)
		},
	})

	r.add(&Operation{
		Name:        "paradex_vault_details",
		Description: "Details of one vault.",
		Schema:      &models.VaultSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_vault_details",
			mcp.WithDescription("Ownership, strategy and lifecycle details of a vault."),
			vaultAddressOption(),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			address, err := requireStringArg(args, "vault_id")
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.Vaults(ctx, address)
			if err != nil {
				return nil, err
			}
			return normalize.Single[models.Vault](raw, models.VaultSchema)
		},
	})

	r.add(&Operation{
		Name:        "paradex_vaults_config",
		Description: "Global vault configuration of the exchange.",
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_vaults_config",
			mcp.WithDescription("Deposit limits and fees that apply to every vault."),
		),
		handler: func(ctx context.Context, _ map[string]any) (any, error) {
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.VaultsConfig(ctx)
			if err != nil {
				return nil, err
			}
			var cfg map[string]any
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return nil, &normalize.ProtocolError{Shape: "malformed vault configuration"}
			}
			return cfg, nil
		},
	})

	r.add(&Operation{
		Name:        "paradex_vault_balance",
		Description: "Settlement-token balances of one vault.",
		Schema:      &models.VaultBalanceSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_vault_balance",
			mcp.WithDescription("Token balances currently held by a vault."),
			vaultAddressOption(),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			address, err := requireStringArg(args, "vault_id")
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.VaultBalance(ctx, address)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, vaultBalanceList, normalize.Query{
				Limit: vaultBalanceList.MaxLimit,
			})
		},
	})

	r.add(&Operation{
		Name:        "paradex_vault_summary",
		Description: "Performance statistics of one vault.",
		Schema:      &models.VaultSummarySchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_vault_summary",
			mcp.WithDescription("ROI, PnL, token supply and deposit statistics of a vault."),
			vaultAddressOption(),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			address, err := requireStringArg(args, "vault_id")
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.VaultSummary(ctx, address)
			if err != nil {
				return nil, err
			}
			return normalize.Single[models.VaultSummary](raw, models.VaultSummarySchema)
		},
	})

	r.add(&Operation{
		Name:        "paradex_vault_transfers",
		Description: "Deposit and withdrawal history of one vault, newest first.",
		Schema:      &models.VaultTransferSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_vault_transfers",
			withPagination(
				mcp.WithDescription("Deposits and withdrawals requested against a vault."),
				vaultAddressOption(),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			address, err := requireStringArg(args, "vault_id")
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, vaultTransferList.DefaultLimit, vaultTransferList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.VaultTransfers(ctx, address)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, vaultTransferList, q)
		},
	})

	r.add(&Operation{
		Name:        "paradex_vault_positions",
		Description: "Positions held by one vault.",
		Schema:      &models.PositionSchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_vault_positions",
			withPagination(
				mcp.WithDescription("Market exposure of a vault."),
				vaultAddressOption(),
			)...,
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			address, err := requireStringArg(args, "vault_id")
			if err != nil {
				return nil, err
			}
			q, err := pageArgs(args, vaultPositionList.DefaultLimit, vaultPositionList.MaxLimit)
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.VaultPositions(ctx, address)
			if err != nil {
				return nil, err
			}
			return normalize.List(raw, vaultPositionList, q)
		},
	})

	r.add(&Operation{
		Name:        "paradex_vault_account_summary",
		Description: "The account's stake in one vault.",
		Schema:      &models.VaultAccountSummarySchema,
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_vault_account_summary",
			mcp.WithDescription("Deposited amount, vault tokens and returns of the account in a vault."),
			vaultAddressOption(),
		),
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			address, err := requireStringArg(args, "vault_id")
			if err != nil {
				return nil, err
			}
			client, err := r.client(ctx)
			if err != nil {
				return nil, err
			}
			raw, err := client.VaultAccountSummary(ctx, address)
			if err != nil {
				return nil, err
			}
			return normalize.Single[models.VaultAccountSummary](raw, models.VaultAccountSummarySchema)
		},
	})
}
