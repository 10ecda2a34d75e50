package models

// SystemState is the operational state of the exchange.
type SystemState struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

var SystemStateSchema = Schema{
	Name:        "SystemState",
	Description: "Operational state of the exchange.",
	Fields: []Field{
		{Name: "status", Kind: KindString, Required: true, Description: "System status, 'ok' when fully operational"},
		{Name: "timestamp", Kind: KindTimestamp, Description: "Server time in milliseconds"},
	},
}

// SystemConfig is the exchange-wide configuration. The chain ID is what the
// authenticated client derives its signing context from.
type SystemConfig struct {
	StarknetChainID       string `json:"starknet_chain_id"`
	StarknetGatewayURL    string `json:"starknet_gateway_url,omitempty"`
	StarknetFullnodeURL   string `json:"starknet_fullnode_rpc_url,omitempty"`
	BlockExplorerURL      string `json:"block_explorer_url,omitempty"`
	ParaclearAddress      string `json:"paraclear_address,omitempty"`
	ParaclearDecimals     int    `json:"paraclear_decimals,omitempty"`
	L1CoreContractAddress string `json:"l1_core_contract_address,omitempty"`
	L1ChainID             string `json:"l1_chain_id,omitempty"`
	LiquidationFee        string `json:"liquidation_fee,omitempty"`
}

var SystemConfigSchema = Schema{
	Name:        "SystemConfig",
	Description: "Exchange-wide configuration parameters.",
	Fields: []Field{
		{Name: "starknet_chain_id", Kind: KindString, Required: true, Description: "Chain ID used to derive the signing context"},
		{Name: "starknet_gateway_url", Kind: KindString, Description: "Starknet gateway URL"},
		{Name: "starknet_fullnode_rpc_url", Kind: KindString, Description: "Starknet fullnode RPC URL"},
		{Name: "block_explorer_url", Kind: KindString, Description: "Block explorer URL"},
		{Name: "paraclear_address", Kind: KindString, Description: "Paraclear contract address"},
		{Name: "paraclear_decimals", Kind: KindInt, Description: "Paraclear decimals"},
		{Name: "l1_core_contract_address", Kind: KindString, Description: "L1 core contract address"},
		{Name: "l1_chain_id", Kind: KindString, Description: "L1 chain ID"},
		{Name: "liquidation_fee", Kind: KindString, Description: "Liquidation fee"},
	},
}
