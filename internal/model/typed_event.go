package model

// TypedEvent is a decoded marketplace contract event.
type TypedEvent struct {
	ChainID     uint64                 `json:"chain_id"`
	BlockNumber uint64                 `json:"block_number"`
	BlockHash   string                 `json:"block_hash"`
	TxHash      string                 `json:"tx_hash"`
	TxIndex     uint64                 `json:"tx_index"`
	LogIndex    uint64                 `json:"log_index"`
	Address     string                 `json:"address"`
	EventName   string                 `json:"event_name"`
	Timestamp   uint64                 `json:"timestamp"`
	Decoded     map[string]interface{} `json:"decoded"`
	Raw         *RawLogRef             `json:"raw,omitempty"`
}

// RawLogRef keeps a minimal raw reference for traceability.
type RawLogRef struct {
	Topic0 string `json:"topic0"`
	Data   string `json:"data"`
}
