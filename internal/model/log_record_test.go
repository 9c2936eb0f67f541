package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestLogRecordJSONRoundTrip(t *testing.T) {
	original := LogRecord{
		ChainID:     137,
		BlockNumber: 41000000,
		BlockHash:   "0xabc123",
		TxHash:      "0xdef456",
		TxIndex:     7,
		LogIndex:    12,
		Address:     "0x4444444444444444444444444444444444444444",
		Topics:      []string{"0xaaa", "0xbbb"},
		Data:        "0xdeadbeef",
		Removed:     false,
		Timestamp:   1700000000,
		IngestedAt:  "2024-01-01T00:00:00Z",
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded LogRecord
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}

func TestLogRecordTopic0AndPosition(t *testing.T) {
	record := LogRecord{BlockNumber: 41000000, LogIndex: 3, TxHash: "0xdef456"}
	if record.Topic0() != "" {
		t.Fatalf("anonymous log topic0 = %q", record.Topic0())
	}

	record.Topics = []string{"0xaaa", "0xbbb"}
	if record.Topic0() != "0xaaa" {
		t.Fatalf("topic0 = %q, want 0xaaa", record.Topic0())
	}
	if record.Position() != (Position{BlockNumber: 41000000, LogIndex: 3}) {
		t.Fatalf("position = %s", record.Position())
	}

	decodeErr := NewDecodeError(record, errors.New("bad data"))
	if decodeErr.Topic0 != "0xaaa" || decodeErr.LogIndex != 3 || decodeErr.Error != "bad data" {
		t.Fatalf("unexpected decode error: %+v", decodeErr)
	}
}
