package model

import (
	"encoding/json"
	"testing"
)

func TestPositionOrdering(t *testing.T) {
	a := Position{BlockNumber: 10, LogIndex: 4}
	b := Position{BlockNumber: 10, LogIndex: 5}
	c := Position{BlockNumber: 11, LogIndex: 0}

	if !b.After(a) {
		t.Fatalf("expected %s after %s", b, a)
	}
	if !c.After(b) {
		t.Fatalf("expected %s after %s", c, b)
	}
	if a.After(a) {
		t.Fatalf("position must not be after itself")
	}
	if a.After(c) {
		t.Fatalf("expected %s before %s", a, c)
	}
}

func TestTypedEventRecordKeepsDecodedPayload(t *testing.T) {
	line := []byte(`{"block_number":7,"log_index":2,"event_name":"ServiceCreated","timestamp":1700000000,` +
		`"decoded":{"id":"42","buyerId":"1","sellerId":"0","initiatorId":"1","platformId":"3","serviceDataUri":"cid"}}`)

	var record TypedEventRecord
	if err := json.Unmarshal(line, &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if record.Position() != (Position{BlockNumber: 7, LogIndex: 2}) {
		t.Fatalf("position mismatch: %s", record.Position())
	}

	var payload ServiceCreatedData
	if err := json.Unmarshal(record.Decoded, &payload); err != nil {
		t.Fatalf("payload unmarshal failed: %v", err)
	}
	if payload.ID != "42" || payload.SellerID != "0" || payload.ServiceDataURI != "cid" {
		t.Fatalf("payload mismatch: %+v", payload)
	}
}
