package indexer

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestParseAddresses(t *testing.T) {
	got, err := ParseAddresses([]string{
		"0x00000000000000000000000000000000000000e5",
		" 0x00000000000000000000000000000000000000E5 ",
		"",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("addresses = %d, want 1", len(got))
	}

	if _, err := ParseAddresses([]string{"0x0000000000000000000000000000000000000000"}); err == nil {
		t.Fatalf("expected error for zero address")
	}
	if _, err := ParseAddresses([]string{"escrow"}); err == nil {
		t.Fatalf("expected error for invalid address")
	}
}

func TestParseTopic0(t *testing.T) {
	sig := crypto.Keccak256Hash([]byte("FeesClaimed(uint256,address,uint256)"))
	got, err := ParseTopic0([]string{sig.Hex()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != sig {
		t.Fatalf("topics = %v", got)
	}

	all, err := ParseTopic0(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 28 {
		t.Fatalf("default topics = %d, want 28", len(all))
	}

	if _, err := ParseTopic0([]string{"0x1234"}); err == nil {
		t.Fatalf("expected error for short topic0")
	}
}
