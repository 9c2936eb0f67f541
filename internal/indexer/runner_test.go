package indexer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"talentGraph/internal/model"
)

type fakeSource struct {
	logs       []types.Log
	failFilter int
	calls      int
}

func (f *fakeSource) ChainID(context.Context) (uint64, error)           { return 137, nil }
func (f *fakeSource) LatestBlockNumber(context.Context) (uint64, error) { return 109, nil }
func (f *fakeSource) BlockTimestamp(_ context.Context, number uint64) (uint64, error) {
	return 1700000000 + number, nil
}

func (f *fakeSource) FilterLogs(_ context.Context, from, to uint64, _ []common.Address, _ []common.Hash) ([]types.Log, error) {
	f.calls++
	if f.failFilter > 0 {
		f.failFilter--
		return nil, errors.New("rpc unavailable")
	}
	var out []types.Log
	// Newest first, to exercise ordering within a batch.
	for i := len(f.logs) - 1; i >= 0; i-- {
		if f.logs[i].BlockNumber >= from && f.logs[i].BlockNumber <= to {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

type memorySink struct {
	records []model.LogRecord
}

func (m *memorySink) PutLogBatch(logs []model.LogRecord) error {
	m.records = append(m.records, logs...)
	return nil
}

type memoryState struct {
	rows map[string]model.Position
}

func (m *memoryState) LoadCursor(_ context.Context, name string) (model.Position, bool, error) {
	pos, ok := m.rows[name]
	return pos, ok, nil
}

func (m *memoryState) SaveCursor(_ context.Context, name string, pos model.Position) error {
	m.rows[name] = pos
	return nil
}

var escrowAddr = common.HexToAddress("0x00000000000000000000000000000000000000e5")

func marketLogs() []types.Log {
	return []types.Log{
		{Address: escrowAddr, BlockNumber: 100, Index: 0, Topics: []common.Hash{{0x01}}},
		{Address: escrowAddr, BlockNumber: 100, Index: 1, Topics: []common.Hash{{0x02}}},
		{Address: escrowAddr, BlockNumber: 100, Index: 1, Topics: []common.Hash{{0x02}}},
		{Address: escrowAddr, BlockNumber: 103, Index: 4, Topics: []common.Hash{{0x03}}, Removed: true},
		{Address: escrowAddr, BlockNumber: 105, Index: 2, Topics: []common.Hash{{0x04}}},
	}
}

func TestRunnerFetchesInLedgerOrder(t *testing.T) {
	source := &fakeSource{logs: marketLogs(), failFilter: 1}
	sink := &memorySink{}
	checkpoint := &FileCheckpoint{Path: filepath.Join(t.TempDir(), "checkpoint.json")}

	runner := NewRunner(RunConfig{
		FromBlock:  100,
		ToBlock:    105,
		Addresses:  []common.Address{escrowAddr},
		BatchSize:  10,
		Checkpoint: checkpoint,
		MaxRetries: 2,
	}, source, sink, nil)
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sink.records) != 3 {
		t.Fatalf("records = %d, want 3", len(sink.records))
	}
	for i := 1; i < len(sink.records); i++ {
		prev, cur := sink.records[i-1].Position(), sink.records[i].Position()
		if !cur.After(prev) {
			t.Fatalf("record %d out of order: %s after %s", i, cur, prev)
		}
	}
	if sink.records[0].ChainID != 137 || sink.records[0].Timestamp != 1700000100 {
		t.Fatalf("unexpected record: %+v", sink.records[0])
	}
	if source.calls != 2 {
		t.Fatalf("filter calls = %d, want 2 (one retry)", source.calls)
	}

	last, ok, err := checkpoint.Load(context.Background())
	if err != nil || !ok || last != 105 {
		t.Fatalf("checkpoint = %d, %v, %v", last, ok, err)
	}
}

func TestRunnerResumesFromStateCheckpoint(t *testing.T) {
	state := &memoryState{rows: map[string]model.Position{"fetch": {BlockNumber: 102}}}
	source := &fakeSource{logs: marketLogs()}
	sink := &memorySink{}

	runner := NewRunner(RunConfig{
		FromBlock:  100,
		Addresses:  []common.Address{escrowAddr},
		BatchSize:  3,
		Checkpoint: &StateCheckpoint{Backend: state, Name: "fetch"},
	}, source, sink, nil)
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sink.records) != 1 || sink.records[0].BlockNumber != 105 {
		t.Fatalf("unexpected records: %+v", sink.records)
	}
	if got := state.rows["fetch"].BlockNumber; got != 109 {
		t.Fatalf("state checkpoint = %d, want 109", got)
	}
	// 103..105, 106..108, 109..109
	if source.calls != 3 {
		t.Fatalf("filter calls = %d, want 3", source.calls)
	}
}

func TestRunnerRequiresAddresses(t *testing.T) {
	runner := NewRunner(RunConfig{BatchSize: 1}, &fakeSource{}, &memorySink{}, nil)
	if err := runner.Run(context.Background()); err == nil {
		t.Fatalf("expected error without addresses")
	}
}
