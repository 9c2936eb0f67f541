package market

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"talentGraph/internal/model"
)

// Decoder defines a log decoder.
type Decoder interface {
	CanDecode(topic0 string) bool
	Decode(log model.LogRecord) (*model.TypedEvent, error)
}

// DecoderConfig configures decoder behavior.
type DecoderConfig struct {
	// Topic0Map adds topic0 aliases for canonical event names.
	Topic0Map map[string]string
}

type boundEvent struct {
	name  string
	event abi.Event
}

// EventDecoder decodes every marketplace contract event.
type EventDecoder struct {
	topicToEvent map[string]boundEvent
}

// NewEventDecoder builds a decoder over the marketplace contract catalogue.
func NewEventDecoder(cfg DecoderConfig) (*EventDecoder, error) {
	all, err := Contracts()
	if err != nil {
		return nil, err
	}

	topicToEvent := make(map[string]boundEvent)
	for _, contract := range all {
		for abiName, canonical := range contract.Events {
			event := contract.ABI.Events[abiName]
			topic0 := strings.ToLower(event.ID.Hex())
			if existing, ok := topicToEvent[topic0]; ok {
				return nil, fmt.Errorf("topic0 collision between %s and %s", existing.name, canonical)
			}
			topicToEvent[topic0] = boundEvent{name: canonical, event: event}
		}
	}

	for topic0, name := range cfg.Topic0Map {
		if topic0 == "" {
			continue
		}
		event, err := EventByName(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("unsupported event name in topic0 map: %s", name)
		}
		topicToEvent[strings.ToLower(topic0)] = boundEvent{name: strings.TrimSpace(name), event: event}
	}

	return &EventDecoder{topicToEvent: topicToEvent}, nil
}

// CanDecode checks if the topic0 is supported.
func (d *EventDecoder) CanDecode(topic0 string) bool {
	if topic0 == "" {
		return false
	}
	_, ok := d.topicToEvent[strings.ToLower(topic0)]
	return ok
}

// Decode converts a LogRecord into a TypedEvent.
func (d *EventDecoder) Decode(log model.LogRecord) (*model.TypedEvent, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("missing topics")
	}
	bound, ok := d.topicToEvent[strings.ToLower(log.Topics[0])]
	if !ok {
		return nil, fmt.Errorf("unsupported topic0: %s", log.Topics[0])
	}
	if !common.IsHexAddress(log.Address) {
		return nil, fmt.Errorf("invalid contract address: %s", log.Address)
	}

	indexedTopics, err := parseIndexedTopics(bound.event, log.Topics)
	if err != nil {
		return nil, err
	}

	values := make(map[string]interface{}, len(bound.event.Inputs))
	if err := abi.ParseTopicsIntoMap(values, indexedArguments(bound.event.Inputs), indexedTopics); err != nil {
		return nil, fmt.Errorf("parse topics: %w", err)
	}

	data, err := hexutil.Decode(normalizeHex(log.Data))
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	if err := bound.event.Inputs.NonIndexed().UnpackIntoMap(values, data); err != nil {
		return nil, fmt.Errorf("unpack %s: %w", bound.name, err)
	}

	decoded := make(map[string]interface{}, len(values))
	for key, value := range values {
		normalized, err := normalizeValue(value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", bound.name, key, err)
		}
		decoded[key] = normalized
	}

	return &model.TypedEvent{
		ChainID:     log.ChainID,
		BlockNumber: log.BlockNumber,
		BlockHash:   log.BlockHash,
		TxHash:      log.TxHash,
		TxIndex:     log.TxIndex,
		LogIndex:    log.LogIndex,
		Address:     common.HexToAddress(log.Address).Hex(),
		EventName:   bound.name,
		Timestamp:   log.Timestamp,
		Decoded:     decoded,
		Raw:         &model.RawLogRef{Topic0: log.Topics[0], Data: log.Data},
	}, nil
}

// normalizeValue turns ABI values into JSON friendly scalars.
// Integers wider than 16 bits become decimal strings.
func normalizeValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return "0", nil
		}
		return v.String(), nil
	case common.Address:
		return v.Hex(), nil
	case common.Hash:
		return v.Hex(), nil
	case []byte:
		return hexutil.Encode(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return new(big.Int).SetUint64(v).String(), nil
	case string, bool:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}

func normalizeHex(data string) string {
	if data == "" {
		return "0x"
	}
	return data
}

func parseIndexedTopics(event abi.Event, topics []string) ([]common.Hash, error) {
	indexedCount := len(indexedArguments(event.Inputs))
	if len(topics) != indexedCount+1 {
		return nil, fmt.Errorf("expected %d topics, got %d", indexedCount+1, len(topics))
	}
	return parseTopicHashes(topics[1:])
}

func parseTopicHashes(topics []string) ([]common.Hash, error) {
	out := make([]common.Hash, 0, len(topics))
	for _, topic := range topics {
		data, err := hexutil.Decode(topic)
		if err != nil {
			return nil, fmt.Errorf("invalid topic: %w", err)
		}
		if len(data) > 32 {
			return nil, fmt.Errorf("topic length %d", len(data))
		}
		out = append(out, common.BytesToHash(data))
	}
	return out, nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}
