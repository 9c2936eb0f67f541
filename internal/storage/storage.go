package storage

import "talentGraph/internal/model"

// Storage defines a sink for raw marketplace log records.
type Storage interface {
	PutLogBatch(logs []model.LogRecord) error
}
