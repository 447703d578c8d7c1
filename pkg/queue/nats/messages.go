package nats

import (
	"encoding/json"

	"github.com/nvetrov/extrema/pkg/model"
)

// Subject constants
const (
	SubjectBarWrite    = "extrema.bars.write"
	SubjectMetricWrite = "extrema.metrics.write"
)

// BarBatchMsg represents a batch bar write request for one symbol
type BarBatchMsg struct {
	Symbol string      `json:"symbol"`
	Bars   []model.Bar `json:"bars"`
}

// MetricWriteMsg carries a fully annotated table for persistence
type MetricWriteMsg struct {
	Annotated *model.Annotated `json:"annotated"`
}

// Encode serializes a message to JSON bytes
func Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeBarBatch deserializes a BarBatchMsg from JSON bytes
func DecodeBarBatch(data []byte) (*BarBatchMsg, error) {
	var msg BarBatchMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodeMetricWrite deserializes a MetricWriteMsg from JSON bytes
func DecodeMetricWrite(data []byte) (*MetricWriteMsg, error) {
	var msg MetricWriteMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
