package history

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/tabletalk/tabletalk/schema"
)

// ParquetEntry mirrors schema.HistoryEntry with parquet column tags for
// offline analysis of the query log.
type ParquetEntry struct {
	ID             string    `parquet:"id,snappy"`
	ConversationID string    `parquet:"conversation_id,optional,snappy"`
	AskedAt        time.Time `parquet:"asked_at,snappy"`
	Query          string    `parquet:"question,snappy"`
	DatasetID      string    `parquet:"dataset_id,snappy"`
	Metric         string    `parquet:"metric,optional,snappy"`
	Dimension      string    `parquet:"dimension,optional,snappy"`
	Aggregation    string    `parquet:"aggregation,optional,snappy"`
	ChartType      string    `parquet:"chart_type,optional,snappy"`
	Answered       bool      `parquet:"answered,snappy"`
	DurationMs     int64     `parquet:"duration_ms,snappy"`
}

// ExportParquet writes history entries to a Parquet file, schema inferred
// from the ParquetEntry struct tags.
func ExportParquet(entries []schema.HistoryEntry, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	records := make([]ParquetEntry, len(entries))
	for i, e := range entries {
		records[i] = ParquetEntry{
			ID:             e.ID,
			ConversationID: e.ConversationID,
			AskedAt:        e.AskedAt,
			Query:          e.Query,
			DatasetID:      e.DatasetID,
			Metric:         e.Metric,
			Dimension:      e.Dimension,
			Aggregation:    e.Aggregation,
			ChartType:      e.ChartType,
			Answered:       e.Answered,
			DurationMs:     e.DurationMs,
		}
	}

	writer := parquet.NewGenericWriter[ParquetEntry](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet data: %w", err)
	}
	return nil
}
