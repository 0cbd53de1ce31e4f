package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/clinstats/internal/model"
)

// WriteEnrichedParquet writes the enriched view as
// enriched_encounters.parquet using a generic writer.
func WriteEnrichedParquet(dir string, enriched []model.EnrichedEncounter) error {
	path := filepath.Join(dir, "enriched_encounters.parquet")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[model.EnrichedParquetRow](f)
	rows := make([]model.EnrichedParquetRow, len(enriched))
	for i := range enriched {
		rows[i] = enriched[i].ToParquetRow()
	}
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			f.Close()
			return fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
