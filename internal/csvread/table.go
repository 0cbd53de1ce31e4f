package csvread

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gyeh/clinstats/internal/normalize"
)

// Table is a raw tabular dataset held fully in memory: a header row and
// string-valued data rows, with a normalized header index for tolerant
// column lookup. Raw tables are read-only once built.
type Table struct {
	Name    string
	Headers []string
	rows    [][]string
	colIdx  map[string]int // normalize.HeaderKey(header) → column index
}

// Open reads a delimited file into a Table. The reader tolerates a UTF-8
// BOM, lazy quotes, and ragged rows (short rows read as empty cells).
func Open(path, name string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, name)
}

// Read reads delimited data from r into a Table.
func Read(r io.Reader, name string) (*Table, error) {
	bufReader := bufio.NewReaderSize(r, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	rows := make([][]string, 0, 1024)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", name, len(rows)+2, err)
		}
		rows = append(rows, rec)
	}

	return FromRecords(name, header, rows), nil
}

// FromRecords builds a Table from in-memory records. Any tabular source
// works as input as long as column names are recoverable.
func FromRecords(name string, headers []string, rows [][]string) *Table {
	colIdx := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normalize.HeaderKey(h)
		if _, exists := colIdx[key]; !exists {
			colIdx[key] = i
		}
	}
	return &Table{Name: name, Headers: headers, rows: rows, colIdx: colIdx}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Column resolves a column by trying each alias in order against the
// normalized header index. Aliases must already be in HeaderKey form.
func (t *Table) Column(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if idx, ok := t.colIdx[a]; ok {
			return idx, true
		}
	}
	return -1, false
}

// Field returns the cell at (row, col), or the empty string when the row
// is shorter than col (ragged input).
func (t *Table) Field(row, col int) string {
	if col < 0 || col >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][col]
}
