package dataset

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"winehypo/domain/core"
	"winehypo/domain/stats"
	"winehypo/internal"
	"winehypo/internal/errors"
	"winehypo/ports"
)

// Delimiter used by the UCI wine quality files
const Delimiter = ';'

// missingMarkers are the cell values treated as absent
var missingMarkers = []string{"", "NA", "NaN", "nan", "<nil>"}

// DataReader handles reading semicolon-delimited text and Excel files
type DataReader struct {
	log *internal.Logger
}

// NewDataReader creates a new data reader
func NewDataReader(log *internal.Logger) *DataReader {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &DataReader{log: log}
}

// LoadSample reads column from the file at path and drops missing values
func (r *DataReader) LoadSample(ctx context.Context, path string, column core.VariableKey) (stats.Sample, error) {
	if err := ctx.Err(); err != nil {
		return stats.Sample{}, err
	}

	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return stats.Sample{}, errors.Wrap(core.NewFileNotFoundError(path), "load sample")
		}
		return stats.Sample{}, errors.Wrapf(err, "stat %s", path)
	}

	start := time.Now()
	var (
		values []float64
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		values, err = r.readExcelColumn(path, string(column))
	default:
		values, err = r.readDelimitedColumn(path, string(column))
	}
	if err != nil {
		return stats.Sample{}, err
	}

	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	dropped := len(values) - len(kept)

	r.log.Debug("[DataReader] %s: read %d rows of %q in %.2fms, dropped %d missing",
		path, len(values), column, float64(time.Since(start).Nanoseconds())/1e6, dropped)

	return stats.NewSample(column, path, kept, dropped), nil
}

// readDelimitedColumn parses the file as a dataframe and extracts one column as floats
func (r *DataReader) readDelimitedColumn(path, column string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.WithDelimiter(Delimiter),
		dataframe.HasHeader(true),
		dataframe.NaNValues(missingMarkers),
		dataframe.WithTypes(map[string]series.Type{column: series.Float}),
	)
	if df.Err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("failed to parse %s: %v", path, df.Err))
	}

	if !hasColumn(df.Names(), column) {
		return nil, errors.Wrap(core.NewColumnNotFoundError(column, path), "load sample")
	}

	col := df.Col(column)
	if col.Err != nil {
		return nil, errors.Wrapf(col.Err, "column %s", column)
	}
	return col.Float(), nil
}

// readExcelColumn reads one column from the first sheet; the first row is the header
func (r *DataReader) readExcelColumn(path, column string) ([]float64, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s has no sheets", path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(core.NewColumnNotFoundError(column, path), "load sample")
	}

	idx := -1
	for i, header := range rows[0] {
		if strings.TrimSpace(header) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.Wrap(core.NewColumnNotFoundError(column, path), "load sample")
	}

	values := make([]float64, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		cell := ""
		if idx < len(row) {
			cell = strings.TrimSpace(row[idx])
		}
		if isMissing(cell) {
			values = append(values, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d of %s: %q is not numeric", rowNum+2, column, cell))
		}
		values = append(values, v)
	}
	return values, nil
}

func hasColumn(names []string, column string) bool {
	for _, name := range names {
		if name == column {
			return true
		}
	}
	return false
}

func isMissing(cell string) bool {
	for _, marker := range missingMarkers {
		if cell == marker {
			return true
		}
	}
	return false
}

var _ ports.SampleLoaderPort = (*DataReader)(nil)
