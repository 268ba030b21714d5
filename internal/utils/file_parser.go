package utils

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"pulse360/internal/logger"
	. "pulse360/internal/models"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file contains no data rows")
)

// ParsedFile is the parser output: the header labels in file order plus the
// data rows keyed by those labels.
type ParsedFile struct {
	Headers []string
	Rows    []RawRow
}

// FileParser turns an uploaded spreadsheet or CSV into RawRows keyed by the
// file's own header labels. Cell values are always strings, whatever the
// source cell type was.
type FileParser struct {
	log logger.Logger
}

func NewFileParser() *FileParser {
	return &FileParser{log: logger.New("FileParser")}
}

// ParseFile dispatches on the filename extension. startRow is 1-based; rows
// before it are discarded and the row at startRow is treated as the header.
func (p *FileParser) ParseFile(data []byte, fileName string, startRow int) (*ParsedFile, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return p.ParseCSV(data, startRow)
	case ".xlsx", ".xls":
		// excelize reads OOXML only. A legacy BIFF .xls fails to open and
		// the error surfaces as a batch-level failure.
		return p.ParseExcel(data, startRow)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

func (p *FileParser) ParseCSV(data []byte, startRow int) (*ParsedFile, error) {
	log := p.log.Function("ParseCSV")

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var grid [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, log.Err("failed to read csv row", err, "row", len(grid)+1)
		}
		grid = append(grid, record)
	}

	return p.rowsFromGrid(grid, startRow, false)
}

func (p *FileParser) ParseExcel(data []byte, startRow int) (*ParsedFile, error) {
	return p.parseExcel(data, startRow, false)
}

// ParseExcelColumns reads the spreadsheet headerlessly: every row including
// the first becomes data, keyed by column letter (A, B, C, ...). Used by the
// column-offset mapping path.
func (p *FileParser) ParseExcelColumns(data []byte, startRow int) (*ParsedFile, error) {
	return p.parseExcel(data, startRow, true)
}

func (p *FileParser) parseExcel(data []byte, startRow int, headerless bool) (*ParsedFile, error) {
	log := p.log.Function("parseExcel")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, log.Err("failed to open spreadsheet", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	// RawCellValue keeps numerics, dates and booleans as their raw string
	// representation instead of formatted values.
	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, log.Err("failed to read sheet rows", err, "sheet", sheets[0])
	}

	return p.rowsFromGrid(grid, startRow, headerless)
}

// rowsFromGrid applies the shared startRow/header semantics to a rectangular
// string grid. In headerless mode every surviving row is data and keys are
// column letters.
func (p *FileParser) rowsFromGrid(grid [][]string, startRow int, headerless bool) (*ParsedFile, error) {
	if startRow < 1 {
		startRow = 1
	}
	if len(grid) < startRow {
		return nil, ErrEmptyFile
	}

	var headers []string
	dataStart := startRow - 1

	if headerless {
		width := 0
		for _, row := range grid {
			if len(row) > width {
				width = len(row)
			}
		}
		headers = make([]string, width)
		for i := range headers {
			headers[i] = ColumnLetter(i)
		}
	} else {
		headers = make([]string, len(grid[startRow-1]))
		for i, h := range grid[startRow-1] {
			headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		}
		dataStart = startRow
	}

	var rows []RawRow
	for i := dataStart; i < len(grid); i++ {
		record := grid[i]

		cells := make(map[string]string, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(record) {
				cells[header] = record[j]
			} else {
				cells[header] = ""
			}
		}

		rows = append(rows, RawRow{Number: i + 1, Cells: cells})
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	return &ParsedFile{Headers: headers, Rows: rows}, nil
}

// ColumnLetter converts a 0-based column index to its spreadsheet letter
// (0 -> A, 25 -> Z, 26 -> AA).
func ColumnLetter(index int) string {
	letter := ""
	for index >= 0 {
		letter = string(rune('A'+index%26)) + letter
		index = index/26 - 1
	}
	return letter
}
