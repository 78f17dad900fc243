package importers

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrSourceMissing is returned when neither the JSON export nor its CSV
// sibling exists in the import directory.
var ErrSourceMissing = errors.New("import source missing")

// ReadSource loads <dir>/<name>.json, falling back to <dir>/<name>.csv.
func ReadSource(dir, name string) ([]RawRecord, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))

	jsonPath := filepath.Join(dir, base+".json")
	if f, err := os.Open(jsonPath); err == nil {
		defer f.Close()
		records, err := ParseJSONRecords(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
		return records, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	csvPath := filepath.Join(dir, base+".csv")
	f, err := os.Open(csvPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, base)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ParseCSVRecords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", csvPath, err)
	}
	return records, nil
}

// ParseJSONRecords decodes a JSON array of flat objects. Nested values are
// kept as their JSON text, null becomes the empty string.
func ParseJSONRecords(r io.Reader) ([]RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, err
	}

	records := make([]RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(RawRecord, len(row))
		for k, v := range row {
			rec[strings.TrimSpace(k)] = stringify(v)
		}
		records = append(records, rec)
	}
	return records, nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// ParseCSVRecords reads a CSV export with a header row. A leading UTF-8
// BOM (common in spreadsheet exports) is dropped.
func ParseCSVRecords(r io.Reader) ([]RawRecord, error) {
	br := stripUTF8BOM(bufio.NewReader(r))

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		if !utf8.ValidString(header[i]) {
			return nil, errors.New("invalid header encoding")
		}
	}

	var records []RawRecord
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlankRow(row) {
			continue
		}
		rec := make(RawRecord, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && bytes.Equal(b, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = r.Discard(3)
	}
	return r
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
