package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rpattn/clubsync/pkg/apierror"

	"github.com/xuri/excelize/v2"
)

// Format is the upload format declared by the endpoint.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Validate confirms the upload is syntactically well-formed for the declared
// format and that the first record carries the entity type's natural-key
// fields. It returns a streaming record source positioned at the first
// record. Validation has no side effects.
func Validate(payload []byte, fileName string, format Format, entityType EntityType) (RecordSource, error) {
	if !KnownEntityType(entityType) {
		return nil, apierror.BadRequest(fmt.Sprintf("unknown entity type %q", entityType))
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != "."+string(format) {
		return nil, apierror.Validation(fmt.Sprintf("expected a .%s file, got %q", format, fileName))
	}
	if len(payload) == 0 {
		return nil, apierror.Validation("file is empty")
	}

	var (
		source RecordSource
		first  Record
		err    error
	)
	switch format {
	case FormatCSV:
		source, first, err = parseCSV(payload)
	case FormatJSON:
		source, first, err = parseJSON(payload)
	case FormatXLSX:
		source, first, err = parseXLSX(payload)
	default:
		return nil, apierror.Validation(fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, err
	}

	if missing := missingRequiredFields(first, entityType); len(missing) > 0 {
		return nil, apierror.Validation(
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
		).WithFields(missing...)
	}

	return source, nil
}

// missingRequiredFields checks the first record only. Full-row validation is
// not attempted; a malformed interior record is skipped or fails during
// transformation instead.
func missingRequiredFields(first Record, entityType EntityType) []string {
	var missing []string
	for _, field := range RequiredFields(entityType) {
		if !first.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// csvSource streams rows from the reader, replaying the record buffered
// during validation first. Fields are trimmed and all-empty rows skipped.
type csvSource struct {
	reader   *csv.Reader
	headers  []string
	buffered []Record
}

func (s *csvSource) Next() (Record, error) {
	if len(s.buffered) > 0 {
		rec := s.buffered[0]
		s.buffered = s.buffered[1:]
		return rec, nil
	}
	for {
		row, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		rec, empty := rowToRecord(s.headers, row)
		if empty {
			continue
		}
		return rec, nil
	}
}

func rowToRecord(headers []string, row []string) (Record, bool) {
	rec := make(Record, len(headers))
	empty := true
	for i, header := range headers {
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		if value != "" {
			empty = false
		}
		rec[header] = value
	}
	return rec, empty
}

func parseCSV(payload []byte) (RecordSource, Record, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	headerRow, err := csvReader.Read()
	if err != nil {
		return nil, nil, apierror.Validation(fmt.Sprintf("failed to parse csv: %v", err))
	}

	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	source := &csvSource{reader: csvReader, headers: headers}

	// Pull the first data record now so the natural-key check can run before
	// any transformation; the source replays it.
	first, err := source.Next()
	if errors.Is(err, io.EOF) {
		return nil, nil, apierror.Validation("file contains no records")
	}
	if err != nil {
		return nil, nil, apierror.Validation(err.Error())
	}
	source.buffered = append(source.buffered, first)

	return source, first, nil
}

func parseJSON(payload []byte) (RecordSource, Record, error) {
	var parsed any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, nil, apierror.Validation(fmt.Sprintf("failed to parse json: %v", err))
	}

	items, err := extractJSONRecords(parsed)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, apierror.Validation("file contains no records")
	}

	first, ok := items[0].(map[string]any)
	if !ok {
		return nil, nil, apierror.Validation("first record is not an object")
	}

	return &sliceSource{items: items}, Record(first), nil
}

// extractJSONRecords accepts a bare array or an object exposing a
// DetailedRows or Members container, the two shapes the external platform
// exports. Anything else is rejected.
func extractJSONRecords(parsed any) ([]any, error) {
	switch value := parsed.(type) {
	case []any:
		return value, nil
	case map[string]any:
		for _, container := range []string{"DetailedRows", "Members"} {
			inner, ok := value[container]
			if !ok {
				continue
			}
			items, isArray := inner.([]any)
			if !isArray {
				return nil, apierror.Validation(fmt.Sprintf("%s is not an array", container))
			}
			return items, nil
		}
		return nil, apierror.Validation("json object has no DetailedRows or Members array")
	default:
		return nil, apierror.Validation("json value is not an array of records")
	}
}

func parseXLSX(payload []byte) (RecordSource, Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, nil, apierror.Validation(fmt.Sprintf("failed to open xlsx: %v", err))
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apierror.Validation("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, apierror.Validation(fmt.Sprintf("failed to read xlsx rows: %v", err))
	}
	if len(rows) < 2 {
		return nil, nil, apierror.Validation("file contains no records")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	items := make([]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, empty := rowToRecord(headers, row)
		if empty {
			continue
		}
		items = append(items, map[string]any(rec))
	}
	if len(items) == 0 {
		return nil, nil, apierror.Validation("file contains no records")
	}

	first := items[0].(map[string]any)
	return &sliceSource{items: items}, Record(first), nil
}
