package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encodings lists the accepted values for the encoding option.
var Encodings = []string{"utf-8", "windows-1252", "shift_jis"}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "windows-1252", "cp1252", "latin1":
		return charmap.Windows1252, nil
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q (use one of %s)", name, strings.Join(Encodings, ", "))
}

// NewReader decodes r from the named encoding into UTF-8.
func NewReader(r io.Reader, encodingName string) (io.Reader, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// Table is a decoded CSV file.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadTable reads a CSV file whose first row holds the headers. Blank rows are
// skipped and short rows are padded.
func ReadTable(r io.Reader, encodingName string) (*Table, error) {
	decoded, err := NewReader(r, encodingName)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	table := &Table{Headers: headers}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(table.Rows)+2, err)
		}
		if blank(row) {
			continue
		}
		for len(row) < len(headers) {
			row = append(row, "")
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
