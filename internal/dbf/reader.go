// internal/dbf/reader.go
//
// Minimal reader for dBASE III/IV tables, enough to re-emit the legacy SISMED
// tables (TFORMDET, MSTOCKALM, MPRODUCTO) as flat CSV files. Values are
// returned as trimmed strings so the extraction preserves the source
// formatting; typing happens downstream when the CSVs are loaded.
package dbf

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

const (
	headerTerminator = 0x0D
	fieldDescSize    = 32
	recordDeleted    = 0x2A
)

// Field describes one column of the table.
type Field struct {
	Name     string
	Type     byte // C, N, F, D, L, M
	Length   int
	Decimals int
}

// Table is a fully-loaded DBF table. Rows contains active records only;
// deleted records (0x2A flag) are skipped.
type Table struct {
	Fields []Field
	Rows   [][]string
}

// FieldNames returns the column names in file order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Read parses a whole DBF table. Character data is decoded using the codepage
// indicated by the file's language driver byte.
func Read(r io.Reader) (*Table, error) {
	var header [32]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading dbf header: %w", err)
	}

	recordCount := int(binary.LittleEndian.Uint32(header[4:8]))
	headerSize := int(binary.LittleEndian.Uint16(header[8:10]))
	recordSize := int(binary.LittleEndian.Uint16(header[10:12]))
	decoder := decoderFor(header[29])

	if headerSize < 32 || recordSize < 1 {
		return nil, fmt.Errorf("malformed dbf header: header size %d, record size %d", headerSize, recordSize)
	}

	rest := make([]byte, headerSize-32)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, fmt.Errorf("reading dbf field descriptors: %w", err)
	}

	fields, err := parseFields(rest)
	if err != nil {
		return nil, err
	}

	expected := 1 // deletion flag
	for _, f := range fields {
		expected += f.Length
	}
	if expected != recordSize {
		return nil, fmt.Errorf("field lengths sum to %d, header says record size %d", expected, recordSize)
	}

	table := &Table{Fields: fields, Rows: make([][]string, 0, recordCount)}
	record := make([]byte, recordSize)
	for i := 0; i < recordCount; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, fmt.Errorf("reading dbf record %d: %w", i, err)
		}
		if record[0] == recordDeleted {
			continue
		}
		row := make([]string, len(fields))
		offset := 1
		for j, f := range fields {
			raw := record[offset : offset+f.Length]
			offset += f.Length
			row[j] = decodeValue(f, raw, decoder)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func parseFields(descriptors []byte) ([]Field, error) {
	var fields []Field
	for offset := 0; offset < len(descriptors); offset += fieldDescSize {
		if descriptors[offset] == headerTerminator {
			return fields, nil
		}
		if offset+fieldDescSize > len(descriptors) {
			break
		}
		desc := descriptors[offset : offset+fieldDescSize]
		name := strings.TrimRight(string(desc[:11]), "\x00")
		fields = append(fields, Field{
			Name:     name,
			Type:     desc[11],
			Length:   int(desc[16]),
			Decimals: int(desc[17]),
		})
	}
	return nil, fmt.Errorf("dbf field descriptors not terminated")
}

func decodeValue(f Field, raw []byte, decoder *charmap.Charmap) string {
	if len(raw) == 0 {
		return ""
	}
	switch f.Type {
	case 'C':
		decoded, err := decoder.NewDecoder().Bytes(raw)
		if err != nil {
			decoded = raw
		}
		return strings.TrimSpace(string(decoded))
	case 'L':
		switch raw[0] {
		case 'T', 't', 'Y', 'y':
			return "T"
		case 'F', 'f', 'N', 'n':
			return "F"
		default:
			return ""
		}
	default:
		// N, F, D and anything exotic pass through as trimmed text.
		return strings.TrimSpace(string(raw))
	}
}

// decoderFor maps the DBF language driver byte to a codepage. The SISMED
// tables in the wild carry DOS codepages 437/850 or Windows-1252.
func decoderFor(languageDriver byte) *charmap.Charmap {
	switch languageDriver {
	case 0x01:
		return charmap.CodePage437
	case 0x02, 0x1B:
		return charmap.CodePage850
	case 0x64:
		return charmap.CodePage852
	case 0x65:
		return charmap.CodePage865
	case 0x66:
		return charmap.CodePage866
	case 0xC8:
		return charmap.Windows1250
	case 0xC9:
		return charmap.Windows1251
	default:
		return charmap.Windows1252
	}
}
