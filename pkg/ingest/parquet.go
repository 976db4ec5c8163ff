// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ingest is the CLI's only I/O layer: load a table from Parquet
// into the in-memory columnar model pkg/table defines, and write one back
// out. Nothing in pkg/partition imports this package — the core operates
// purely on table.View.
package ingest

import (
	"encoding/json"
	"fmt"

	pqLocal "github.com/xitongsys/parquet-go-source/local"
	pqReader "github.com/xitongsys/parquet-go/reader"
	pqWriter "github.com/xitongsys/parquet-go/writer"

	"github.com/huandu/go-clone"

	"github.com/cordata/hashpart/pkg/table"
	"github.com/cordata/hashpart/pkg/types"
)

// ColumnSpec names one column of a table on disk: its name and its
// physical type. The Parquet type it is written as is derived from the
// physical type by parquetTypeName; its position is its index in
// Schema.Columns, which LoadTable reads by column index.
type ColumnSpec struct {
	Name string
	Typ  types.PhyType
}

// Schema is a named, ordered list of ColumnSpec. Clone deep-copies it with
// huandu/go-clone rather than a manual copy loop, for a caller that needs
// an independent mutable schema derived from a shared template; the CLI
// builds a fresh schema per run and does not call it.
type Schema struct {
	Columns []ColumnSpec
}

func (s *Schema) Clone() *Schema {
	return clone.Clone(s).(*Schema)
}

func (s *Schema) jsonSchema() (string, error) {
	type field struct {
		Tag string `json:"Tag"`
	}
	fields := make([]field, len(s.Columns))
	for i, c := range s.Columns {
		fields[i] = field{Tag: fmt.Sprintf("name=%s, type=%s", c.Name, parquetTypeName(c.Typ))}
	}
	doc := struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}{Tag: "name=row", Fields: fields}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func parquetTypeName(t types.PhyType) string {
	switch t {
	case types.Bool:
		return "BOOLEAN"
	case types.Int8, types.Int16, types.Int32, types.Date32:
		return "INT32"
	case types.Uint8, types.Uint16, types.Uint32:
		return "UINT32"
	case types.Int64, types.Timestamp64:
		return "INT64"
	case types.Uint64:
		return "UINT64"
	case types.Float32:
		return "FLOAT"
	case types.Float64:
		return "DOUBLE"
	default:
		return "BYTE_ARRAY"
	}
}

// LoadTable reads every row and column named in schema from a Parquet file
// at path, following the teacher's own read path in
// pkg/compute/executor_scan.go: a local file reader feeds a
// parquet-go/reader.ParquetColumnReader, and each column is pulled whole
// with ReadColumnByIndex.
func LoadTable(path string, schema *Schema, alloc table.Allocator) (*table.Table, error) {
	pqFile, err := pqLocal.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer pqFile.Close()

	pr, err := pqReader.NewParquetColumnReader(pqFile, 1)
	if err != nil {
		return nil, fmt.Errorf("ingest: open column reader for %s: %w", path, err)
	}
	defer pr.ReadStop()

	rowCount := int(pr.GetNumRows())
	cols := make([]*table.Column, len(schema.Columns))
	for i, spec := range schema.Columns {
		values, _, _, err := pr.ReadColumnByIndex(int64(i), int64(rowCount))
		if err != nil {
			return nil, fmt.Errorf("ingest: read column %s: %w", spec.Name, err)
		}
		col := table.NewColumn(spec.Typ, rowCount, alloc)
		if err := decodeColumn(col, values); err != nil {
			return nil, fmt.Errorf("ingest: decode column %s: %w", spec.Name, err)
		}
		cols[i] = col
	}
	return table.New(cols, rowCount), nil
}

func decodeColumn(col *table.Column, values []any) error {
	switch col.Typ {
	case types.Bool:
		dst := table.Slice[int8](col)
		for i, v := range values {
			if b, ok := v.(bool); ok && b {
				dst[i] = 1
			}
		}
	case types.Int8, types.Int16, types.Int32, types.Date32:
		dst := table.Slice[int32](col)
		for i, v := range values {
			dst[i] = int32(toInt64(v))
		}
	case types.Uint8, types.Uint16, types.Uint32:
		dst := table.Slice[uint32](col)
		for i, v := range values {
			dst[i] = uint32(toInt64(v))
		}
	case types.Int64, types.Timestamp64:
		dst := table.Slice[int64](col)
		for i, v := range values {
			dst[i] = toInt64(v)
		}
	case types.Uint64:
		dst := table.Slice[uint64](col)
		for i, v := range values {
			dst[i] = uint64(toInt64(v))
		}
	case types.Float32:
		dst := table.Slice[float32](col)
		for i, v := range values {
			if f, ok := v.(float32); ok {
				dst[i] = f
			}
		}
	case types.Float64:
		dst := table.Slice[float64](col)
		for i, v := range values {
			if f, ok := v.(float64); ok {
				dst[i] = f
			}
		}
	default:
		return table.ErrUnsupportedType
	}
	return nil
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int32:
		return int64(x)
	case int64:
		return x
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	default:
		return 0
	}
}

// SaveTable writes t out to path using schema, following parquet-go's
// JSON-schema writer path — chosen over the struct-tag writer because
// ingest's schema is only known at runtime, one column at a time, never
// as a compiled Go struct.
func SaveTable(path string, schema *Schema, t table.View) error {
	fw, err := pqLocal.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("ingest: create %s: %w", path, err)
	}
	defer fw.Close()

	js, err := schema.jsonSchema()
	if err != nil {
		return fmt.Errorf("ingest: build schema: %w", err)
	}
	pw, err := pqWriter.NewJSONWriter(js, fw, 1)
	if err != nil {
		return fmt.Errorf("ingest: open writer for %s: %w", path, err)
	}

	rows := t.NumRows()
	for row := 0; row < rows; row++ {
		rec := make(map[string]any, len(schema.Columns))
		for i, spec := range schema.Columns {
			rec[spec.Name] = encodeCell(t.Column(i), row)
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("ingest: encode row %d: %w", row, err)
		}
		if err := pw.Write(string(b)); err != nil {
			return fmt.Errorf("ingest: write row %d: %w", row, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("ingest: finalize %s: %w", path, err)
	}
	return nil
}

func encodeCell(c *table.Column, row int) any {
	switch c.Typ {
	case types.Bool:
		return table.Slice[int8](c)[row] != 0
	case types.Int8, types.Int16, types.Int32, types.Date32:
		return table.Slice[int32](c)[row]
	case types.Uint8, types.Uint16, types.Uint32:
		return table.Slice[uint32](c)[row]
	case types.Int64, types.Timestamp64:
		return table.Slice[int64](c)[row]
	case types.Uint64:
		return table.Slice[uint64](c)[row]
	case types.Float32:
		return table.Slice[float32](c)[row]
	case types.Float64:
		return table.Slice[float64](c)[row]
	default:
		return nil
	}
}
