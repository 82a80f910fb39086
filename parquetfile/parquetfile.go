// Package parquetfile stores ntuple tables as Parquet files with one row
// per event. Sequence fields become list columns.
package parquetfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/compress"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"github.com/decibelcooper/trkntuple"
)

var (
	int32List   = arrow.ListOf(arrow.PrimitiveTypes.Int32)
	float64List = arrow.ListOf(arrow.PrimitiveTypes.Float64)
)

// Schema returns the Arrow schema of a table, in trkntuple.FieldNames order.
func Schema() *arrow.Schema {
	types := map[string]arrow.DataType{
		"primary_pdg_id":           arrow.PrimitiveTypes.Int32,
		"primary_p":                arrow.PrimitiveTypes.Float64,
		"primary_theta":            arrow.PrimitiveTypes.Float64,
		"primary_phi":              arrow.PrimitiveTypes.Float64,
		"primary_findable":         arrow.PrimitiveTypes.Int32,
		"recoil_hits_count":        arrow.PrimitiveTypes.Int32,
		"rhit_x":                   float64List,
		"rhit_y":                   float64List,
		"rhit_z":                   float64List,
		"recoil_track_count":       arrow.PrimitiveTypes.Int32,
		"recoil_loose_track_count": arrow.PrimitiveTypes.Int32,
		"recoil_axial_track_count": arrow.PrimitiveTypes.Int32,
		"rfindable_trk_pdg_id":     int32List,
		"rfindable_trk_p":          float64List,
		"rfindable_trk_theta":      float64List,
		"rfindable_trk_phi":        float64List,
	}

	names := trkntuple.FieldNames()
	fields := make([]arrow.Field, len(names))
	for i, name := range names {
		fields[i] = arrow.Field{Name: name, Type: types[name]}
	}
	return arrow.NewSchema(fields, nil)
}

func codec(name string) (compress.Compression, error) {
	switch name {
	case "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "lz4":
		return compress.Codecs.Lz4, nil
	case "", "none":
		return compress.Codecs.Uncompressed, nil
	}
	return compress.Codecs.Uncompressed, fmt.Errorf("unknown parquet compression %q", name)
}

type Writer struct {
	Path        string
	Compression string
}

func NewWriter(path, compression string) *Writer {
	return &Writer{Path: path, Compression: compression}
}

func (w *Writer) WriteTable(t *trkntuple.Table) error {
	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("could not create parquet file %q: %w", w.Path, err)
	}
	defer f.Close()

	if err := Encode(f, t, w.Compression); err != nil {
		return fmt.Errorf("could not write parquet file %q: %w", w.Path, err)
	}
	return nil
}

// Encode writes the rows of t to out as a single-row-group Parquet file.
func Encode(out io.Writer, t *trkntuple.Table, compression string) error {
	c, err := codec(compression)
	if err != nil {
		return err
	}

	mem := memory.NewGoAllocator()
	schema := Schema()

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	rows := t.Rows()
	for i := range rows {
		appendRow(b, &rows[i])
	}
	rec := b.NewRecord()
	defer rec.Release()

	writerProps := parquet.NewWriterProperties(
		parquet.WithCompression(c),
		parquet.WithDictionaryDefault(false),
	)
	fw, err := pqarrow.NewFileWriter(schema, out, writerProps, pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema()))
	if err != nil {
		return fmt.Errorf("could not create parquet writer: %w", err)
	}
	if rec.NumRows() > 0 {
		if err := fw.Write(rec); err != nil {
			fw.Close()
			return fmt.Errorf("could not write record: %w", err)
		}
	}
	return fw.Close()
}

func appendRow(b *array.RecordBuilder, row *trkntuple.Row) {
	i := 0
	next := func() array.Builder {
		fb := b.Field(i)
		i++
		return fb
	}
	appendInt32 := func(v int32) { next().(*array.Int32Builder).Append(v) }
	appendFloat64 := func(v float64) { next().(*array.Float64Builder).Append(v) }
	appendInt32s := func(vs []int32) {
		lb := next().(*array.ListBuilder)
		lb.Append(true)
		lb.ValueBuilder().(*array.Int32Builder).AppendValues(vs, nil)
	}
	appendFloat64s := func(vs []float64) {
		lb := next().(*array.ListBuilder)
		lb.Append(true)
		lb.ValueBuilder().(*array.Float64Builder).AppendValues(vs, nil)
	}

	appendInt32(row.PrimaryPDGID)
	appendFloat64(row.PrimaryP)
	appendFloat64(row.PrimaryTheta)
	appendFloat64(row.PrimaryPhi)
	appendInt32(row.PrimaryFindable)
	appendInt32(row.RecoilHitsCount)
	appendFloat64s(row.RHitX)
	appendFloat64s(row.RHitY)
	appendFloat64s(row.RHitZ)
	appendInt32(row.RecoilTrackCount)
	appendInt32(row.RecoilLooseTrackCount)
	appendInt32(row.RecoilAxialTrackCount)
	appendInt32s(row.RFindableTrkPDGID)
	appendFloat64s(row.RFindableTrkP)
	appendFloat64s(row.RFindableTrkTheta)
	appendFloat64s(row.RFindableTrkPhi)
}

// ReadTable loads the Parquet file at path into a table called name.
func ReadTable(path, name string) (*trkntuple.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open parquet file %q: %w", path, err)
	}
	defer f.Close()

	tbl, err := Decode(f, name)
	if err != nil {
		return nil, fmt.Errorf("could not read parquet file %q: %w", path, err)
	}
	return tbl, nil
}

// Decode reads a Parquet file produced by Encode.
func Decode(r parquet.ReaderAtSeeker, name string) (*trkntuple.Table, error) {
	mem := memory.NewGoAllocator()
	at, err := pqarrow.ReadTable(context.Background(), r, parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, err
	}
	defer at.Release()

	if err := checkSchema(at.Schema()); err != nil {
		return nil, err
	}

	tbl := trkntuple.NewTable(name)
	tr := array.NewTableReader(at, 1024)
	defer tr.Release()
	for tr.Next() {
		rec := tr.Record()
		for i := 0; i < int(rec.NumRows()); i++ {
			readRow(rec, i, tbl.Row())
			tbl.Commit()
		}
	}
	return tbl, nil
}

// checkSchema compares column names and type kinds only; readers attach
// their own field metadata.
func checkSchema(got *arrow.Schema) error {
	want := Schema()
	if got.NumFields() != want.NumFields() {
		return fmt.Errorf("got %d columns, want %d", got.NumFields(), want.NumFields())
	}
	for i, wf := range want.Fields() {
		gf := got.Field(i)
		if gf.Name != wf.Name || gf.Type.ID() != wf.Type.ID() {
			return fmt.Errorf("column %d is %s %s, want %s %s", i, gf.Name, gf.Type, wf.Name, wf.Type)
		}
	}
	return nil
}

func readRow(rec arrow.Record, i int, row *trkntuple.Row) {
	col := 0
	next := func() arrow.Array {
		c := rec.Column(col)
		col++
		return c
	}
	int32At := func() int32 { return next().(*array.Int32).Value(i) }
	float64At := func() float64 { return next().(*array.Float64).Value(i) }
	int32sAt := func(dst []int32) []int32 {
		lst := next().(*array.List)
		start, end := lst.ValueOffsets(i)
		return append(dst, lst.ListValues().(*array.Int32).Int32Values()[start:end]...)
	}
	float64sAt := func(dst []float64) []float64 {
		lst := next().(*array.List)
		start, end := lst.ValueOffsets(i)
		return append(dst, lst.ListValues().(*array.Float64).Float64Values()[start:end]...)
	}

	row.PrimaryPDGID = int32At()
	row.PrimaryP = float64At()
	row.PrimaryTheta = float64At()
	row.PrimaryPhi = float64At()
	row.PrimaryFindable = int32At()
	row.RecoilHitsCount = int32At()
	row.RHitX = float64sAt(row.RHitX)
	row.RHitY = float64sAt(row.RHitY)
	row.RHitZ = float64sAt(row.RHitZ)
	row.RecoilTrackCount = int32At()
	row.RecoilLooseTrackCount = int32At()
	row.RecoilAxialTrackCount = int32At()
	row.RFindableTrkPDGID = int32sAt(row.RFindableTrkPDGID)
	row.RFindableTrkP = float64sAt(row.RFindableTrkP)
	row.RFindableTrkTheta = float64sAt(row.RFindableTrkTheta)
	row.RFindableTrkPhi = float64sAt(row.RFindableTrkPhi)
}
