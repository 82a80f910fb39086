// Package rootfile stores ntuple tables as ROOT TTrees.
//
// Each table becomes one tree named after the table. Scalar fields are
// plain branches and sequence fields are variable-length arrays sized by
// their count branch, e.g. rhit_x[recoil_hits_count].
package rootfile

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/trkntuple"
)

type Writer struct {
	Path  string
	Title string
}

func NewWriter(path string) *Writer {
	return &Writer{Path: path, Title: "tracker ntuple"}
}

func (w *Writer) WriteTable(t *trkntuple.Table) (err error) {
	f, err := groot.Create(w.Path)
	if err != nil {
		return fmt.Errorf("could not create ROOT file %q: %w", w.Path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close ROOT file %q: %w", w.Path, cerr)
		}
	}()

	var row trkntuple.Row
	tw, err := rtree.NewWriter(f, t.Name, rtree.WriteVarsFromStruct(&row), rtree.WithTitle(w.Title))
	if err != nil {
		return fmt.Errorf("could not create tree %q: %w", t.Name, err)
	}

	rows := t.Rows()
	for i := range rows {
		row = rows[i]
		if _, err := tw.Write(); err != nil {
			tw.Close()
			return fmt.Errorf("could not write entry %d of tree %q: %w", i, t.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("could not close tree %q: %w", t.Name, err)
	}
	return nil
}

// ReadTable loads the tree name of the ROOT file at path.
func ReadTable(path, name string) (*trkntuple.Table, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ROOT file %q: %w", path, err)
	}
	defer f.Close()

	obj, err := f.Get(name)
	if err != nil {
		return nil, fmt.Errorf("could not find tree %q in %q: %w", name, path, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("object %q in %q is a %T, not a tree", name, path, obj)
	}

	var row trkntuple.Row
	r, err := rtree.NewReader(tree, rtree.ReadVarsFromStruct(&row))
	if err != nil {
		return nil, fmt.Errorf("could not create reader for tree %q: %w", name, err)
	}
	defer r.Close()

	tbl := trkntuple.NewTable(name)
	err = r.Read(func(rtree.RCtx) error {
		*tbl.Row() = row.Clone()
		tbl.Commit()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not read tree %q: %w", name, err)
	}
	return tbl, nil
}
