package trkntuple

// DefaultTreeName is the name of the output table.
const DefaultTreeName = "tracker_ntuple"

// Table stages committed rows in memory until they are written out. It owns
// a current-row buffer that callers fill and then Commit.
type Table struct {
	Name string

	cur  Row
	rows []Row
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Row returns the current row buffer.
func (t *Table) Row() *Row { return &t.cur }

// Reset clears the current row buffer.
func (t *Table) Reset() { t.cur.Reset() }

// Commit appends a copy of the current row and clears the buffer, so the
// next event never sees this one's fields.
func (t *Table) Commit() {
	t.rows = append(t.rows, t.cur.Clone())
	t.cur.Reset()
}

func (t *Table) Len() int { return len(t.rows) }

// Rows returns the committed rows. The slice must not be modified.
func (t *Table) Rows() []Row { return t.rows }

// Merge appends the committed rows of o after those of t.
func (t *Table) Merge(o *Table) {
	t.rows = append(t.rows, o.rows...)
}

// TableWriter durably stores a complete table.
type TableWriter interface {
	WriteTable(t *Table) error
}

type multiWriter []TableWriter

func (mw multiWriter) WriteTable(t *Table) error {
	for _, w := range mw {
		if err := w.WriteTable(t); err != nil {
			return err
		}
	}
	return nil
}

// MultiWriter writes a table to each writer in turn, stopping at the first
// error.
func MultiWriter(writers ...TableWriter) TableWriter {
	var mw multiWriter
	for _, w := range writers {
		if w != nil {
			mw = append(mw, w)
		}
	}
	return mw
}
