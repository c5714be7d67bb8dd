package entity

// RawTable is a delimited table as read from its source: a header row and
// string cells, before any type coercion.
type RawTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the first header matching one of the
// given names, or -1.
func (t *RawTable) ColumnIndex(names ...string) int {
	for _, name := range names {
		for i, h := range t.Header {
			if h == name {
				return i
			}
		}
	}
	return -1
}
