package sqlseed

// Field is one (column, value) pair of a Row.
type Field struct {
	Column string
	Value  Value
}

// Row is an ordered collection of column-value pairs describing either data
// to write or equality conditions to match. Column names are unique within
// a Row; insertion order is preserved and fixes the positional
// parameter-binding order of every statement built from it.
//
// A nil *Row behaves as an empty mapping.
type Row struct {
	fields []Field
}

// NewRow returns an empty Row.
func NewRow() *Row { return &Row{} }

// Set adds a column-value pair, replacing the value in place when the
// column is already present. Returns the Row for chaining.
func (r *Row) Set(column string, v Value) *Row {
	for i := range r.fields {
		if r.fields[i].Column == column {
			r.fields[i].Value = v
			return r
		}
	}
	r.fields = append(r.fields, Field{Column: column, Value: v})
	return r
}

// Get returns the value for column and whether it is present.
func (r *Row) Get(column string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	for _, f := range r.fields {
		if f.Column == column {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of columns.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Columns returns the column names in insertion order.
func (r *Row) Columns() []string {
	if r == nil {
		return nil
	}
	cols := make([]string, len(r.fields))
	for i, f := range r.fields {
		cols[i] = f.Column
	}
	return cols
}

// Fields returns a copy of the pairs in insertion order.
func (r *Row) Fields() []Field {
	if r == nil {
		return nil
	}
	return append([]Field(nil), r.fields...)
}

// list is the nil-safe internal view used by the clause builder.
func (r *Row) list() []Field {
	if r == nil {
		return nil
	}
	return r.fields
}
