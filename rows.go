package mysqlcl

import "unsafe"

// Result owns a native streamed-result handle. Rows are pulled from the
// server one at a time as fetched; the sequence is forward-only and cannot
// be restarted. The field count is cached at creation and fixed.
//
// The nil Result is the "no result" state: Valid reports false and every
// fetch returns the zero Row.
type Result struct {
	res       uintptr
	numFields int
	gen       uint64 // bumped on every fetch and on Close; stale Rows fail fast
	names     []string
}

// Valid reports whether the result owns a native handle.
func (r *Result) Valid() bool {
	return r != nil && r.res != 0
}

// NumFields returns the column count fixed at creation.
func (r *Result) NumFields() int {
	if r == nil {
		return 0
	}
	return r.numFields
}

// Fields returns the declared column names, in column order. Cached after
// the first call.
func (r *Result) Fields() []string {
	if !r.Valid() {
		return nil
	}
	if r.names == nil {
		fields := c_mysql_fetch_fields(r.res)
		if fields == 0 {
			return nil
		}
		names := make([]string, r.numFields)
		size := unsafe.Sizeof(c_mysql_field_t{})
		for i := range names {
			f := (*c_mysql_field_t)(unsafe.Pointer(fields + uintptr(i)*size))
			names[i] = copyCString(f.Name)
		}
		r.names = names
	}
	return r.names
}

// FetchRow pulls the next row from the stream. The returned Row is a
// borrowed view over the buffer this fetch produced: the next fetch, or
// closing the Result, invalidates it. An exhausted Result returns the zero
// Row on this and every later call.
func (r *Result) FetchRow() Row {
	if !r.Valid() {
		return Row{}
	}
	r.gen++
	row := c_mysql_fetch_row(r.res)
	if row == 0 {
		return Row{}
	}
	return Row{
		res:     r,
		gen:     r.gen,
		row:     row,
		lengths: c_mysql_fetch_lengths(r.res),
		n:       r.numFields,
	}
}

// Next is an alias for FetchRow.
func (r *Result) Next() Row {
	return r.FetchRow()
}

// FetchArray fetches one row and pairs each column's declared name with its
// value. Returns nil when the stream is exhausted. Column order is not
// preserved by the map; use Fields with FetchRow when order matters.
func (r *Result) FetchArray() map[string][]byte {
	row := r.FetchRow()
	if !row.Valid() {
		return nil
	}
	names := r.Fields()
	out := make(map[string][]byte, len(names))
	for i, name := range names {
		out[name] = row.Bytes(i)
	}
	return out
}

// NextArray is an alias for FetchArray.
func (r *Result) NextArray() map[string][]byte {
	return r.FetchArray()
}

// Close releases the native result handle and invalidates any outstanding
// Row. Idempotent. Closing an undrained streaming result reads and discards
// the remaining rows inside the client library.
func (r *Result) Close() error {
	if r == nil || r.res == 0 {
		return nil
	}
	r.gen++
	c_mysql_free_result(r.res)
	r.res = 0
	return nil
}

// Row is a non-owning view over the pointer and length arrays produced by
// the most recent fetch on its Result. It has no independent lifetime: the
// next fetch, or closing the Result, invalidates it, after which every
// accessor returns its zero value instead of reading stale native memory.
// The zero Row signals end-of-result.
type Row struct {
	res     *Result
	gen     uint64
	row     uintptr // char**
	lengths uintptr // unsigned long*
	n       int
}

// Valid reports whether the view still refers to its Result's most recent
// fetch.
func (r Row) Valid() bool {
	return r.row != 0 && r.res != nil && r.res.res != 0 && r.gen == r.res.gen
}

// Len returns the field count, or 0 for an invalid Row.
func (r Row) Len() int {
	if !r.Valid() {
		return 0
	}
	return r.n
}

// IsNull reports whether field i is SQL NULL.
func (r Row) IsNull(i int) bool {
	if !r.Valid() || i < 0 || i >= r.n {
		return false
	}
	return r.cell(i) == 0
}

// Bytes copies field i out of the native row buffer using its exact length;
// values are binary-safe, not assumed null-terminated. Returns nil for SQL
// NULL, an out-of-range index, or an invalidated Row.
func (r Row) Bytes(i int) []byte {
	if !r.Valid() || i < 0 || i >= r.n {
		return nil
	}
	cell := r.cell(i)
	if cell == 0 {
		return nil
	}
	length := *(*c_ulong_t)(unsafe.Pointer(r.lengths + uintptr(i)*unsafe.Sizeof(c_ulong_t(0))))
	if length == 0 {
		return []byte{}
	}
	out := make([]byte, length)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(cell)), length))
	return out
}

// String returns field i as a string; empty for SQL NULL or an invalidated
// Row.
func (r Row) String(i int) string {
	return string(r.Bytes(i))
}

func (r Row) cell(i int) uintptr {
	return *(*uintptr)(unsafe.Pointer(r.row + uintptr(i)*unsafe.Sizeof(uintptr(0))))
}
