package mysqlcl

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// define all necessary constants first

// field type tags from the client library's enum_field_types
type fieldType int32

const (
	MYSQL_TYPE_DECIMAL  fieldType = 0
	MYSQL_TYPE_TINY     fieldType = 1
	MYSQL_TYPE_SHORT    fieldType = 2
	MYSQL_TYPE_LONG     fieldType = 3
	MYSQL_TYPE_FLOAT    fieldType = 4
	MYSQL_TYPE_DOUBLE   fieldType = 5
	MYSQL_TYPE_NULL     fieldType = 6
	MYSQL_TYPE_LONGLONG fieldType = 8
	MYSQL_TYPE_BLOB     fieldType = 252
	MYSQL_TYPE_STRING   fieldType = 254
)

// define all necessary private C structs
// private C structs MUST have fields with low level types (e.g. uintptr, numbers)

// c_mysql_bind_t mirrors MYSQL_BIND from <mysql/mysql.h>. The client reads
// parameter values through this layout during mysql_stmt_execute, so field
// order, widths and padding must match the installed library's ABI exactly.
type c_mysql_bind_t struct {
	Length       uintptr   // unsigned long*
	IsNull       uintptr   // bool*
	Buffer       uintptr   // void*
	Error        uintptr   // bool*
	RowPtr       uintptr   // unsigned char*
	StoreParam   uintptr   // void (*)(NET*, MYSQL_BIND*)
	FetchResult  uintptr   // void (*)(MYSQL_BIND*, MYSQL_FIELD*, unsigned char**)
	SkipResult   uintptr   // void (*)(MYSQL_BIND*, MYSQL_FIELD*, unsigned char**)
	BufferLength c_ulong_t // unsigned long
	Offset       c_ulong_t // unsigned long
	LengthValue  c_ulong_t // unsigned long
	ParamNumber  uint32    // unsigned int
	PackLength   uint32    // unsigned int
	BufferType   int32     // enum enum_field_types
	ErrorValue   uint8     // bool
	IsUnsigned   uint8     // bool
	LongDataUsed uint8     // bool
	IsNullValue  uint8     // bool
	Extension    uintptr   // void*
}

// c_mysql_field_t mirrors MYSQL_FIELD; only Name is read here, the rest of
// the struct exists so pointer arithmetic over the field array stays valid.
type c_mysql_field_t struct {
	Name           uintptr   // char*
	OrgName        uintptr   // char*
	Table          uintptr   // char*
	OrgTable       uintptr   // char*
	Db             uintptr   // char*
	Catalog        uintptr   // char*
	Def            uintptr   // char*
	Length         c_ulong_t // unsigned long
	MaxLength      c_ulong_t // unsigned long
	NameLength     uint32    // unsigned int
	OrgNameLength  uint32    // unsigned int
	TableLength    uint32    // unsigned int
	OrgTableLength uint32    // unsigned int
	DbLength       uint32    // unsigned int
	CatalogLength  uint32    // unsigned int
	DefLength      uint32    // unsigned int
	Flags          uint32    // unsigned int
	Decimals       uint32    // unsigned int
	Charsetnr      uint32    // unsigned int
	Type           int32     // enum enum_field_types
	Extension      uintptr   // void*
}

// then, define C extern methods
// handles stay uintptr throughout - the session, statement and result
// objects are opaque to this package and only their lifetime is managed
var (
	c_mysql_init func(
		handle uintptr, // MYSQL* | NULL
	) uintptr // MYSQL*

	c_mysql_real_connect func(
		handle uintptr, // MYSQL*
		host uintptr, // const char* | NULL
		user uintptr, // const char* | NULL
		passwd uintptr, // const char* | NULL
		db uintptr, // const char* | NULL
		port uint32, // unsigned int
		unixSocket uintptr, // const char* | NULL
		clientFlag c_ulong_t, // unsigned long
	) uintptr // MYSQL* | NULL

	c_mysql_close func(
		handle uintptr, // MYSQL*
	)

	c_mysql_ping func(
		handle uintptr, // MYSQL*
	) int32

	c_mysql_error func(
		handle uintptr, // MYSQL*
	) uintptr // const char*

	c_mysql_errno func(
		handle uintptr, // MYSQL*
	) uint32

	c_mysql_sqlstate func(
		handle uintptr, // MYSQL*
	) uintptr // const char*

	c_mysql_real_query func(
		handle uintptr, // MYSQL*
		stmtStr uintptr, // const char*
		length c_ulong_t, // unsigned long
	) int32

	c_mysql_use_result func(
		handle uintptr, // MYSQL*
	) uintptr // MYSQL_RES* | NULL

	c_mysql_insert_id func(
		handle uintptr, // MYSQL*
	) uint64

	c_mysql_affected_rows func(
		handle uintptr, // MYSQL*
	) uint64

	c_mysql_more_results func(
		handle uintptr, // MYSQL*
	) uint8 // bool

	c_mysql_next_result func(
		handle uintptr, // MYSQL*
	) int32

	c_mysql_get_client_info func() uintptr // const char*

	c_mysql_free_result func(
		result uintptr, // MYSQL_RES*
	)

	c_mysql_num_fields func(
		result uintptr, // MYSQL_RES*
	) uint32

	c_mysql_fetch_row func(
		result uintptr, // MYSQL_RES*
	) uintptr // MYSQL_ROW (char**) | NULL

	c_mysql_fetch_lengths func(
		result uintptr, // MYSQL_RES*
	) uintptr // unsigned long*

	c_mysql_fetch_fields func(
		result uintptr, // MYSQL_RES*
	) uintptr // MYSQL_FIELD*

	c_mysql_stmt_init func(
		handle uintptr, // MYSQL*
	) uintptr // MYSQL_STMT* | NULL

	c_mysql_stmt_prepare func(
		stmt uintptr, // MYSQL_STMT*
		stmtStr uintptr, // const char*
		length c_ulong_t, // unsigned long
	) int32

	c_mysql_stmt_param_count func(
		stmt uintptr, // MYSQL_STMT*
	) c_ulong_t // unsigned long

	c_mysql_stmt_bind_param func(
		stmt uintptr, // MYSQL_STMT*
		binds uintptr, // MYSQL_BIND*
	) uint8 // bool, nonzero on failure

	c_mysql_stmt_execute func(
		stmt uintptr, // MYSQL_STMT*
	) int32

	c_mysql_stmt_close func(
		stmt uintptr, // MYSQL_STMT*
	) uint8 // bool, nonzero on failure

	c_mysql_stmt_error func(
		stmt uintptr, // MYSQL_STMT*
	) uintptr // const char*

	c_mysql_stmt_errno func(
		stmt uintptr, // MYSQL_STMT*
	) uint32

	c_mysql_stmt_sqlstate func(
		stmt uintptr, // MYSQL_STMT*
	) uintptr // const char*

	c_mysql_stmt_affected_rows func(
		stmt uintptr, // MYSQL_STMT*
	) uint64

	c_mysql_stmt_insert_id func(
		stmt uintptr, // MYSQL_STMT*
	) uint64
)

// implement a function to register extern methods from loaded lib
// DO NOT load lib - as it will be done externally
func register_mysql_client(handle uintptr) error {
	purego.RegisterLibFunc(&c_mysql_init, handle, "mysql_init")
	purego.RegisterLibFunc(&c_mysql_real_connect, handle, "mysql_real_connect")
	purego.RegisterLibFunc(&c_mysql_close, handle, "mysql_close")
	purego.RegisterLibFunc(&c_mysql_ping, handle, "mysql_ping")
	purego.RegisterLibFunc(&c_mysql_error, handle, "mysql_error")
	purego.RegisterLibFunc(&c_mysql_errno, handle, "mysql_errno")
	purego.RegisterLibFunc(&c_mysql_sqlstate, handle, "mysql_sqlstate")
	purego.RegisterLibFunc(&c_mysql_real_query, handle, "mysql_real_query")
	purego.RegisterLibFunc(&c_mysql_use_result, handle, "mysql_use_result")
	purego.RegisterLibFunc(&c_mysql_insert_id, handle, "mysql_insert_id")
	purego.RegisterLibFunc(&c_mysql_affected_rows, handle, "mysql_affected_rows")
	purego.RegisterLibFunc(&c_mysql_more_results, handle, "mysql_more_results")
	purego.RegisterLibFunc(&c_mysql_next_result, handle, "mysql_next_result")
	purego.RegisterLibFunc(&c_mysql_get_client_info, handle, "mysql_get_client_info")
	purego.RegisterLibFunc(&c_mysql_free_result, handle, "mysql_free_result")
	purego.RegisterLibFunc(&c_mysql_num_fields, handle, "mysql_num_fields")
	purego.RegisterLibFunc(&c_mysql_fetch_row, handle, "mysql_fetch_row")
	purego.RegisterLibFunc(&c_mysql_fetch_lengths, handle, "mysql_fetch_lengths")
	purego.RegisterLibFunc(&c_mysql_fetch_fields, handle, "mysql_fetch_fields")
	purego.RegisterLibFunc(&c_mysql_stmt_init, handle, "mysql_stmt_init")
	purego.RegisterLibFunc(&c_mysql_stmt_prepare, handle, "mysql_stmt_prepare")
	purego.RegisterLibFunc(&c_mysql_stmt_param_count, handle, "mysql_stmt_param_count")
	purego.RegisterLibFunc(&c_mysql_stmt_bind_param, handle, "mysql_stmt_bind_param")
	purego.RegisterLibFunc(&c_mysql_stmt_execute, handle, "mysql_stmt_execute")
	purego.RegisterLibFunc(&c_mysql_stmt_close, handle, "mysql_stmt_close")
	purego.RegisterLibFunc(&c_mysql_stmt_error, handle, "mysql_stmt_error")
	purego.RegisterLibFunc(&c_mysql_stmt_errno, handle, "mysql_stmt_errno")
	purego.RegisterLibFunc(&c_mysql_stmt_sqlstate, handle, "mysql_stmt_sqlstate")
	purego.RegisterLibFunc(&c_mysql_stmt_affected_rows, handle, "mysql_stmt_affected_rows")
	purego.RegisterLibFunc(&c_mysql_stmt_insert_id, handle, "mysql_stmt_insert_id")
	return nil
}

// Helpers

func copyCString(p uintptr) string {
	if p == 0 {
		return ""
	}
	n := 0
	for {
		b := *(*byte)(unsafe.Pointer(p + uintptr(n)))
		if b == 0 {
			break
		}
		n++
	}
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = *(*byte)(unsafe.Pointer(p + uintptr(i)))
	}
	return string(buf)
}

// cStringPtr returns a null-terminated copy of s valid until keepAlive runs.
// The empty string maps to NULL, which the connect call treats as "absent".
func cStringPtr(s string) (ptr uintptr, keepAlive func()) {
	if len(s) == 0 {
		return 0, func() {}
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return uintptr(unsafe.Pointer(&b[0])), func() { runtime.KeepAlive(b) }
}

// cTextPtr is like cStringPtr but never returns NULL: query and prepare
// take a length-delimited buffer and must be able to send the empty string.
func cTextPtr(s string) (ptr uintptr, keepAlive func()) {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return uintptr(unsafe.Pointer(&b[0])), func() { runtime.KeepAlive(b) }
}
