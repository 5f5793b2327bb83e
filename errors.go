package mysqlcl

import (
	"errors"
	"fmt"
)

// define all package level errors here
var (
	ErrConnClosed = errors.New("mysqlcl: connection closed")
	ErrStmtClosed = errors.New("mysqlcl: statement closed")
	ErrInitFailed = errors.New("mysqlcl: unable to allocate session handle")
)

// Error carries the diagnostic the server (or the client library) attached
// to a failed call. Errno is the server error number, e.g. 1045 for access
// denied; SQLState the five-character ANSI state.
type Error struct {
	Errno    uint16
	SQLState string
	Message  string
}

func (e *Error) Error() string {
	if e.SQLState != "" {
		return fmt.Sprintf("mysqlcl: error %d (%s): %s", e.Errno, e.SQLState, e.Message)
	}
	return fmt.Sprintf("mysqlcl: error %d: %s", e.Errno, e.Message)
}

// connError reads the pending diagnostic off a session handle.
func connError(handle uintptr) *Error {
	return &Error{
		Errno:    uint16(c_mysql_errno(handle)),
		SQLState: copyCString(c_mysql_sqlstate(handle)),
		Message:  copyCString(c_mysql_error(handle)),
	}
}

// stmtError reads the pending diagnostic off a statement handle.
func stmtError(stmt uintptr) *Error {
	return &Error{
		Errno:    uint16(c_mysql_stmt_errno(stmt)),
		SQLState: copyCString(c_mysql_stmt_sqlstate(stmt)),
		Message:  copyCString(c_mysql_stmt_error(stmt)),
	}
}
