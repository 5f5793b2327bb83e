// Package mysqlcl is a thin lifecycle wrapper over the native MySQL client
// library (libmysqlclient or libmariadb), loaded at runtime through purego.
// It manages the ownership and teardown of the session handle, prepared
// statements and streamed result sets, and provides Escape for building
// SQL literal text. The wire protocol, authentication and query execution
// stay inside the client library.
//
// The model is one Conn per logical session: Query switches the session to
// streaming retrieval, so the returned Result must be drained or closed
// before the next statement, and concurrent goroutines should each use
// their own Conn. There is no pooling, no transaction helper and no retry
// layer here.
//
// No client library is embedded. The shared library is dlopen'd from the
// system on first use; MYSQLCL_LIBRARY overrides the search with an
// explicit path.
package mysqlcl
