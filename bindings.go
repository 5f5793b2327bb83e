package mysqlcl

import (
	"fmt"
	"sync"
)

var (
	loadOnce sync.Once
	loadErr  error
)

// loadClientLibrary locates the native client library, loads it once for the
// lifetime of the process and registers its symbols. The library is not
// shipped with this package; loading is deferred to first use so that code
// paths that never touch the native layer (Escape, DSN parsing) work on
// machines without a client library installed.
func loadClientLibrary() error {
	loadOnce.Do(func() {
		handle, err := loadLibrary()
		if err != nil {
			loadErr = fmt.Errorf("mysqlcl: unable to load MySQL client library: %w", err)
			return
		}
		loadErr = register_mysql_client(handle)
	})
	return loadErr
}

// ClientInfo returns the client library version string, loading the library
// if needed.
func ClientInfo() (string, error) {
	if err := loadClientLibrary(); err != nil {
		return "", err
	}
	return copyCString(c_mysql_get_client_info()), nil
}
