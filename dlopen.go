//go:build !windows

package mysqlcl

import (
	"os"
	"runtime"

	"github.com/ebitengine/purego"
)

// libraryCandidates lists sonames to try, most specific first. Both the
// Oracle and the MariaDB client libraries export the C API this package
// registers against.
func libraryCandidates() []string {
	if runtime.GOOS == "darwin" {
		return []string{
			"libmysqlclient.24.dylib",
			"libmysqlclient.21.dylib",
			"libmysqlclient.dylib",
			"libmariadb.3.dylib",
			"libmariadb.dylib",
		}
	}
	return []string{
		"libmysqlclient.so.24",
		"libmysqlclient.so.21",
		"libmysqlclient.so",
		"libmariadb.so.3",
		"libmariadb.so",
	}
}

// loadLibrary dlopens the client library. MYSQLCL_LIBRARY overrides the
// candidate search with an explicit path.
func loadLibrary() (uintptr, error) {
	if path := os.Getenv("MYSQLCL_LIBRARY"); path != "" {
		return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	}
	var firstErr error
	for _, name := range libraryCandidates() {
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return handle, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, firstErr
}
