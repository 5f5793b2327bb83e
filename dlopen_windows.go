//go:build windows

package mysqlcl

import (
	"os"

	"golang.org/x/sys/windows"
)

// loadLibrary loads the client DLL. MYSQLCL_LIBRARY overrides the candidate
// search with an explicit path.
func loadLibrary() (uintptr, error) {
	if path := os.Getenv("MYSQLCL_LIBRARY"); path != "" {
		handle, err := windows.LoadLibrary(path)
		return uintptr(handle), err
	}
	var firstErr error
	for _, name := range []string{"libmysql.dll", "libmariadb.dll"} {
		handle, err := windows.LoadLibrary(name)
		if err == nil {
			return uintptr(handle), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, firstErr
}
