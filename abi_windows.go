//go:build windows

package mysqlcl

// c_ulong_t is the C unsigned long: 4 bytes under the LLP64 model.
type c_ulong_t = uint32
