//go:build !windows

package mysqlcl

// c_ulong_t is the C unsigned long: 8 bytes on LP64 platforms.
type c_ulong_t = uint64
