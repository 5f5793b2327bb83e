package mysqlcl

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := &Error{Errno: 1045, SQLState: "28000", Message: "Access denied for user 'app'"}
	want := "mysqlcl: error 1045 (28000): Access denied for user 'app'"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	noState := &Error{Errno: 2002, Message: "Can't connect to server"}
	if got := noState.Error(); got != "mysqlcl: error 2002: Can't connect to server" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestErrorUnwrapsThroughWrap(t *testing.T) {
	inner := &Error{Errno: 1064, SQLState: "42000", Message: "syntax error"}
	wrapped := fmt.Errorf("running migration: %w", inner)
	var myErr *Error
	if !errors.As(wrapped, &myErr) {
		t.Fatal("errors.As failed to find *Error")
	}
	if myErr.Errno != 1064 {
		t.Fatalf("Errno = %d, want 1064", myErr.Errno)
	}
}
