package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	if got := Of(nil); got != OK {
		t.Fatalf("Of(nil) = %q, want %q", got, OK)
	}
	if got := Of(Unsupported); got != Unsupported {
		t.Fatalf("Of(Unsupported) = %q", got)
	}
	if got := Of(errors.New("i2c write failed")); got != Error {
		t.Fatalf("Of(plain error) = %q, want %q", got, Error)
	}
}

func TestCodeIsError(t *testing.T) {
	var err error = Timeout
	if err.Error() != "timeout" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
