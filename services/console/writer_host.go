//go:build !rp2040 && !rp2350

package console

import (
	"io"
	"os"
)

func defaultWriter() io.Writer { return os.Stdout }
