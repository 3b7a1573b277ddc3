//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

import "io"

func isTerminal(io.Writer) bool { return false }
