//go:build !unix

package cmd

import "io"

type resizer interface {
	Resize(cols, rows uint16) error
}

func watchResize(io.Writer, resizer) func() {
	return func() {}
}
