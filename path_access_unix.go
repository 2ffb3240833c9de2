//go:build unix

package clibind

import "golang.org/x/sys/unix"

func pathReadable(p string) bool {
	return unix.Access(p, unix.R_OK) == nil
}

func pathWritable(p string) bool {
	return unix.Access(p, unix.W_OK) == nil
}

func pathExecutable(p string) bool {
	return unix.Access(p, unix.X_OK) == nil
}
