//go:build !unix

package clibind

// No access(2) analog worth the trouble elsewhere; the checks pass and the
// eventual open reports the real error.

func pathReadable(string) bool { return true }

func pathWritable(string) bool { return true }

func pathExecutable(string) bool { return true }
