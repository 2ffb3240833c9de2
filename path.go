package clibind

import (
	"os"
	"path/filepath"
)

// Path is a filesystem path produced by path validators.
type Path string

func (me Path) String() string {
	return string(me)
}

// PathKind constrains what a validated path must point at.
type PathKind int

const (
	KindAny PathKind = iota
	KindDir
	KindFile
)

// PathValidator converts to Path. The zero value performs only the
// conversion. Exists requires the path to exist; Kind additionally requires
// a directory or regular file; the access fields require the corresponding
// permission. Checks race with the filesystem: a result may be stale
// immediately after validation, which callers opening the path must
// tolerate anyway.
//
// Kind and access checks apply whenever the path exists, even without
// Exists set; a missing path only fails when Exists is set.
type PathValidator struct {
	Resolve    bool // make the path absolute before checking
	Exists     bool
	Kind       PathKind
	Readable   bool
	Writable   bool
	Executable bool
}

// DirPathValidator requires an existing directory.
func DirPathValidator() *PathValidator {
	return &PathValidator{Exists: true, Kind: KindDir}
}

// FilePathValidator requires an existing regular file.
func FilePathValidator() *PathValidator {
	return &PathValidator{Exists: true, Kind: KindFile}
}

func (me *PathValidator) Validate(raw string) (interface{}, error) {
	p := raw
	if me.Resolve {
		abs, err := filepath.Abs(p)
		if err == nil {
			p = abs
		}
	}
	fi, err := os.Stat(p)
	if err != nil {
		if me.Exists {
			return nil, validationErrorf(PathNotFound, raw, "%q does not exist", p)
		}
		return Path(p), nil
	}
	switch me.Kind {
	case KindDir:
		if !fi.IsDir() {
			return nil, validationErrorf(WrongPathKind, raw, "%q is not a directory", p)
		}
	case KindFile:
		if !fi.Mode().IsRegular() {
			return nil, validationErrorf(WrongPathKind, raw, "%q is not a file", p)
		}
	}
	if me.Readable && !pathReadable(p) {
		return nil, validationErrorf(PathNotAccessible, raw, "%q is not readable", p)
	}
	if me.Writable && !pathWritable(p) {
		return nil, validationErrorf(PathNotAccessible, raw, "%q is not writable", p)
	}
	if me.Executable && !pathExecutable(p) {
		return nil, validationErrorf(PathNotAccessible, raw, "%q is not executable", p)
	}
	return Path(p), nil
}
