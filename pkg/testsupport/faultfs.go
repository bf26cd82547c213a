package testsupport

import (
	"errors"
	"os"

	"github.com/goliatone/go-instgen/pkg/emit"
)

// ErrInjected is returned by FaultFS for every injected failure.
var ErrInjected = errors.New("testsupport: injected failure")

// FaultFS wraps the local filesystem. For the Nth file it is asked to stage
// (1-based; zero never fails) it fails creation, the content write, or the
// final replace.
type FaultFS struct {
	FailCreateOn int
	FailWriteOn  int
	FailRenameOn int

	files     int
	abandoned int
}

var _ emit.FileSystem = (*FaultFS)(nil)

func (f *FaultFS) Pending(path string, perm os.FileMode) (emit.PendingFile, error) {
	f.files++
	if f.files == f.FailCreateOn {
		return nil, ErrInjected
	}
	file, err := emit.LocalFS{}.Pending(path, perm)
	if err != nil {
		return nil, err
	}
	return &faultFile{
		PendingFile: file,
		owner:       f,
		failWrite:   f.files == f.FailWriteOn,
		failReplace: f.files == f.FailRenameOn,
	}, nil
}

func (f *FaultFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Abandoned counts staged files that were cleaned up without replacing their
// destination.
func (f *FaultFS) Abandoned() int {
	return f.abandoned
}

type faultFile struct {
	emit.PendingFile
	owner       *FaultFS
	failWrite   bool
	failReplace bool
	committed   bool
	cleaned     bool
}

// Write emits half of p and then fails, leaving a partial temp file behind
// for the emitter to clean up.
func (f *faultFile) Write(p []byte) (int, error) {
	if !f.failWrite {
		return f.PendingFile.Write(p)
	}
	n, _ := f.PendingFile.Write(p[:len(p)/2])
	return n, ErrInjected
}

func (f *faultFile) CloseAtomicallyReplace() error {
	if f.failReplace {
		return ErrInjected
	}
	if err := f.PendingFile.CloseAtomicallyReplace(); err != nil {
		return err
	}
	f.committed = true
	return nil
}

func (f *faultFile) Cleanup() error {
	if !f.committed && !f.cleaned {
		f.cleaned = true
		f.owner.abandoned++
	}
	return f.PendingFile.Cleanup()
}
