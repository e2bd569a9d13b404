package progress

import (
	"fmt"

	"github.com/abhisek/mathgen/internal/curriculum"
)

// StorageError reports an unreadable, corrupt or unwritable progress
// record. A corrupt record is never replaced with a fresh one.
type StorageError struct {
	Grade curriculum.GradeLevel
	Op    string // "load" or "save"
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("progress %s for %s: %v", e.Op, e.Grade, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
