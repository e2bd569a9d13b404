package content

import "fmt"

// GenerationError is a failed text-generation request. It is never
// retried at this layer.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
