// Package options implements a small generic functional-options helper used
// to configure file.Writer and file.Reader without an exported mutable
// config struct.
package options

// Option configures a target of type T. Both file.WriterOption and
// file.ReaderOption are instantiations of this generic interface.
type Option[T any] interface {
	apply(T) error
}

// Func is a generic functional option that wraps a plain function.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that can fail, such as one
// validating a buffer-size override against a minimum.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail, such as one
// attaching a metadata string.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
