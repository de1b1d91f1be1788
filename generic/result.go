package generic

import "fmt"

// Expect returns value if err is nil, or panics with the supplied message
// wrapping the error. Use only where a failure is a programming error.
func Expect[T any](value T, err error, msg string) T {
	if err != nil {
		panic(fmt.Errorf("%s: %w", msg, err))
	}
	return value
}

// Unwrap returns value if err is nil, or panics.
func Unwrap[T any](value T, err error) T {
	return Expect(value, err, "tried to Unwrap() an error")
}

// Unwrap_ is like Unwrap, but for return values that are just an error.
func Unwrap_(err error) {
	Expect(Void{}, err, "tried to Unwrap() an error")
}
