package util

// Recover recovers from a panic and stores it in err if it is an error.
// Any other panic value is re-panicked.
//
// Usage:
//
//	func fn() (err error) {
//		defer Recover(&err)
//		// code that may panic(err)
//	}
func Recover(err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = e
		} else {
			panic(r)
		}
	}
}

// RecoverFunc runs fn and turns an error panic into a returned error.
func RecoverFunc(fn func() error) (err error) {
	defer Recover(&err)
	return fn()
}
