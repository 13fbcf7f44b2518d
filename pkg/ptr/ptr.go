package ptr

// Ptr returns a pointer to the given value.
// Удобный хелпер для передачи опциональных параметров.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed-to value or the zero value for nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
