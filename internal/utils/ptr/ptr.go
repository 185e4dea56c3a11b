package ptr

// To creates a pointer to the given value.
// This is a generic utility function that works with any type.
func To[T any](v T) *T {
	return &v
}

// String creates a pointer to the given string value.
func String(s string) *string {
	return &s
}

// Float64 creates a pointer to the given float64 value.
func Float64(f float64) *float64 {
	return &f
}
