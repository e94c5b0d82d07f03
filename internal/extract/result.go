package extract

// Status tells a present value apart from an absent or unparsable one.
type Status int

const (
	// Missing means the field or subfield the extractor reads is absent.
	Missing Status = iota
	// Present means Value holds a usable attribute.
	Present
	// Malformed means the field exists but its content has the wrong shape.
	Malformed
)

func (s Status) String() string {
	switch s {
	case Present:
		return "present"
	case Malformed:
		return "malformed"
	default:
		return "missing"
	}
}

// Result is the outcome of one extractor.
type Result[T any] struct {
	Value  T
	Status Status
}

// OK reports whether the extractor produced a usable value.
func (r Result[T]) OK() bool {
	return r.Status == Present
}

func present[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: Present}
}

func missing[T any]() Result[T] {
	return Result[T]{Status: Missing}
}

func malformed[T any]() Result[T] {
	return Result[T]{Status: Malformed}
}

// listResult marks an empty list as Missing.
func listResult(values []string) Result[[]string] {
	if len(values) == 0 {
		return missing[[]string]()
	}
	return present(values)
}

// textResult marks an empty string as Missing.
func textResult(value string) Result[string] {
	if value == "" {
		return missing[string]()
	}
	return present(value)
}
