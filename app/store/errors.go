package store

import "errors"

// ConstraintKind tells which storage rule rejected a write.
type ConstraintKind int

const (
	ForeignKey ConstraintKind = iota + 1
	Unique
)

func (k ConstraintKind) String() string {
	switch k {
	case ForeignKey:
		return "foreign key"
	case Unique:
		return "unique"
	default:
		return "unknown"
	}
}

// ConstraintError is returned when the database refuses a write because of
// a foreign key or uniqueness rule. Message is the database's own wording.
type ConstraintError struct {
	Kind       ConstraintKind
	Constraint string
	Message    string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " constraint violated"
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// IsForeignKey reports whether err is a foreign key violation.
func IsForeignKey(err error) bool {
	var cerr *ConstraintError
	return errors.As(err, &cerr) && cerr.Kind == ForeignKey
}

// IsUnique reports whether err is a uniqueness violation.
func IsUnique(err error) bool {
	var cerr *ConstraintError
	return errors.As(err, &cerr) && cerr.Kind == Unique
}
