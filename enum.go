package trailhead

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Implementing a new Enumerable or adding a new constant value ought to include updating clients
// that rely on knowing the full set of values.
type Enumerable interface {
	String() string
	Valid() error
}
