package lbf

// Classifier is the learned oracle consulted between the two filters of a
// Sandwich. Classify reports whether the item with the given features is
// predicted to be a member of the set.
//
// Implementations must be pure: the same features always give the same
// answer, and no state is shared with the filters. Accuracy is not
// assumed; the sandwich's fallback filter covers members the classifier
// rejects.
type Classifier interface {
	Classify(fv Features) bool
}

// ClassifierFunc adapts an ordinary function to the Classifier interface.
type ClassifierFunc func(fv Features) bool

// Classify calls fn(fv).
func (fn ClassifierFunc) Classify(fv Features) bool {
	return fn(fv)
}
