// Package oracle provides concrete classifiers for a [lbf.Sandwich].
//
// [Threshold] rules and the [All] and [Any] combinators cover hand-written
// predicates. [Tree] is a small decision tree over the three item features,
// trained from labelled samples with [Fit]. All of them satisfy
// [lbf.Classifier] and are pure, so they can be shared between filters.
package oracle
