package lbf

// Stage identifies which layer of a Sandwich decided a query.
type Stage uint8

const (
	// StageL1 means the pre-filter reported the item definitely absent.
	StageL1 Stage = iota
	// StageOracle means the classifier accepted the item.
	StageOracle
	// StageL3 means the fallback filter gave the final answer.
	StageL3
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageL1:
		return "l1"
	case StageOracle:
		return "oracle"
	case StageL3:
		return "l3"
	default:
		return "unknown"
	}
}

// Sandwich is a sandwiched learned bloom filter: a pre-filter (L1), a
// learned classifier, and a fallback filter (L3), queried in that order.
//
// L1 cheaply rejects most non-members before features are extracted. The
// classifier replaces what would otherwise be a larger filter. L3 re-admits
// members the classifier rejects, so an item is never a false negative as
// long as it was added to L3 whenever the classifier rejects it. Add
// applies that policy; AddL1 and AddL3 leave it to the caller.
//
// Like Filter, a Sandwich is not safe for concurrent use.
type Sandwich struct {
	l1     *Filter
	l3     *Filter
	oracle Classifier
}

// NewSandwich creates a sandwiched filter from the sizes and hash counts of
// its two layers and the classifier consulted between them. Every size and
// hash count must be non-zero and oracle must not be nil.
func NewSandwich(l1Size uint64, l1Hashes uint32, l3Size uint64, l3Hashes uint32, oracle Classifier) (*Sandwich, error) {
	if oracle == nil {
		return nil, NewErrNilClassifier()
	}
	l1, err := New(l1Size, l1Hashes)
	if err != nil {
		return nil, newErrInvalidLayer("l1", err)
	}
	l3, err := New(l3Size, l3Hashes)
	if err != nil {
		return nil, newErrInvalidLayer("l3", err)
	}

	return &Sandwich{
		l1:     l1,
		l3:     l3,
		oracle: oracle,
	}, nil
}

// AddL1 adds item to the pre-filter. Every member must be added to L1.
func (s *Sandwich) AddL1(item string) {
	s.l1.AddString(item)
}

// AddL3 adds item to the fallback filter.
func (s *Sandwich) AddL3(item string) {
	s.l3.AddString(item)
}

// Add inserts a member: it goes into L1, and into L3 exactly when the
// classifier rejects it. It reports whether the item was added to L3.
func (s *Sandwich) Add(item string) bool {
	s.AddL1(item)
	if s.oracle.Classify(ExtractFeatures(item)) {
		return false
	}
	s.AddL3(item)
	return true
}

// Test checks if item might be in the set.
func (s *Sandwich) Test(item string) bool {
	ok, _ := s.Explain(item)
	return ok
}

// Explain is like Test but also returns the stage that decided the answer.
func (s *Sandwich) Explain(item string) (bool, Stage) {
	if !s.l1.TestString(item) {
		return false, StageL1
	}
	if s.oracle.Classify(ExtractFeatures(item)) {
		return true, StageOracle
	}
	return s.l3.TestString(item), StageL3
}

// MemoryBits returns the combined bit array length of L1 and L3. The
// classifier is not counted.
func (s *Sandwich) MemoryBits() uint64 {
	return s.l1.MemoryBits() + s.l3.MemoryBits()
}

// L1 returns the pre-filter.
func (s *Sandwich) L1() *Filter { return s.l1 }

// L3 returns the fallback filter.
func (s *Sandwich) L3() *Filter { return s.l3 }

// Oracle returns the classifier.
func (s *Sandwich) Oracle() Classifier { return s.oracle }

// EstimatedFalsePositiveRate estimates the sandwich's false positive rate
// given the classifier's false positive rate on non-members that reach it.
func (s *Sandwich) EstimatedFalsePositiveRate(oracleFPRate float64) float64 {
	return EstimateSandwichFalsePositiveRate(
		s.l1.EstimatedFalsePositiveRate(),
		oracleFPRate,
		s.l3.EstimatedFalsePositiveRate(),
	)
}
