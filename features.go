package lbf

// Features is the feature vector a Classifier sees for an item. It is
// derived from the item's text on demand and never stored.
type Features struct {
	Length      int // Length of the item in bytes
	DigitCount  int // Number of ASCII digits
	HyphenCount int // Number of '-' characters
}

// ExtractFeatures computes the Features of item.
func ExtractFeatures(item string) Features {
	fv := Features{Length: len(item)}
	for i := 0; i < len(item); i++ {
		switch c := item[i]; {
		case c >= '0' && c <= '9':
			fv.DigitCount++
		case c == '-':
			fv.HyphenCount++
		}
	}
	return fv
}
