package lbf_test

import (
	"fmt"

	"github.com/jcalabro/lbf"
)

// This example demonstrates basic bloom filter usage for membership testing.
func Example() {
	// 3000 bits, 3 hash functions
	f, err := lbf.New(3000, 3)
	if err != nil {
		panic(err)
	}

	f.AddString("apple")
	f.AddString("banana")

	fmt.Println("apple:", f.TestString("apple"))
	fmt.Println("banana:", f.TestString("banana"))
	fmt.Println("memory bits:", f.MemoryBits())

	// Output:
	// apple: true
	// banana: true
	// memory bits: 3000
}

// An empty filter never reports a false positive.
func Example_empty() {
	f := lbf.MustNew(50, 2)

	fmt.Println(f.TestString("anything"))
	fmt.Println(f.Test([]byte("anything else")))

	// Output:
	// false
	// false
}

// This example builds a sandwiched learned filter around a hand-written
// classifier that flags URLs with many hyphens.
func ExampleSandwich() {
	oracle := lbf.ClassifierFunc(func(fv lbf.Features) bool {
		return fv.HyphenCount >= 3
	})

	s, err := lbf.NewSandwich(1000, 2, 500, 2, oracle)
	if err != nil {
		panic(err)
	}

	// Add reports whether the member needed the fallback filter.
	fmt.Println("fallback:", s.Add("http://bad-hacker-site-1.com"))
	fmt.Println("fallback:", s.Add("http://phish.example/login"))

	ok, stage := s.Explain("http://bad-hacker-site-1.com")
	fmt.Println(ok, stage)
	ok, stage = s.Explain("http://phish.example/login")
	fmt.Println(ok, stage)

	fmt.Println("memory bits:", s.MemoryBits())

	// Output:
	// fallback: false
	// fallback: true
	// true oracle
	// true l3
	// memory bits: 1500
}

// Degenerate parameters are rejected at construction time.
func ExampleNew_invalid() {
	_, err := lbf.New(0, 3)
	fmt.Println(lbf.IsConfigError(err), lbf.GetErrorCode(err))

	// Output:
	// true LBF_INVALID_SIZE
}

func ExampleNewWithEstimates() {
	f := lbf.NewWithEstimates(5000, 0.01)

	fmt.Printf("Bits: %d, K: %d\n", f.MemoryBits(), f.K())

	// Output:
	// Bits: 47926, K: 7
}

func ExampleOptimalParams() {
	// Calculate optimal parameters for your use case
	size, k, bitsPerItem := lbf.OptimalParams(1_000_000, 0.01)

	fmt.Printf("For 1M items at 1%% FP rate:\n")
	fmt.Printf("  Bits: %d\n", size)
	fmt.Printf("  Hash functions (k): %d\n", k)
	fmt.Printf("  Bits per item: %.1f\n", bitsPerItem)

	// Output:
	// For 1M items at 1% FP rate:
	//   Bits: 9585059
	//   Hash functions (k): 7
	//   Bits per item: 9.6
}

func ExampleEstimateFalsePositiveRate() {
	rate := lbf.EstimateFalsePositiveRate(50_000, 7, 5_000)
	fmt.Printf("Estimated FP rate: %.2f%%\n", rate*100)

	// Output:
	// Estimated FP rate: 0.82%
}
