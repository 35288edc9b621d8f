package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-vowel/dsp/filter/design"
)

func ExampleButterworthLowpass1() {
	c, err := design.ButterworthLowpass1(100, 10000)
	if err != nil {
		panic(err)
	}

	fmt.Printf("b = [%.6f %.6f]\n", c.B[0], c.B[1])
	fmt.Printf("a = [%.6f %.6f]\n", c.A[0], c.A[1])
	fmt.Printf("100 Hz: %.2f dB\n", c.MagnitudeDB(100, 10000))

	// Output:
	// b = [0.030469 0.030469]
	// a = [1.000000 -0.939063]
	// 100 Hz: -3.01 dB
}
