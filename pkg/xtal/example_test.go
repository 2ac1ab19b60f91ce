package xtal_test

import (
	"errors"
	"fmt"

	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

func ExampleValidator_ValidateOrExplain() {
	v := xtal.New(xtal.MustCatalog(1_000_000, 2_000_000, 4_000_000))

	fmt.Println(v.ValidateOrExplain(2_000_000, "maincpu"))

	err := v.ValidateOrExplain(1_500_000, "maincpu")
	fmt.Println(err)

	var ufe *xtal.UnknownFrequencyError
	if errors.As(err, &ufe) {
		fmt.Println(ufe.Low, ufe.High)
	}

	// Output:
	// <nil>
	// unknown crystal value 1500000. did you mean 1000000 or 2000000? context: maincpu
	// 1000000 2000000
}

func ExampleXTAL() {
	cpu := xtal.NewXTAL(14_318_181).Div(4)
	fmt.Println(cpu, cpu.Validate(nil, "z80") == nil)

	// Output:
	// 3579545 Hz true
}
