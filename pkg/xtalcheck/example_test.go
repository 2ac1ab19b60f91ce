package xtalcheck_test

import (
	"context"
	"fmt"

	"github.com/bft-labs/xtalcheck/pkg/xtalcheck"
)

// ExampleRunner_Check checks the clocks of a board once.
func ExampleRunner_Check() {
	r, err := xtalcheck.New(xtalcheck.Config{
		Context: "galaxian",
		Clocks: []xtalcheck.Clock{
			{Name: "maincpu", Frequency: 18_432_000, Divisor: 6},
			{Name: "sound", Frequency: 1_789_772},
		},
	})
	if err != nil {
		fmt.Printf("failed to create runner: %v\n", err)
		return
	}

	report, err := r.Check(context.Background())
	if err != nil {
		fmt.Printf("check failed: %v\n", err)
		return
	}

	for _, res := range report.Results {
		fmt.Println(res.Clock.Name, res.OK())
	}
	fmt.Println(report.Failures()[0].Err)

	// Output:
	// maincpu true
	// sound false
	// unknown crystal value 1789772. did you mean 1750000 or 1797100? context: galaxian: sound
}
