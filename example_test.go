package plenary_test

import (
	"errors"
	"fmt"

	plenary "github.com/xgx-io/xgx-plenary"
)

func ExampleCapture() {
	c := plenary.New()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		_ = c.Context(name).Run(func() error {
			if name == "beta" {
				return nil
			}
			return fmt.Errorf("%s failed", name)
		})
	}
	fmt.Println(c.Raise())
	// Output:
	// alpha failed (context: alpha)
	// gamma failed (context: gamma)
}

func ExampleCapture_Raise_single() {
	c := plenary.New()
	original := errors.New("boom")
	_ = c.Run(func() error { return original })

	err := c.Raise()
	fmt.Println(err == original, c.Raise() == nil)
	// Output: true true
}

func ExampleContext_Guard() {
	c := plenary.New(plenary.WithFilter(plenary.Is(plenary.KindUnavailable)))
	scope := c.Context("fetch")

	fetch := func(fail error) (err error) {
		defer scope.Guard(&err)
		return fail
	}

	fmt.Println(fetch(plenary.KindTimeout.New("upstream slow")))
	fmt.Println(fetch(plenary.KindInvalid.New("bad id")))
	fmt.Println(c.Len())
	// Output:
	// <nil>
	// invalid: bad id
	// 1
}

func ExampleContainsType() {
	c := plenary.New()
	_ = c.Run(func() error { panic("unexpected") })
	_ = c.Run(func() error { return errors.New("ordinary") })

	err := c.Raise()
	var agg *plenary.AggregateError
	if errors.As(err, &agg) {
		fmt.Println(agg.Len(), plenary.ContainsType[*plenary.PanicError](agg))
	}
	// Output: 2 true
}
