package registry_test

import (
	"errors"
	"fmt"
	"strings"

	"digital.vasic.microtest/pkg/assertion"
	"digital.vasic.microtest/pkg/registry"
	"digital.vasic.microtest/pkg/suite"
)

type ArithmeticSuite struct {
	suite.Base
}

func NewArithmeticSuite() *ArithmeticSuite {
	s := &ArithmeticSuite{}
	s.Register("addition", s.addition)
	s.Register("division", s.division)
	s.Register("overflow", s.overflow)
	return s
}

func (s *ArithmeticSuite) addition() {
	assertion.AreEqual(4, 2+2)
}

func (s *ArithmeticSuite) division() {
	assertion.Throws(func() error {
		return divide(1, 0)
	}, func(err error) bool {
		return errors.Is(err, errDivideByZero)
	})
}

func (s *ArithmeticSuite) overflow() {
	var b int8 = 127
	b++
	assertion.IsTrue(b > 0)
}

var errDivideByZero = errors.New("divide by zero")

func divide(a, b int) error {
	if b == 0 {
		return errDivideByZero
	}
	_ = a / b
	return nil
}

func Example() {
	r := registry.NewRegistry()
	if err := registry.Add(r, NewArithmeticSuite); err != nil {
		fmt.Println(err)
		return
	}

	failures := r.RunCollecting()
	fmt.Println("failures:", len(failures))
	for _, f := range failures {
		first, _, _ := strings.Cut(f.Message(), "\n")
		fmt.Println(first)
	}

	err := registry.RunCasePropagating[*ArithmeticSuite](r, "addition")
	fmt.Println("addition:", err)

	err = registry.Add(r, NewArithmeticSuite)
	fmt.Println(errors.Is(err, registry.ErrSuiteExists))
	// Output:
	// failures: 1
	// Expected: <true> as bool
	// addition: <nil>
	// true
}
