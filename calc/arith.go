package calc

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned for divisions by zero.
var ErrDivisionByZero = errors.New("division by zero")

// Values are either int64 or float64. Operations on two integers result in
// integers, as long as the result is exact.

func numbers(x, y interface{}) (int64, int64, float64, float64, bool, error) {
	a, aInt, err := number(x)
	if err != nil {
		return 0, 0, 0, 0, false, err
	}
	b, bInt, err := number(y)
	if err != nil {
		return 0, 0, 0, 0, false, err
	}
	if aInt && bInt {
		return x.(int64), y.(int64), a, b, true, nil
	}
	return 0, 0, a, b, false, nil
}

func number(x interface{}) (float64, bool, error) {
	switch n := x.(type) {
	case int64:
		return float64(n), true, nil
	case float64:
		return n, false, nil
	}
	return 0, false, fmt.Errorf("not a number: %v", x)
}

func add(x, y interface{}) (interface{}, error) {
	i, j, a, b, ints, err := numbers(x, y)
	if err != nil {
		return nil, err
	}
	if ints {
		return i + j, nil
	}
	return a + b, nil
}

func sub(x, y interface{}) (interface{}, error) {
	i, j, a, b, ints, err := numbers(x, y)
	if err != nil {
		return nil, err
	}
	if ints {
		return i - j, nil
	}
	return a - b, nil
}

func mul(x, y interface{}) (interface{}, error) {
	i, j, a, b, ints, err := numbers(x, y)
	if err != nil {
		return nil, err
	}
	if ints {
		return i * j, nil
	}
	return a * b, nil
}

func div(x, y interface{}) (interface{}, error) {
	i, j, a, b, ints, err := numbers(x, y)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, ErrDivisionByZero
	}
	if ints && i%j == 0 {
		return i / j, nil
	}
	return a / b, nil
}

func neg(x interface{}) (interface{}, error) {
	switch n := x.(type) {
	case int64:
		return -n, nil
	case float64:
		return -n, nil
	}
	return nil, fmt.Errorf("not a number: %v", x)
}
