package calc

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/spar/automaton"
	"github.com/npillmayer/spar/runtime"
)

func TestEvalStatement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.calc")
	defer teardown()
	//
	intp := NewInterpreter()
	vars, err := intp.Eval("VALUE := 1 + 2 * 3 - (1 - -2) * 3 ;")
	if err != nil {
		t.Fatal(err)
	}
	expected := map[string]interface{}{"VALUE": int64(-2)}
	if !reflect.DeepEqual(vars, expected) {
		t.Errorf("expected %v, have %v", expected, vars)
	}
}

func TestEvalProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.calc")
	defer teardown()
	//
	intp := NewInterpreter()
	vars, err := intp.Eval(`
		x := 1 + 2 * 3;     // 7
		y := (x - 1) / 2;   // exact: stays integral
		z := -x / 2;        // inexact
		w := +y * 1.5;
	`)
	if err != nil {
		t.Fatal(err)
	}
	expected := map[string]interface{}{
		"x": int64(7),
		"y": int64(3),
		"z": -3.5,
		"w": 4.5,
	}
	if !reflect.DeepEqual(vars, expected) {
		t.Errorf("expected %v, have %v", expected, vars)
	}
	vars, err = intp.Eval("r := x + y;")
	if err != nil {
		t.Fatal(err)
	}
	if vars["r"] != int64(10) {
		t.Errorf("expected variables to survive between evaluations, r = %v", vars["r"])
	}
	if len(intp.Vars()) != 5 {
		t.Errorf("expected 5 global variables, have %v", intp.Vars())
	}
	var names []string
	intp.Each(func(name string, _ interface{}) {
		names = append(names, name)
	})
	if !reflect.DeepEqual(names, []string{"r", "w", "x", "y", "z"}) {
		t.Errorf("expected variables in order of names, have %v", names)
	}
	intp.Reset()
	if len(intp.Vars()) != 0 {
		t.Errorf("expected reset to clear variables, have %v", intp.Vars())
	}
}

func TestEvalConstants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.calc")
	defer teardown()
	//
	intp := NewInterpreter()
	vars, err := intp.Eval("area := pi * 2 * 2;")
	if err != nil {
		t.Fatal(err)
	}
	if a := vars["area"].(float64); math.Abs(a-4*math.Pi) > 1e-9 {
		t.Errorf("expected area to be 4π, is %v", a)
	}
	if _, err = intp.Eval("pi := 3;"); !errors.Is(err, runtime.ErrConstant) {
		t.Errorf("expected assignment to pi to fail, have %v", err)
	}
}

func TestEvalErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.calc")
	defer teardown()
	//
	intp := NewInterpreter()
	if _, err := intp.Eval("a := 1 / (2 - 2);"); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected division by zero, have %v", err)
	}
	if _, err := intp.Eval("a := 1.5 / 0;"); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected division by zero, have %v", err)
	}
	if _, err := intp.Eval("a := b + 1;"); !errors.Is(err, runtime.ErrUndefined) {
		t.Errorf("expected undefined variable, have %v", err)
	}
	var perr *automaton.ParseError
	if _, err := intp.Eval("a := 1 +;"); !errors.As(err, &perr) {
		t.Errorf("expected parse error, have %v", err)
	}
	if _, err := intp.Eval(""); !errors.Is(err, automaton.ErrEmptyInput) {
		t.Errorf("expected empty input error, have %v", err)
	}
	if _, err := intp.Eval("a := 1 $ 2;"); err == nil {
		t.Errorf("expected scanner error for '$'")
	}
	vars, err := intp.Eval("ok := 1; bad := ok / 0;")
	if !errors.Is(err, ErrDivisionByZero) || vars["ok"] != int64(1) {
		t.Errorf("expected first statement to take effect, have %v (error = %v)", vars, err)
	}
}

func TestGrammarIsCompiledOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "spar.calc")
	defer teardown()
	//
	g1, err1 := Grammar()
	g2, err2 := Grammar()
	if err1 != nil || err2 != nil {
		t.Fatalf("compile errors: %v, %v", err1, err2)
	}
	if g1 != g2 {
		t.Errorf("expected grammar to be compiled once")
	}
	if g1.Name() != "Program" {
		t.Errorf("expected grammar to be named Program, is %s", g1.Name())
	}
}
