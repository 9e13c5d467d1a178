package object

import (
	"testing"
)

func TestIntegerInspect(t *testing.T) {
	i := &Integer{Value: 5}
	if i.Inspect() != "5" {
		t.Errorf("Integer.Inspect() wrong. got=%q", i.Inspect())
	}
	if i.Type() != INTEGER_OBJ {
		t.Errorf("Integer.Type() wrong. got=%q", i.Type())
	}
}

func TestBooleanInspect(t *testing.T) {
	b := &Boolean{Value: true}
	if b.Inspect() != "true" {
		t.Errorf("Boolean.Inspect() wrong. got=%q", b.Inspect())
	}
	if b.Type() != BOOLEAN_OBJ {
		t.Errorf("Boolean.Type() wrong. got=%q", b.Type())
	}
}

func TestStringInspect(t *testing.T) {
	s := &String{Value: "hello world"}
	if s.Inspect() != "hello world" {
		t.Errorf("String.Inspect() wrong. got=%q", s.Inspect())
	}
	if s.Type() != STRING_OBJ {
		t.Errorf("String.Type() wrong. got=%q", s.Type())
	}
}

func TestArrayInspect(t *testing.T) {
	arr := &Array{Elements: []Object{&Integer{Value: 1}, &Integer{Value: 2}}}
	if arr.Inspect() != "[1, 2]" {
		t.Errorf("Array.Inspect() wrong. got=%q", arr.Inspect())
	}
}

func TestNullInspect(t *testing.T) {
	n := &Null{}
	if n.Inspect() != "null" {
		t.Errorf("Null.Inspect() wrong. got=%q", n.Inspect())
	}
	if n.Type() != NULL_OBJ {
		t.Errorf("Null.Type() wrong. got=%q", n.Type())
	}
}

func TestEnvironmentGetSet(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", &Integer{Value: 5})

	val, ok := env.Get("x")
	if !ok {
		t.Fatalf("expected x to be set in environment")
	}
	if val.(*Integer).Value != 5 {
		t.Errorf("expected x to be 5, got=%d", val.(*Integer).Value)
	}

	_, ok = env.Get("y")
	if ok {
		t.Errorf("expected y to be undefined in environment")
	}
}

func TestEnclosedEnvironment(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("x", &Integer{Value: 5})

	inner := NewEnclosedEnvironment(outer)
	inner.Set("y", &Integer{Value: 10})

	if val, ok := inner.Get("x"); !ok || val.(*Integer).Value != 5 {
		t.Errorf("expected inner environment to resolve x from outer")
	}

	if _, ok := outer.Get("y"); ok {
		t.Errorf("expected outer environment to not see inner's y")
	}
}
