package object

import (
	"fmt"
	"strings"

	"github.com/monkeylang/monkey/ast"
	"github.com/monkeylang/monkey/code"
)

const (
	INTEGER_OBJ           = "INTEGER"
	BOOLEAN_OBJ           = "BOOLEAN"
	NULL_OBJ              = "NULL"
	RETURN_VALUE_OBJ      = "RETURN_VALUE"
	ERROR_OBJ             = "ERROR"
	STRING_OBJ            = "STRING"
	ARRAY_OBJ             = "ARRAY"
	FUNCTION_OBJ          = "FUNCTION"
	COMPILED_FUNCTION_OBJ = "COMPILED_FUNCTION"
)

// ObjectType is the type that represents an evaluated value as a string
type ObjectType string

// Object is the interface that represents every value
// we encounter when evaluating Monkey source code.
// Every value will be wrapped inside a stuct, which fulfills
// this Object interface. Tt is foundation for our object system.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Integer is the referenced struct for Integer Literals in our object system.
// The struct holds the evaluated value of the Integer Literal, truncated to
// 32 bits the same way the compiler/VM represent it.
type Integer struct {
	Value int32 // the evaluated value
}

// Inspect returns the Integer struct's Value as a string
func (i *Integer) Inspect() string { return fmt.Sprintf("%d", i.Value) }

// Type returns the ObjectType (INTEGER_OBJ) associated with the referenced Integer struct
func (i *Integer) Type() ObjectType { return INTEGER_OBJ }

// Boolean is the referenced struct for Boolean Literals in our object system.
// The struct holds the evaluated value of the Boolean Literal.
type Boolean struct {
	Value bool // the evaluated value
}

// Inspect returns the Boolean struct's Value as a string
func (b *Boolean) Inspect() string { return fmt.Sprintf("%t", b.Value) }

// Type returns the ObjectType (BOOLEAN_OBJ) associated with the referenced Boolean struct
func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }

// Null is the referenced struct for Null Literals in our object system.
// By nature it has no value, since it represents the absence of any value.
type Null struct{}

// Inspect returns a literal "null" string as there is no value to stringify on Null structs
func (n *Null) Inspect() string { return "null" }

// Type returns the ObjectType (NULL_OBJ) associated with the referenced Null struct
func (n *Null) Type() ObjectType { return NULL_OBJ }

// String is the referenced struct for String Literals in our object system.
type String struct {
	Value string
}

// Inspect returns the String struct's Value as-is
func (s *String) Inspect() string { return s.Value }

// Type returns the ObjectType (STRING_OBJ) associated with the referenced String struct
func (s *String) Type() ObjectType { return STRING_OBJ }

// Array is the referenced struct for Array Literals in our object system.
// Elements holds the evaluated value for every element in the literal.
type Array struct {
	Elements []Object
}

// Inspect joins every element's Inspect() output with commas, wrapped in brackets
func (ao *Array) Inspect() string {
	var out strings.Builder

	elements := []string{}
	for _, e := range ao.Elements {
		elements = append(elements, e.Inspect())
	}

	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")

	return out.String()
}

// Type returns the ObjectType (ARRAY_OBJ) associated with the referenced Array struct
func (ao *Array) Type() ObjectType { return ARRAY_OBJ }

// Function is the tree-walking evaluator's closure representation. It is the
// only object in this system that captures an Environment - the compiler/VM
// pipeline never constructs one of these.
type Function struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

// Type returns the ObjectType (FUNCTION_OBJ) associated with the referenced Function struct
func (f *Function) Type() ObjectType { return FUNCTION_OBJ }

// Inspect constructs a readable representation of the function-literal,
// its parameters and its body
func (f *Function) Inspect() string {
	var out strings.Builder

	params := []string{}
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}

	out.WriteString("fn")
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") {\n")
	out.WriteString(f.Body.String())
	out.WriteString("\n}")

	return out.String()
}

// ReturnValue wraps the intended return value inside an Object,
// giving us the ability to keep track of it. Keeping track of it helps
// us later decide whether to stop evalution or not.
type ReturnValue struct {
	Value Object
}

// Type returns the ObjectType (RETURN_VALUE_OBJ) associated with the referenced ReturnValue struct
func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }

// Inspect returns the ReturnValue struct's Value as a string. Since the
// Value is of type Object (interface), we can call Inspect() from the
// underlying struct which implemeneted the Object interface.
func (rv *ReturnValue) Inspect() string { return rv.Value.Inspect() }

// Error contains the Message corresponding to an error that
// was encountered while evaluating the AST
type Error struct {
	Message string
}

// Type returns the ObjectType (ERROR_OBJ) associated with the referenced Error struct
func (e *Error) Type() ObjectType { return ERROR_OBJ }

// Inspect returns the Error struct's Message as a formatted string
// to print out the error message
func (e *Error) Inspect() string { return "ERROR: " + e.Message }

// CompiledFunction is the bytecode representation of a function-literal.
// Unlike Function, it never holds an Environment - the symbol table already
// resolved every name it references to either a global or a frame-relative
// local slot at compile time.
type CompiledFunction struct {
	Instructions  code.Instructions
	NumLocals     int
	NumParameters int
}

// Type returns the ObjectType (COMPILED_FUNCTION_OBJ) associated with the referenced CompiledFunction struct
func (cf *CompiledFunction) Type() ObjectType { return COMPILED_FUNCTION_OBJ }

// Inspect returns the address of the compiled function - there is no source
// text left to print once a function-literal has been compiled to bytecode
func (cf *CompiledFunction) Inspect() string {
	return fmt.Sprintf("CompiledFunction[%p]", cf)
}
