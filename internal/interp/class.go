package interp

import "fmt"

// Class is a first-class Lox class value. Method lookup walks the
// superclass chain, first match wins, the same rule "super.method()"
// relies on to skip past an overriding subclass method.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*UserFunction
}

func NewClass(name string, superclass *Class, methods map[string]*UserFunction) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) Type() string   { return "class" }
func (c *Class) String() string { return c.Name }

// FindMethod looks up name on c, then recursively on its superclass chain.
func (c *Class) FindMethod(name string) *UserFunction {
	if fn, ok := c.Methods[name]; ok {
		return fn
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of "init" if defined, else zero: constructing a class
// with no initializer takes no arguments.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call instantiates c. If c (or a superclass) defines "init", it runs
// immediately, bound to the new instance, and its own return value is
// discarded: constructors always evaluate to the instance itself.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is an object created by instantiating a Class. Fields are
// created dynamically on first assignment rather than needing to be
// pre-declared on the class.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (i *Instance) Type() string   { return "instance" }
func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get reads a field first, falling back to a bound method. A field that
// shadows a method name always wins and returns the field's raw value,
// which is not bound to the instance.
func (i *Instance) Get(name string) (Value, error) {
	if v, ok := i.Fields[name]; ok {
		return v, nil
	}
	if method := i.Class.FindMethod(name); method != nil {
		return method.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name)
}

// Set assigns a field, creating it if it does not already exist.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}
