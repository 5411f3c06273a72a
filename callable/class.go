package callable

import "github.com/akashmaji946/lox/object"

// Class is a callable that produces Instances. Methods holds exactly
// the methods declared directly on this class; inherited methods are
// reached by walking Superclass at lookup time, not by copying them in.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*UserFunction
}

// FindMethod looks up name on this class, then its superclass chain.
func (c *Class) FindMethod(name string) (*UserFunction, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of the class's `init` method, or 0 if it has none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call creates a new Instance and, if the class (or an ancestor) defines
// `init`, binds and invokes it with args before returning the instance.
func (c *Class) Call(interp object.Interp, args []object.Value) (object.Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// String renders a class the way `print` stringifies it: its bare name.
func (c *Class) String() string {
	return c.Name
}
