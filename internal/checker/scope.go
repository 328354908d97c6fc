package checker

import "github.com/lat-compiler/latc/internal/types"

// scope is the three-parallel-stacks structure spec.md §9 recommends: a
// name -> shadow-type-stack map (so an inner declaration can shadow an
// outer one and pop back to it), paired with a stack of per-block
// declared-name sets used only to reject same-block redeclaration and to
// know which names to pop when the block ends.
type scope struct {
	shadows map[string][]types.Type
	blocks  []map[string]bool
}

func newScope() *scope {
	return &scope{shadows: map[string][]types.Type{}}
}

// pushBlock opens a new declaration scope (function entry, or any Block).
func (s *scope) pushBlock() {
	s.blocks = append(s.blocks, map[string]bool{})
}

// popBlock closes the innermost declaration scope, unwinding every name it
// declared back to whatever it was shadowing (or to nothing).
func (s *scope) popBlock() {
	top := s.blocks[len(s.blocks)-1]
	s.blocks = s.blocks[:len(s.blocks)-1]
	for name := range top {
		stack := s.shadows[name]
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			delete(s.shadows, name)
		} else {
			s.shadows[name] = stack
		}
	}
}

// declare binds name to t in the current block. Reports false without
// binding anything if name was already declared in this same block (an
// outer block's declaration of the same name is shadowing, not an error).
func (s *scope) declare(name string, t types.Type) bool {
	top := s.blocks[len(s.blocks)-1]
	if top[name] {
		return false
	}
	top[name] = true
	s.shadows[name] = append(s.shadows[name], t)
	return true
}

// lookup returns the innermost binding of name, if any.
func (s *scope) lookup(name string) (types.Type, bool) {
	stack := s.shadows[name]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}
