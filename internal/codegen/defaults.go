package codegen

import "github.com/lat-compiler/latc/internal/types"

// defaultValueOperand is the NASM operand emitted to zero-initialize a
// slot of type t: a fresh object's fields, a new array's elements, and a
// Definition without an initializer all read from here. Grounded on
// original_source/src/backend_x86_64.cpp's get_def_val_for_type.
func defaultValueOperand(t types.Type) string {
	if _, ok := types.IsArray(t); ok {
		return emptyArrayLabel
	}
	if t.Equal(types.String) {
		return emptyStringLabel
	}
	return "0"
}
