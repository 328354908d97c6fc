package codegen

import "fmt"

// The runtime's immortal sentinel objects (spec.md §4.4 "Runtime layout"):
// shared by every empty string and every empty array respectively, so
// construction of either never allocates.
const (
	emptyStringLabel = "_empty_str"
	emptyArrayLabel  = "_empty_arr"
	concatFuncName   = "_concat"
)

// encodeClassFunctionName names the label for the method MethodName as
// actually defined on class cl (never the inheriting subclass), used both
// for the emitted label itself and for the funcref a vtable slot points
// at (spec.md §4.4 "vtable").
func encodeClassFunctionName(cl, method string) string {
	return fmt.Sprintf("_class_%s$%s", cl, method)
}

// encodeConstructorName names cl's auto-generated constructor label.
func encodeConstructorName(cl string) string {
	return "_class_$" + cl
}

// encodeVtableName names cl's vtable label.
func encodeVtableName(cl string) string {
	return "_class_@" + cl
}

// stringLabel names the label for the id-th unique string literal
// encountered during emission.
func stringLabel(id int) string {
	return fmt.Sprintf("_string_%d", id)
}
