package irgen

import "fmt"

// Codegen failure messages
const (
	MsgUnknownVariable = "unknown variable name"
	MsgUnknownFunction = "unknown function"
	MsgArgumentCount   = "incorrect number of arguments passed"
	MsgConstRedeclared = "cannot redeclare constant"
	MsgOperandMismatch = "invalid operand types"
	MsgNonNumericArg   = "call arguments must be numbers"
	MsgUnsupportedOp   = "unsupported operator"
)

// CodegenError reports a construct the generator cannot lower
type CodegenError struct {
	Message string
	Name    string
	Line    int
}

func (e *CodegenError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("codegen error at line %d: %s '%s'", e.Line, e.Message, e.Name)
	}
	return fmt.Sprintf("codegen error at line %d: %s", e.Line, e.Message)
}

func codegenErr(line int, message, name string) *CodegenError {
	return &CodegenError{Message: message, Name: name, Line: line}
}
