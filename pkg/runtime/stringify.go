package runtime

import (
	"math"
	"strconv"
	"strings"
)

// DisplayString renders a value the way print and string concatenation see it.
func DisplayString(v Value) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case NullValue:
		return "null"
	case VoidValue:
		return "void"
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return formatFloat(val.Val)
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case StringValue:
		return val.Val
	case AtomValue:
		return val.Name
	case *ArrayValue:
		parts := make([]string, len(val.Elements))
		for idx, el := range val.Elements {
			parts[idx] = DisplayString(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *StructValue:
		parts := make([]string, 0, len(val.Decl.Fields))
		for _, field := range val.Decl.Fields {
			parts = append(parts, field.Name+"="+DisplayString(val.Fields[field.Name]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case FunctionValue:
		return val.Decl.Name
	case *NativeFunctionValue:
		return val.Name
	case TypeValue:
		return val.Name
	case ConstructorValue:
		return "$" + val.Decl.Name
	default:
		return "<unknown>"
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
