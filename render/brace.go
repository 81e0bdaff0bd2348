package render

import (
	"fmt"
	"strconv"

	"github.com/LerianStudio/lib-invariants/failure"
)

// BraceRenderer formats with "{}" placeholders and a typed argument set.
//
// Each "{}" consumes the next argument in order; "{{" and "}}" emit literal
// braces. Supported argument types are Go's basic strings, booleans, integer
// and float types, []byte, error, and fmt.Stringer. Anything else, or a
// placeholder/argument count mismatch, is a failure.ErrFormat.
type BraceRenderer struct{}

var _ Renderer = BraceRenderer{}

// Render implements Renderer.
func (BraceRenderer) Render(buf *Buffer, format string, args ...any) (int, error) {
	buf.Reset()

	next := 0

	for i := 0; i < len(format); i++ {
		switch c := format[i]; c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				buf.WriteByte('{') //nolint:errcheck // truncating writes cannot fail
				i++

				continue
			}

			if i+1 >= len(format) || format[i+1] != '}' {
				return 0, fmt.Errorf("%w: unterminated placeholder at byte %d", failure.ErrFormat, i)
			}

			if next >= len(args) {
				return 0, fmt.Errorf("%w: placeholder %d has no argument", failure.ErrFormat, next)
			}

			rendered, err := renderArg(args[next])
			if err != nil {
				return 0, err
			}

			buf.WriteString(rendered) //nolint:errcheck // truncating writes cannot fail
			next++
			i++
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				buf.WriteByte('}') //nolint:errcheck // truncating writes cannot fail
				i++

				continue
			}

			return 0, fmt.Errorf("%w: unmatched '}' at byte %d", failure.ErrFormat, i)
		default:
			buf.WriteByte(c) //nolint:errcheck // truncating writes cannot fail
		}
	}

	if next != len(args) {
		return 0, fmt.Errorf("%w: %d argument(s) left over", failure.ErrFormat, len(args)-next)
	}

	return buf.Len(), nil
}

func renderArg(arg any) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case error:
		return v.Error(), nil
	case fmt.Stringer:
		return stringerValue(v)
	default:
		return "", fmt.Errorf("%w: unsupported argument type %T", failure.ErrFormat, arg)
	}
}

// stringerValue renders a fmt.Stringer, converting a panic inside String
// into a format failure. The failure path must not unwind further.
func stringerValue(v fmt.Stringer) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: String panicked: %v", failure.ErrFormat, r)
		}
	}()

	return v.String(), nil
}
