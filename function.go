package tagjson

import (
	"regexp"
	"strings"
)

// FunctionSource is implemented by callables that can report their source
// text in the form "function [name](a, b) { body }", typically values
// bridged from an embedded scripting runtime. Compiled Go funcs carry no
// source text and cannot be serialized.
type FunctionSource interface {
	FuncSource() string
}

// Function is the serializable form of a callable: its parameter list and
// body text. Identity, closures and names are not preserved.
type Function struct {
	Params string
	Body   string
}

// FuncSource renders the function back to source text.
func (f *Function) FuncSource() string {
	return "function (" + f.Params + ") {" + f.Body + "}"
}

var (
	functionPattern = regexp.MustCompile(`^\s*function(?:\s+` + identifierFormat + `)?\s*` +
		`\(\s*(?:(` + identifierFormat + `)((?:\s*,\s*` + identifierFormat + `)*)?)?\s*\)\s*` +
		`\{([\s\S]*)\}\s*`)
	nativeBodyPattern = regexp.MustCompile(`^\s\[native\scode\]\s$`)
)

// parseFunctionSource splits source text into a normalized parameter list
// ("a, b, c") and the body between the outermost braces.
func parseFunctionSource(source string) (params string, body string, err error) {
	parts := functionPattern.FindStringSubmatch(source)
	if parts == nil {
		return "", "", NewUnsupportedValueError("function", "source text is not a function expression")
	}

	first, rest, body := parts[1], parts[2], parts[3]
	if nativeBodyPattern.MatchString(body) {
		return "", "", NewUnsupportedValueError("function", "native functions cannot be serialized")
	}

	names := make([]string, 0, 1)
	if first != "" {
		names = append(names, strings.TrimSpace(first))
	}
	if rest != "" {
		for _, name := range strings.Split(rest, ",")[1:] {
			names = append(names, strings.TrimSpace(name))
		}
	}
	return strings.Join(names, ", "), body, nil
}
