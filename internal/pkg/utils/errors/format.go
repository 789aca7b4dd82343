package errors

import (
	"bufio"
	"strings"
)

const (
	Indent = "  "
	Bullet = "- "
)

// Format converts an error to a string.
// A MultiError is formatted as a bullet list, a NestedError as a prefix followed by sub errors.
func Format(err error) string {
	w := &writer{}
	w.writeError(0, err)
	return w.String()
}

type writer struct {
	out strings.Builder
}

func (w *writer) writeError(level int, err error) {
	if err == nil {
		panic("error cannot be nil")
	}

	// nolint: errorlint
	switch v := err.(type) {
	case nestedErrorGetter:
		w.writeNestedError(level, v.MainError(), v.WrappedErrors())
	case multiErrorGetter:
		w.writeErrorsList(level, v.WrappedErrors())
	default:
		// If the error contains more lines, align all lines.
		scanner := bufio.NewScanner(strings.NewReader(v.Error()))
		scanner.Scan()
		w.write(scanner.Text())
		for scanner.Scan() {
			w.writeNewLine()
			w.writeIndent(level)
			w.write(scanner.Text())
		}
	}
}

func (w *writer) writeNestedError(level int, main error, errs []error) {
	// Convert main error to string
	mainWriter := w.clone()
	mainWriter.writeError(level, main)
	mainStr := mainWriter.String()

	// Check if there is a sub error
	errsCount := len(errs)
	if errsCount == 0 {
		w.write(mainStr)
		return
	}

	// Convert main error to prefix
	mainStr = formatPrefix(mainStr)

	// Convert sub errors to string
	subErrsWriter := w.clone()
	subErrsWriter.writeErrorsList(level, errs)
	subErrsStr := subErrsWriter.String()

	// If there is more than one error or the message is long,
	// then break line and create bullet list
	w.write(mainStr)
	if errsCount > 1 || len(mainStr)+len(subErrsStr) > 60 || strings.Contains(subErrsStr, "\n") {
		w.writeNewLine()
		if errsCount == 1 {
			w.writeIndent(level)
			w.write(Bullet)
			w.writeError(level+1, errs[0])
		} else {
			w.writeErrorsList(level, errs)
		}
	} else {
		w.write(" ")
		w.writeErrorsList(level, errs)
	}
}

func (w *writer) writeErrorsList(level int, errs []error) {
	indent := len(errs) > 1
	last := len(errs) - 1
	for i, err := range errs {
		if indent {
			w.writeIndent(level)
			w.write(Bullet)
		}
		w.writeError(level+1, err)
		if i != last {
			w.writeNewLine()
		}
	}
}

func (w *writer) writeIndent(level int) {
	w.write(strings.Repeat(Indent, level))
}

func (w *writer) writeNewLine() {
	w.write("\n")
}

func (w *writer) write(s string) {
	_, _ = w.out.WriteString(s)
}

func (w *writer) String() string {
	return w.out.String()
}

func (w *writer) clone() *writer {
	return &writer{}
}

func formatPrefix(prefix string) string {
	return strings.TrimRight(prefix, ".,:") + ":"
}
