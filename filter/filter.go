// Package filter compiles boolean expressions used to narrow down API
// records on the client side, e.g. backups returned by backup/list.
//
// Expressions use the expr language and see the fields of one record as
// top-level variables:
//
//	size > 2000 and status == "finished"
//	backup_os startsWith "debian"
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled record filter.
type Filter struct {
	expression string
	program    *vm.Program
}

// CompilationError describes a filter expression that failed to compile.
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

// Error implements the error interface.
func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("filter %q: %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("filter %q: %s", e.Expression, e.Reason)
}

// Unwrap returns the underlying compile error, if any.
func (e *CompilationError) Unwrap() error {
	return e.Err
}

// Compile compiles an expression into an executable filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(), // Record fields vary per endpoint
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one record. Fields absent from the
// record evaluate as nil.
func (f *Filter) Match(record map[string]any) (bool, error) {
	output, err := expr.Run(f.program, record)
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.expression, err)
	}

	matched, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q: expression did not evaluate to a boolean", f.expression)
	}
	return matched, nil
}

// Apply returns the records matching the filter, preserving order.
func (f *Filter) Apply(records []map[string]any) ([]map[string]any, error) {
	var matched []map[string]any
	for _, record := range records {
		ok, err := f.Match(record)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, record)
		}
	}
	return matched, nil
}
