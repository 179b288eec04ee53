// Package validation evaluates submitted HTML forms against struct-tag rules
// and reports one human readable message per failing field.
//
// Forms carry raw string values exactly as received. Rules are expressed with
// github.com/go-playground/validator/v10 tags; field errors are keyed by the
// `form` tag so templates can look them up by input name.
package validation
