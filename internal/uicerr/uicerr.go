// Package uicerr defines the fixed error-code taxonomy used across every
// stage of the pipeline.
package uicerr

import "fmt"

// Code is one of the fixed error codes the tool ever raises.
type Code string

const (
	ManifestNotFound           Code = "MANIFEST_NOT_FOUND"
	ManifestInvalid             Code = "MANIFEST_INVALID"
	ManifestVersionUnsupported Code = "MANIFEST_VERSION_UNSUPPORTED"
	DuplicateAgentID           Code = "DUPLICATE_AGENT_ID"
	ParserNotFound             Code = "PARSER_NOT_FOUND"
	ParserDuplicate            Code = "PARSER_DUPLICATE"
	ScanFailed                 Code = "SCAN_FAILED"
	FileReadError              Code = "FILE_READ_ERROR"
	FileWriteError             Code = "FILE_WRITE_ERROR"
	AnnotationFailed           Code = "ANNOTATION_FAILED"
	NamingFailed               Code = "NAMING_FAILED"
	Unknown                    Code = "UNKNOWN"
)

// Error is the structured error every package in this module returns for
// anything beyond a plain io/os failure. Context carries the key/value pairs
// the structured logger renders inline; Cause is the wrapped underlying
// error, if any.
type Error struct {
	Code    Code
	Message string
	Context map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error with the given code and message, optionally annotated
// with context key/value pairs (must be supplied in pairs; an odd trailing
// key is dropped).
func New(code Code, message string, kv ...any) *Error {
	return &Error{Code: code, Message: message, Context: pairs(kv)}
}

// Wrap builds an Error around an existing cause.
func Wrap(code Code, cause error, message string, kv ...any) *Error {
	return &Error{Code: code, Message: message, Context: pairs(kv), Cause: cause}
}

func pairs(kv []any) map[string]any {
	if len(kv) == 0 {
		return nil
	}
	ctx := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kv[i+1]
	}
	return ctx
}

// Is reports whether err (or any error it wraps) carries the given code.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Code == code {
				return true
			}
			err = e.Cause
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
