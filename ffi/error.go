package ffi

import "github.com/cloudnexus/cloudvault/cvcodes"

// ErrorCode resolves err to the stable integer code an FFI caller expects,
// per spec.md §6. Returns cvcodes.Success for a nil error. An error that
// does not wrap one of cvcodes' sentinels maps to cvcodes.AllocationFail as
// a conservative catch-all rather than leaking a meaningless zero.
func ErrorCode(err error) cvcodes.Code {
	code, ok := cvcodes.FromError(err)
	if !ok {
		return cvcodes.AllocationFail
	}
	return code
}
