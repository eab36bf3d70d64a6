// Package xmlerr defines the errors returned by the document mapping
// packages.
//
// Every error is an *Error carrying a Kind. Errors are local to the
// call which raised them: nothing is retried and malformed input is
// never repaired. Use Is or KindOf to test the kind of a (possibly
// wrapped) error.
package xmlerr
