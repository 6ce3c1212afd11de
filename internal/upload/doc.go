// Package upload streams one slide file plus its form payload to the
// upload endpoint as a multipart/form-data POST.
//
// Only the form fields and part headers are rendered up front; the file
// content is streamed between them, so multi-gigabyte slides are never
// buffered in memory and the request still carries an exact Content-Length. Every chunk read from the file is
// reported through a [ProgressFunc]. The outcome of the request is returned
// as a [Result]; a non-2xx status is an error wrapping [ErrUnexpectedStatus].
package upload
