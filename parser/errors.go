package parser

import "errors"

// ErrDecodeFailed is returned when a plain-text file cannot be decoded by
// any entry in the encoding cascade (utf-8, latin-1, cp1252).
var ErrDecodeFailed = errors.New("parser: decode failed")

// ErrParseFailed is returned when a structured format (JSON, XML) is
// malformed; the wrapped error carries the underlying parser's position.
var ErrParseFailed = errors.New("parser: parse failed")

// ErrExtractionFailed is returned when a parser runs to completion but
// produces no usable content.
var ErrExtractionFailed = errors.New("parser: extraction produced no content")
