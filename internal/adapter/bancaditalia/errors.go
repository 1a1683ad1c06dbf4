package bancaditalia

import "errors"

// Every failed call surfaces exactly one of these, with the underlying
// cause appended via %w wrapping.
var (
	// ErrRequestFailed covers transport-level failures and non-2xx statuses.
	ErrRequestFailed = errors.New("request to Banca d'Italia API failed")

	// ErrDeserializeFailed means a result element did not match the
	// expected structural shape. No partial results survive it.
	ErrDeserializeFailed = errors.New("deserializing Banca d'Italia response failed")

	// ErrNoResult means the expected result array is missing or not an
	// array. The provider can legitimately return no rows, so this is an
	// empty-dataset signal, not malformed input.
	ErrNoResult = errors.New("Banca d'Italia API returned an empty dataset")

	// ErrAPI wraps payload-level anomalies, such as a date string the
	// provider emitted in an unexpected format.
	ErrAPI = errors.New("Banca d'Italia API error")

	// ErrConversionFailed means a rate string was neither the "N.A."
	// placeholder nor a valid decimal numeral.
	ErrConversionFailed = errors.New("converting rate string to decimal failed")
)
