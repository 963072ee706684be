package series

import "errors"

var (
	// ErrEmptyData means the fetch returned zero rows.
	ErrEmptyData = errors.New("no price data returned")

	// ErrAllMissing means every row was entirely missing.
	ErrAllMissing = errors.New("all price data missing")

	// ErrMissingPriceField means neither "Adj Close" nor "Close" is present.
	ErrMissingPriceField = errors.New(`expected "Adj Close" or "Close" column`)

	// ErrInvalidWindow means a non-positive moving-average window.
	ErrInvalidWindow = errors.New("moving-average window must be positive")
)
