package directory

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidReference = errors.New("referenced city or price range does not exist")
)
