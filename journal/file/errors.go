package file

import "errors"

var ErrInvalidFile = errors.New("invalid journal file")
