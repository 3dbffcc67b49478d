package archive

import "errors"

var (
	ErrExpectedDirectory = errors.New("expected directory but got file")
	ErrArchiveInsideRoot = errors.New("archive path is inside the directory being archived")
)
