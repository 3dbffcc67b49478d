package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fileorg/internal/failures"
)

// validateRequest cleans both roots and checks that they are existing
// directories. Nothing is written before it passes.
func validateRequest(req Request) (Request, error) {
	src, err := validateRoot("source", req.SourceRoot)
	if err != nil {
		return Request{}, err
	}
	dst, err := validateRoot("destination", req.DestinationRoot)
	if err != nil {
		return Request{}, err
	}
	return Request{SourceRoot: src, DestinationRoot: dst}, nil
}

func validateRoot(label, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", failures.Wrap(failures.ErrValidation, string(StepValidate), "", fmt.Sprintf("%s path is empty", label), nil)
	}
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return "", failures.Wrap(failures.ErrValidation, string(StepValidate), "stat "+label, path, err)
	}
	if !info.IsDir() {
		return "", failures.Wrap(failures.ErrValidation, string(StepValidate), label, path+" is not a directory", nil)
	}
	return path, nil
}
