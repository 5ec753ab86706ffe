package service

import "net/http"

type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return e.message
}

func (e *statusError) StatusCode() int {
	return e.code
}

var (
	ErrInvalidFileType   = &statusError{code: http.StatusBadRequest, message: "Please upload a valid PDF file."}
	ErrMissingFile       = &statusError{code: http.StatusBadRequest, message: "A PDF file is required"}
	ErrPaperNotFound     = &statusError{code: http.StatusNotFound, message: "No paper uploaded"}
	ErrWorkspaceNotSaved = &statusError{code: http.StatusNotFound, message: "No saved workspace"}
)
