package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIURL = fmt.Errorf("missing API base URL")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Submission errors
	ErrValidation       = fmt.Errorf("please fill all the fields")
	ErrMissingCourse    = fmt.Errorf("missing course context")
	ErrSubmissionFailed = fmt.Errorf("topic submission failed")
	ErrNotFound         = fmt.Errorf("record not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrUnsupportedFile = fmt.Errorf("unsupported file type")
)
