package intake

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSource means none of source URL, demo URL or file was given.
	ErrNoSource = errors.New("provide a source repository URL, a demo URL or a file")
	// ErrIncompleteDraft means the draft lacks a title or cover image and was not saved.
	ErrIncompleteDraft = errors.New("draft needs a title and a cover image before it can be archived")
	// ErrConfigurationRequired means the connector needs a token the user has not stored.
	ErrConfigurationRequired = errors.New("connector requires an access token in profile settings")
	ErrUnknownConnector      = errors.New("unknown connector")
	ErrMissingValue          = errors.New("connector value is required")
	ErrInvalidValue          = errors.New("connector value is not valid")
	// ErrSynthesisIncomplete means the model omitted a required field.
	ErrSynthesisIncomplete = errors.New("model response is missing title, description, category or image prompt")
	ErrNoItems             = errors.New("no projects found at this URL")
)

// Pipeline step names carried by StepError.
const (
	StepUploadArchive = "upload_archive"
	StepUploadFile    = "upload_file"
	StepSynthesize    = "synthesize"
	StepDescribeImage = "describe_image"
	StepGenerateImage = "generate_image"
	StepUploadImage   = "upload_image"
	StepReadToken     = "read_token"
	StepPlaceholder   = "placeholder"
	StepSave          = "save"
)

// StepError reports which remote step of a pipeline failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("intake %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(step string, err error) error {
	return &StepError{Step: step, Err: err}
}
