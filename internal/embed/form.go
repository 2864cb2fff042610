package embed

import (
	"errors"
	"strconv"
	"strings"
)

// FormInput holds the raw dialog fields before validation.
type FormInput struct {
	Snippet     string
	Width       string
	Height      string
	ShowToolbar bool
}

// ParseForm validates every field and converts the input to a Request.
// All failing fields are reported together.
func ParseForm(in FormInput) (Request, error) {
	var errs []error

	if strings.TrimSpace(in.Snippet) == "" {
		errs = append(errs, &FieldError{Field: "snippet", Err: ErrMissingSnippet})
	}

	width, err := parseDimension("width", in.Width, ErrMissingWidth, ErrInvalidWidth)
	if err != nil {
		errs = append(errs, err)
	}
	height, err := parseDimension("height", in.Height, ErrMissingHeight, ErrInvalidHeight)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Request{}, errors.Join(errs...)
	}
	return Request{
		Snippet:     in.Snippet,
		Width:       width,
		Height:      height,
		ShowToolbar: in.ShowToolbar,
	}, nil
}

func parseDimension(field, raw string, missing, invalid error) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, &FieldError{Field: field, Err: missing}
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, &FieldError{Field: field, Value: raw, Err: invalid}
	}
	return n, nil
}

// BuildForm validates the dialog fields and builds the embed. A snippet
// without a src attribute is reported as a snippet field error.
func BuildForm(in FormInput) (Result, error) {
	req, err := ParseForm(in)
	if err != nil {
		return Result{}, err
	}
	res, err := Build(req)
	if err != nil {
		return Result{}, &FieldError{Field: "snippet", Err: err}
	}
	return res, nil
}
