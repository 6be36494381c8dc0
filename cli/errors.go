package cli

import "github.com/pkg/errors"

var (
	ErrorOptInputError = errors.New("option input error")
	ErrorDeleteRecords = errors.New("delete records error")
)
