package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shuntaka9576/aztbrew"
)

const HEADER = "Azure Table Storage Cleaner"

type Console interface {
	GetValidatedInput(prompt string, validator func(string) bool) (string, error)
	DisplayInfo(message string)
	DisplayWarning(message string)
	DisplayError(message string)
	DisplaySuccess(message string)
	DisplayHeader(text string)
}

type Deleter interface {
	DeleteRecords(ctx context.Context, opt *aztbrew.DeleteOption) (*aztbrew.DeleteResult, error)
}

type Progress interface {
	Start()
	Stop()
}

// DeleteOption holds values given on the command line. Empty or invalid
// values are asked for interactively.
type DeleteOption struct {
	ConnectionString string
	ServiceURL       string
	TableName        string

	Console  Console
	Deleter  Deleter
	Progress Progress
}

func (c *DeleteOption) validate() error {
	if c.Console == nil || c.Deleter == nil {
		return errors.Wrap(ErrorOptInputError, "console and deleter are required")
	}

	if c.ConnectionString != "" && c.ServiceURL != "" {
		return errors.Wrap(ErrorOptInputError, "connection string and service url are mutually exclusive")
	}

	return nil
}

func Delete(ctx context.Context, opt *DeleteOption) error {
	err := opt.validate()
	if err != nil {
		return err
	}

	console := opt.Console
	console.DisplayHeader(HEADER)

	deleteOpt, err := collectInputs(console, opt)
	if err != nil {
		return err
	}

	confirmed, err := confirmDeletion(console, deleteOpt)
	if err != nil {
		return err
	}

	if !confirmed {
		console.DisplayInfo("Operation cancelled by user.")

		return nil
	}

	if opt.Progress != nil {
		opt.Progress.Start()
	}
	result, err := opt.Deleter.DeleteRecords(ctx, deleteOpt)
	if opt.Progress != nil {
		opt.Progress.Stop()
	}

	if err != nil {
		console.DisplayError(fmt.Sprintf("Error: %s", err))

		return errors.Wrap(ErrorDeleteRecords, err.Error())
	}

	console.DisplaySuccess(fmt.Sprintf("Successfully deleted %d records from table '%s'.",
		result.DeletedCount, deleteOpt.TableName))
	if result.FailedCount > 0 {
		console.DisplayWarning(fmt.Sprintf("%d records failed to delete.", result.FailedCount))
	}

	return nil
}

func collectInputs(console Console, opt *DeleteOption) (*aztbrew.DeleteOption, error) {
	var err error
	deleteOpt := &aztbrew.DeleteOption{
		ServiceURL: opt.ServiceURL,
	}

	if deleteOpt.ServiceURL == "" {
		deleteOpt.ConnectionString = opt.ConnectionString
		if !aztbrew.ValidateConnectionString(deleteOpt.ConnectionString) {
			deleteOpt.ConnectionString, err = console.GetValidatedInput(
				"Enter Azure Storage Connection String:", aztbrew.ValidateConnectionString)
			if err != nil {
				return nil, err
			}
		}
	}

	deleteOpt.TableName = opt.TableName
	if !aztbrew.ValidateTableName(deleteOpt.TableName) {
		if deleteOpt.TableName != "" {
			console.DisplayWarning(fmt.Sprintf("Invalid table name '%s'.", deleteOpt.TableName))
		}

		deleteOpt.TableName, err = console.GetValidatedInput("Enter Table Name:", aztbrew.ValidateTableName)
		if err != nil {
			return nil, err
		}
	}

	console.DisplayInfo("Select filter type:")
	console.DisplayInfo("1: Filter by Partition Key only")
	console.DisplayInfo("2: Filter by Partition Key and Row Key")
	console.DisplayInfo("3: Filter by custom query")

	choice, err := console.GetValidatedInput("Enter your choice (1-3):", func(input string) bool {
		return aztbrew.ValidateNumberRange(input, 1, 3)
	})
	if err != nil {
		return nil, err
	}
	mode, _ := strconv.Atoi(strings.TrimSpace(choice))

	switch aztbrew.FilterMode(mode) {
	case aztbrew.FilterModePartition:
		deleteOpt.PartitionKey, err = console.GetValidatedInput("Enter Partition Key:", aztbrew.ValidatePartitionKey)
	case aztbrew.FilterModePartitionRow:
		deleteOpt.PartitionKey, err = console.GetValidatedInput("Enter Partition Key:", aztbrew.ValidatePartitionKey)
		if err != nil {
			return nil, err
		}
		deleteOpt.RowKey, err = console.GetValidatedInput("Enter Row Key:", aztbrew.ValidateRowKey)
	case aztbrew.FilterModeCustom:
		deleteOpt.CustomFilter, err = console.GetValidatedInput("Enter custom filter expression:", aztbrew.ValidateCustomFilter)
	}
	if err != nil {
		return nil, err
	}

	return deleteOpt, nil
}

// confirmDeletion shows the deletion criteria and returns true only when the
// operator answers yes.
func confirmDeletion(console Console, opt *aztbrew.DeleteOption) (bool, error) {
	console.DisplayWarning("You are about to delete records with the following criteria:")
	console.DisplayInfo(fmt.Sprintf("Table: %s", opt.TableName))

	if opt.PartitionKey != "" {
		console.DisplayInfo(fmt.Sprintf("Partition Key: %s", opt.PartitionKey))
	}

	if opt.RowKey != "" {
		console.DisplayInfo(fmt.Sprintf("Row Key: %s", opt.RowKey))
	}

	if opt.CustomFilter != "" {
		console.DisplayInfo(fmt.Sprintf("Custom Filter: %s", opt.CustomFilter))
	}

	if aztbrew.BuildFilter(opt) == "" {
		console.DisplayWarning("Filter: (none) - ALL records in the table will be deleted")
	}

	confirmation, err := console.GetValidatedInput(
		"Are you sure you want to proceed with deletion? (yes/no):", aztbrew.ValidateConfirmation)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(confirmation, "yes"), nil
}
