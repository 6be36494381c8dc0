package aztbrew

import "fmt"

// BuildFilter turns opt into an OData filter. Values are inserted as-is; a
// key containing a single quote produces a filter the service will reject.
func BuildFilter(opt *DeleteOption) string {
	if opt.CustomFilter != "" {
		return opt.CustomFilter
	}

	if opt.PartitionKey != "" && opt.RowKey != "" {
		return fmt.Sprintf("PartitionKey eq '%s' and RowKey eq '%s'", opt.PartitionKey, opt.RowKey)
	}

	if opt.PartitionKey != "" {
		return fmt.Sprintf("PartitionKey eq '%s'", opt.PartitionKey)
	}

	// matches every entity in the table
	return ""
}
