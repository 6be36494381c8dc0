package aztbrew

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	tableNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]{2,62}$`)
	filterOperators  = []string{"eq", "ne", "gt", "ge", "lt", "le", "and", "or"}
)

func ValidateConnectionString(connectionString string) bool {
	if strings.TrimSpace(connectionString) == "" {
		return false
	}

	return strings.Contains(connectionString, "AccountName=") && strings.Contains(connectionString, "AccountKey=")
}

// ValidateTableName follows the Azure table naming rules: alphanumeric,
// starting with a letter, 3 to 63 characters.
func ValidateTableName(tableName string) bool {
	return tableNamePattern.MatchString(tableName)
}

func ValidatePartitionKey(partitionKey string) bool {
	return strings.TrimSpace(partitionKey) != ""
}

func ValidateRowKey(rowKey string) bool {
	return strings.TrimSpace(rowKey) != ""
}

// ValidateCustomFilter only checks that the expression uses at least one
// comparison or logical operator. Syntax errors are reported by the service.
func ValidateCustomFilter(filter string) bool {
	if strings.TrimSpace(filter) == "" {
		return false
	}

	for _, op := range filterOperators {
		if strings.Contains(filter, " "+op+" ") {
			return true
		}
	}

	return false
}

func ValidateNumberRange(input string, min, max int) bool {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return false
	}

	return value >= min && value <= max
}

func ValidateConfirmation(input string) bool {
	return strings.EqualFold(input, "yes") || strings.EqualFold(input, "no")
}
