package aztbrew

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFilter(t *testing.T) {
	var tests = []struct {
		name  string
		input DeleteOption
		want  string
	}{
		{
			name:  "partition key only",
			input: DeleteOption{PartitionKey: "Logs"},
			want:  "PartitionKey eq 'Logs'",
		},
		{
			name:  "partition and row key",
			input: DeleteOption{PartitionKey: "Orders", RowKey: "2024-01"},
			want:  "PartitionKey eq 'Orders' and RowKey eq '2024-01'",
		},
		{
			name:  "custom filter returned verbatim",
			input: DeleteOption{CustomFilter: "Timestamp lt datetime'2024-01-01T00:00:00Z'"},
			want:  "Timestamp lt datetime'2024-01-01T00:00:00Z'",
		},
		{
			name:  "custom filter wins over keys",
			input: DeleteOption{PartitionKey: "Orders", RowKey: "1", CustomFilter: "Status eq 'done'"},
			want:  "Status eq 'done'",
		},
		{
			name:  "row key without partition key is ignored",
			input: DeleteOption{RowKey: "2024-01"},
			want:  "",
		},
		{
			// matches every record in the table
			name:  "no filter",
			input: DeleteOption{TableName: "Orders"},
			want:  "",
		},
		{
			// quotes are not escaped, the service rejects this filter
			name:  "quote in partition key",
			input: DeleteOption{PartitionKey: "O'Brien"},
			want:  "PartitionKey eq 'O'Brien'",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := BuildFilter(&test.input)
			assert.Equal(t, test.want, got)
		})
	}
}
