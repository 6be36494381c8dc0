package testingutil

import (
	"context"
	"encoding/json"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/pkg/errors"
	"github.com/shuntaka9576/aztbrew"
)

// AZURITE_CONNECTION_STRING_ENV points the integration tests at a running
// Azurite (or real) storage account.
const AZURITE_CONNECTION_STRING_ENV = "AZTBREW_TEST_CONNECTION_STRING"

func ConnectionString() string {
	return os.Getenv(AZURITE_CONNECTION_STRING_ENV)
}

func NewTableClient(connectionString string, tableName string) (*aztables.Client, error) {
	service, err := aztables.NewServiceClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}

	return service.NewClient(tableName), nil
}

// CreateTable creates tableName and fills it with entities.
func CreateTable(ctx context.Context, connectionString string, tableName string, entities []aztbrew.EntityRef) error {
	client, err := NewTableClient(connectionString, tableName)
	if err != nil {
		return err
	}

	err = aztbrew.NewAzureTable(tableName, client).CreateIfNotExists(ctx)
	if err != nil {
		return errors.Wrap(err, "create table")
	}

	for _, e := range entities {
		payload, err := json.Marshal(aztables.EDMEntity{
			Entity: aztables.Entity{
				PartitionKey: e.PartitionKey,
				RowKey:       e.RowKey,
			},
		})
		if err != nil {
			return err
		}

		_, err = client.AddEntity(ctx, payload, nil)
		if err != nil {
			return errors.Wrapf(err, "add entity %s/%s", e.PartitionKey, e.RowKey)
		}
	}

	return nil
}

func DeleteTable(ctx context.Context, connectionString string, tableName string) error {
	client, err := NewTableClient(connectionString, tableName)
	if err != nil {
		return err
	}

	_, err = client.Delete(ctx, nil)

	return err
}

// CountEntities returns the number of entities matching filter.
func CountEntities(ctx context.Context, connectionString string, tableName string, filter string) (int, error) {
	client, err := NewTableClient(connectionString, tableName)
	if err != nil {
		return 0, err
	}

	pager := aztbrew.NewAzureTable(tableName, client).NewEntityPager(filter)
	count := 0
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		count += len(page)
	}

	return count, nil
}
