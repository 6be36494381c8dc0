package aztbrew

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

type TableOpener interface {
	Open(opt *DeleteOption) (Table, error)
}

type TableOpenerFunc func(opt *DeleteOption) (Table, error)

func (f TableOpenerFunc) Open(opt *DeleteOption) (Table, error) {
	return f(opt)
}

var newTokenCredential = func() (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}

func checkAndFixURLSchema(endpoint string) string {
	if strings.HasPrefix(endpoint, "https://") || strings.HasPrefix(endpoint, "http://") {
		return endpoint
	}

	return "https://" + endpoint
}

// tableURL builds the per-table endpoint aztables.NewClient expects from a
// service endpoint such as https://account.table.core.windows.net.
func tableURL(serviceURL string, tableName string) string {
	return strings.TrimRight(checkAndFixURLSchema(serviceURL), "/") + "/" + tableName
}

// OpenTable creates an Azure table client from the connection string, or from
// DefaultAzureCredential when a service URL is set.
func OpenTable(opt *DeleteOption) (Table, error) {
	if opt.ServiceURL != "" {
		cred, err := newTokenCredential()
		if err != nil {
			return nil, &StorageError{Kind: ErrAuthenticationFailed, Op: "load azure credential", Err: err}
		}

		endpoint := tableURL(opt.ServiceURL, opt.TableName)
		client, err := aztables.NewClient(endpoint, cred, nil)
		if err != nil {
			return nil, classifyError(err, "create table client", ErrStorageUnavailable)
		}

		table := NewAzureTable(opt.TableName, client)
		table.endpoint = endpoint

		return table, nil
	}

	service, err := aztables.NewServiceClientFromConnectionString(opt.ConnectionString, nil)
	if err != nil {
		return nil, &StorageError{Kind: ErrAuthenticationFailed, Op: "parse connection string", Err: err}
	}

	return NewAzureTable(opt.TableName, service.NewClient(opt.TableName)), nil
}
