package aztbrew

import (
	"context"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const azuriteConnectionString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;" +
	"AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;" +
	"TableEndpoint=http://127.0.0.1:10002/devstoreaccount1;"

type staticCredential struct{}

func (staticCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "token"}, nil
}

func TestOpenTable(t *testing.T) {
	credentialCalls := 0
	defer func(orig func() (azcore.TokenCredential, error)) { newTokenCredential = orig }(newTokenCredential)
	newTokenCredential = func() (azcore.TokenCredential, error) {
		credentialCalls += 1
		return staticCredential{}, nil
	}

	var tests = []struct {
		name         string
		opt          *DeleteOption
		wantErr      error
		wantEndpoint string
	}{
		{
			name: "azurite connection string",
			opt:  &DeleteOption{ConnectionString: azuriteConnectionString, TableName: "Orders"},
		},
		{
			name: "account connection string",
			opt:  &DeleteOption{ConnectionString: "DefaultEndpointsProtocol=https;AccountName=foo;AccountKey=a2V5", TableName: "Orders"},
		},
		{
			name:    "not a connection string",
			opt:     &DeleteOption{ConnectionString: "not-a-connection-string", TableName: "Orders"},
			wantErr: ErrAuthenticationFailed,
		},
		{
			name:    "missing account key",
			opt:     &DeleteOption{ConnectionString: "AccountName=foo", TableName: "Orders"},
			wantErr: ErrAuthenticationFailed,
		},
		{
			name:         "service url",
			opt:          &DeleteOption{ServiceURL: "foo.table.core.windows.net/", TableName: "Orders"},
			wantEndpoint: "https://foo.table.core.windows.net/Orders",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := OpenTable(test.opt)

			if test.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, test.wantErr), "got %v", err)

				var storageErr *StorageError
				require.True(t, errors.As(err, &storageErr))
				assert.Equal(t, "parse connection string", storageErr.Op)
				return
			}

			require.NoError(t, err)
			table, ok := got.(*AzureTable)
			require.True(t, ok)
			assert.Equal(t, "Orders", table.Name())
			assert.NotNil(t, table.client)
			assert.Equal(t, test.wantEndpoint, table.endpoint)
		})
	}

	assert.Equal(t, 1, credentialCalls)
}

func TestOpenTable_CredentialError(t *testing.T) {
	defer func(orig func() (azcore.TokenCredential, error)) { newTokenCredential = orig }(newTokenCredential)
	newTokenCredential = func() (azcore.TokenCredential, error) {
		return nil, errors.New("no credential sources available")
	}

	_, err := OpenTable(&DeleteOption{ServiceURL: "https://foo.table.core.windows.net", TableName: "Orders"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthenticationFailed))
	assert.Contains(t, err.Error(), "load azure credential")
}
