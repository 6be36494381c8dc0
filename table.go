package aztbrew

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/pkg/errors"
)

const TABLE_ALREADY_EXISTS = "TableAlreadyExists"

// Table is the storage boundary used by the deleter.
type Table interface {
	Name() string
	CreateIfNotExists(ctx context.Context) error
	NewEntityPager(filter string) EntityPager
	DeleteEntity(ctx context.Context, entity EntityRef) error
}

type EntityPager interface {
	More() bool
	NextPage(ctx context.Context) ([]EntityRef, error)
}

type AzureTable struct {
	name   string
	client *aztables.Client
	// set only when opened from a service URL
	endpoint string
}

func NewAzureTable(name string, client *aztables.Client) *AzureTable {
	return &AzureTable{name: name, client: client}
}

func (t *AzureTable) Name() string {
	return t.name
}

func (t *AzureTable) CreateIfNotExists(ctx context.Context) error {
	_, err := t.client.CreateTable(ctx, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) &&
			(respErr.ErrorCode == TABLE_ALREADY_EXISTS || respErr.StatusCode == http.StatusConflict) {
			return nil
		}

		return err
	}

	return nil
}

func (t *AzureTable) NewEntityPager(filter string) EntityPager {
	opt := &aztables.ListEntitiesOptions{
		Select: to.Ptr("PartitionKey,RowKey"),
	}
	if filter != "" {
		opt.Filter = to.Ptr(filter)
	}

	return &azureEntityPager{pager: t.client.NewListEntitiesPager(opt)}
}

func (t *AzureTable) DeleteEntity(ctx context.Context, entity EntityRef) error {
	_, err := t.client.DeleteEntity(ctx, entity.PartitionKey, entity.RowKey, &aztables.DeleteEntityOptions{
		IfMatch: to.Ptr(azcore.ETagAny),
	})

	return err
}

type azureEntityPager struct {
	pager *runtime.Pager[aztables.ListEntitiesResponse]
}

func (p *azureEntityPager) More() bool {
	return p.pager.More()
}

func (p *azureEntityPager) NextPage(ctx context.Context) ([]EntityRef, error) {
	page, err := p.pager.NextPage(ctx)
	if err != nil {
		return nil, err
	}

	entities := make([]EntityRef, 0, len(page.Entities))
	for _, raw := range page.Entities {
		entity, err := decodeEntity(raw)
		if err != nil {
			return nil, &StorageError{Kind: ErrQueryFailed, Op: "decode entity", Err: err}
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

type entityKeys struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	ETag         string `json:"odata.etag"`
}

func decodeEntity(raw []byte) (EntityRef, error) {
	keys := entityKeys{}
	if err := json.Unmarshal(raw, &keys); err != nil {
		return EntityRef{}, err
	}

	return EntityRef{
		PartitionKey: keys.PartitionKey,
		RowKey:       keys.RowKey,
		ETag:         keys.ETag,
	}, nil
}
