package aztbrew

import (
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/pkg/errors"
)

var (
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrQueryFailed          = errors.New("query failed")
)

// StorageError is returned when the table cannot be reached, created or
// queried. Kind is one of the Err* sentinels above.
type StorageError struct {
	Kind error
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return e.Kind == target
}

// classifyError maps service responses onto an error kind. Errors that carry
// no service response are reported as fallback.
func classifyError(err error, op string, fallback error) error {
	if err == nil {
		return nil
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	kind := fallback

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch {
		case respErr.StatusCode == http.StatusUnauthorized, respErr.StatusCode == http.StatusForbidden:
			kind = ErrAuthenticationFailed
		case respErr.StatusCode == http.StatusBadRequest,
			respErr.ErrorCode == "InvalidInput",
			respErr.ErrorCode == "OutOfRangeInput":
			kind = ErrQueryFailed
		default:
			kind = ErrStorageUnavailable
		}
	}

	return &StorageError{Kind: kind, Op: op, Err: err}
}
