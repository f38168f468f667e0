package dynamodb

import (
	"errors"
	"fmt"

	smithy "github.com/aws/smithy-go"
	"github.com/chris/card-transaction-pipeline/pkg/storage"
)

var transientErrorCodes = map[string]struct{}{
	"ProvisionedThroughputExceededException": {},
	"RequestLimitExceeded":                   {},
	"ThrottlingException":                    {},
	"InternalServerError":                    {},
	"ServiceUnavailable":                     {},
}

// wrapError annotates err with the failed operation and tags capacity and
// availability failures with storage.ErrTransient.
func wrapError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := transientErrorCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("failed to %s: %w: %w", op, storage.ErrTransient, err)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
