package output

import (
	"context"

	"github.com/huntridge-labs/argus/internal/model"
)

// Output defines the interface for classification result destinations.
type Output interface {
	Write(ctx context.Context, result model.Result) error
	Close() error
}
