//go:build !linux && !tinygo

package hal

import (
	"context"
	"fmt"
)

func RunSBC(_ context.Context, _ func(HAL) func() error, _ SBCConfig) error {
	return fmt.Errorf("sbc mode requires linux: %w", ErrNotImplemented)
}
