// pkg/docker/helpers.go

package docker

import (
	"context"
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
)

func contextWithTimeout(rc *opsio.RuntimeContext, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := rc.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
