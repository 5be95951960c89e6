// pkg/opscli/wrap.go

package opscli

import (
	"context"

	"github.com/Felipebmaitan/HomeLab/pkg/opserr"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Wrap adapts a RuntimeContext-style handler to a cobra RunE, adding panic
// recovery and end-of-command logging. Expected user errors pass through
// untouched so they surface as a plain message; everything else gains a stack.
func Wrap(fn func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := opsio.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		err = fn(rc, cmd, args)
		if err != nil && !opserr.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
