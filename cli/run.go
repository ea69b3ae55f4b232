package cli

import (
	"github.com/spf13/cobra"

	"github.com/sprintertech/sprinter-gateway/app"
)

var (
	runCMD = &cobra.Command{
		Use:   "run",
		Short: "Run gateway",
		Long:  "Run gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run()
		},
	}
)
