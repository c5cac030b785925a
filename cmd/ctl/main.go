package main

import (
	"context"
	"os"

	"github.com/hackwave-community/platform-api/cmd/ctl/cmds"
	"github.com/hackwave-community/platform-api/internal/logger"
)

func main() {
	logger.InitSlog()

	ctx := context.Background()

	if err := cmds.Execute(ctx); err != nil {
		logger.Logger.Error("error executing subcommands", "error", err)
		os.Exit(1)
	}
}
