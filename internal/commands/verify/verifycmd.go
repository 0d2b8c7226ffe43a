package verify

import (
	"context"
	"fmt"

	"github.com/indaco/relfiles/internal/config"
	"github.com/indaco/relfiles/internal/core"
	"github.com/indaco/relfiles/internal/logging"
	"github.com/indaco/relfiles/internal/operations"
	"github.com/indaco/relfiles/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "verify" command.
func Run(fs core.FileSystem) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Validate the configuration and check that every configured file is writable",
		UsageText: "relfiles verify [--config path]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runVerifyCmd(ctx, cmd, fs)
		},
	}
}

func runVerifyCmd(ctx context.Context, cmd *cli.Command, fs core.FileSystem) error {
	logger := logging.GetLogger("verify")
	done := logging.LogOperationStart(logger, "verify")
	defer done()

	cfg, path, err := config.Load(ctx, fs, cmd.String("config"))
	if err != nil {
		return err
	}
	logger.Debug().Str("config", path).Int("files", len(cfg.Files)).Msg("Configuration loaded")

	if err := operations.Verify(ctx, fs, cfg); err != nil {
		return err
	}

	printer.FprintSuccess(cmd.Root().Writer, fmt.Sprintf("Configuration %s is valid (%d file rule(s))", path, len(cfg.Files)))
	return nil
}
