package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/customeros/mailbroker/config"
	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/internal/logger"
	"github.com/customeros/mailbroker/internal/safe"
	"github.com/customeros/mailbroker/internal/tracing"
	"github.com/customeros/mailbroker/internal/utils"
	"github.com/customeros/mailbroker/server"
	"github.com/customeros/mailbroker/services"
	"github.com/customeros/mailbroker/services/attachment"
)

func main() {
	app := &cli.App{
		Name:  "mailbroker",
		Usage: "mailbox API broker with attachment text extraction",
		Commands: []*cli.Command{
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: runServer,
			},
			{
				Name:      "extract",
				Usage:     "Extract plain text from a local PDF or DOCX file",
				ArgsUsage: "<file>",
				Action:    runExtract,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer(_ *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return errors.Wrap(err, "config initialization failed")
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		return errors.Wrap(err, "server initialization failed")
	}

	return srv.Run()
}

// runExtract prints the safe-call envelope for one local file. It needs no upstream configuration.
func runExtract(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	path := c.Args().First()

	appLogger := logger.NewAppLogger(&logger.Config{LogLevel: "warn", Encoder: "console"})
	appLogger.InitLogger()
	defer appLogger.Sync()

	span, ctx := tracing.StartTracerSpan(utils.WithCustomContext(context.Background(), &utils.CustomContext{AppSource: "mailbroker-cli"}), "cli.extract")
	defer span.Finish()
	tracing.TagComponentCli(span)

	extractor := attachment.NewAttachmentService(appLogger, nil, services.Extractors())
	result := safe.Call(ctx, func(ctx context.Context) (*dto.ExtractionResult, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return extractor.ExtractBytes(ctx, data)
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))

	if result.IsError {
		return cli.Exit("", 1)
	}
	return nil
}
