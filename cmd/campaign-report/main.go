package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/diillson/campaign-attribution-go/internal/adapter/driven/aws"
	"github.com/diillson/campaign-attribution-go/internal/adapter/driven/config"
	"github.com/diillson/campaign-attribution-go/internal/adapter/driven/export"
	"github.com/diillson/campaign-attribution-go/internal/adapter/driven/table"
	"github.com/diillson/campaign-attribution-go/internal/adapter/driving/cli"
	"github.com/diillson/campaign-attribution-go/internal/application/usecase"
	"github.com/diillson/campaign-attribution-go/internal/shared/types"
	"github.com/diillson/campaign-attribution-go/pkg/console"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Os adaptadores dependem do perfil, região e delimitador resolvidos
	newRunner := func(args *types.CLIArgs) cli.ReportRunner {
		consoleImpl := console.NewConsole()
		if args.Quiet {
			consoleImpl = console.NewQuietConsole()
		}

		store := aws.NewS3Repository(args.Profile, args.Region)
		tableRepo := table.NewCSVTableRepository(store, []rune(args.Delimiter)[0])

		return usecase.NewReportUseCase(
			tableRepo,
			export.NewExportRepository(),
			store,
			consoleImpl,
		)
	}

	app := cli.NewCLIApp(config.NewConfigRepository(), newRunner)

	if err := app.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
