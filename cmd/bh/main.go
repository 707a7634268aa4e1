// bh — инструмент командной строки BountyHub.
//
// Использование:
//
//	bh [--format text|json|yaml] [--metrics-file PATH] <command> <subcommand> [flags]
//
// Команды:
//
//	job         Удаление jobs и работа с артефактами
//	scan        Запуск scan'ов
//	blob        Загрузка и скачивание файлов blob storage
//	runner      Регистрация runner'ов
//	bhlast      Создание bhlast доменов
//	md          Markdown документация
//	completion  Автодополнение для shell
//
// Команды, которые ходят в API, требуют BOUNTYHUB_TOKEN.
// BOUNTYHUB_URL по умолчанию https://bountyhub.org.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bountyhub/bh/internal/cli"
	"github.com/bountyhub/bh/internal/client"
	"github.com/bountyhub/bh/internal/config"
	"github.com/bountyhub/bh/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	rt, err := config.LoadRuntime(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := telemetry.SetupLogger(rt.LogLevel, rt.LogFormat)
	ctx = telemetry.WithLogger(ctx, logger)

	shutdown, err := telemetry.SetupTracing(ctx, rt.OTLPEndpoint, version)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown tracing", "error", err)
		}
	}()

	var format string
	metricsFile := rt.MetricsFile
	metrics := telemetry.NewTransportMetrics()

	rootCmd := &cobra.Command{
		Use:           "bh",
		Short:         "BountyHub CLI",
		Long:          "Commands rely on BOUNTYHUB_TOKEN and BOUNTYHUB_URL environment variables.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := cli.ParseFormat(format)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&format, "format", string(cli.FormatText), "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", metricsFile, "Write transport metrics to a node-exporter textfile [env: BOUNTYHUB_METRICS_FILE]")

	clientFn := func() (client.Client, error) {
		api, err := config.LoadAPI(ctx)
		if err != nil {
			return nil, err
		}
		return client.NewHTTPClient(client.ClientConfig{
			BaseURL: api.URL,
			Token:   api.Token,
			Version: version,
			Logger:  logger,
			Metrics: metrics,
			Tracing: rt.OTLPEndpoint != "",
		})
	}
	outputFn := func() *cli.Output {
		f, _ := cli.ParseFormat(format)
		return cli.NewOutput(f, os.Stdout, os.Stderr)
	}

	rootCmd.AddCommand(
		cli.NewJobCmd(clientFn, outputFn),
		cli.NewScanCmd(clientFn, outputFn),
		cli.NewBlobCmd(clientFn, outputFn),
		cli.NewRunnerCmd(clientFn, outputFn),
		cli.NewBhlastCmd(clientFn, outputFn),
		cli.NewMdCmd(),
	)

	err = rootCmd.ExecuteContext(ctx)

	if metricsFile != "" {
		if werr := metrics.WriteTextfile(metricsFile); werr != nil {
			logger.Warn("write metrics textfile", slog.String("path", metricsFile), slog.Any("error", werr))
		}
	}

	return err
}
