package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/diillson/campaign-attribution-go/internal/domain/repository"
	"github.com/diillson/campaign-attribution-go/internal/shared/types"
	"github.com/diillson/campaign-attribution-go/pkg/version"
)

// Valores padrão das flags.
const (
	DefaultReportName = "analytics_result"
	DefaultReportType = "xlsx"
	DefaultTieBreak   = "input_order"
	DefaultDelimiter  = ","
)

// ReportRunner executes one report run with fully resolved arguments.
type ReportRunner interface {
	RunReport(ctx context.Context, args *types.CLIArgs) error
}

// RunnerFactory builds a ReportRunner for the resolved arguments, so adapters
// that depend on them (AWS profile, region, delimiter) are created per run.
type RunnerFactory func(args *types.CLIArgs) ReportRunner

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	newRunner  RunnerFactory
	validate   *validator.Validate
	showBanner bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(configRepo repository.ConfigRepository, newRunner RunnerFactory) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		newRunner:  newRunner,
		validate:   validator.New(),
		showBanner: true,
	}

	rootCmd := &cobra.Command{
		Use:           "campaign-report",
		Short:         "Attribute purchases to ad campaigns and report CPL and ROAS per month",
		Version:       version.FormatVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "campaign-report version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.String("ads", "", "Ads table (local path or s3://bucket/key)")
	flags.String("leads", "", "Leads table (local path or s3://bucket/key)")
	flags.String("purchases", "", "Purchases table (local path or s3://bucket/key)")
	flags.StringP("report-name", "n", DefaultReportName, "Base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{DefaultReportType}, "Report types: xlsx, csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.Bool("timestamped", false, "Append the run time to the report file name")
	flags.String("tie-break", DefaultTieBreak, "Lead kept when several share the minimum latency: input_order or smallest_lead_id")
	flags.String("delimiter", DefaultDelimiter, `Field delimiter of the input tables ("tab" or "\t" for tab)`)
	flags.String("upload", "", "Upload the exported reports to this s3://bucket/prefix")
	flags.StringP("profile", "p", "", "AWS profile used for s3:// inputs and uploads")
	flags.StringP("region", "r", "", "AWS region used for s3:// inputs and uploads")
	flags.Bool("no-banner", false, "Do not print the welcome banner")
	flags.BoolP("quiet", "q", false, "Only print errors")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// parseArgs resolve os argumentos: flags explícitas vencem o arquivo de
// configuração, que vence os valores padrão.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	cfg := &types.Config{}
	if configFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	str := func(name, fromConfig string) string {
		v, _ := flags.GetString(name)
		if !flags.Changed(name) && fromConfig != "" {
			return fromConfig
		}
		return v
	}
	boolean := func(name string, fromConfig bool) bool {
		v, _ := flags.GetBool(name)
		if !flags.Changed(name) && fromConfig {
			return true
		}
		return v
	}

	reportType, _ := flags.GetStringSlice("report-type")
	if !flags.Changed("report-type") && len(cfg.ReportType) > 0 {
		reportType = cfg.ReportType
	}
	for i := range reportType {
		reportType[i] = strings.ToLower(strings.TrimSpace(reportType[i]))
	}

	noBanner, _ := flags.GetBool("no-banner")
	quiet, _ := flags.GetBool("quiet")

	dir, err := resolveDir(str("dir", cfg.Dir))
	if err != nil {
		return nil, err
	}

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		Ads:         str("ads", cfg.Ads),
		Leads:       str("leads", cfg.Leads),
		Purchases:   str("purchases", cfg.Purchases),
		ReportName:  str("report-name", cfg.ReportName),
		ReportType:  reportType,
		Dir:         dir,
		Timestamped: boolean("timestamped", cfg.Timestamped),
		TieBreak:    str("tie-break", cfg.TieBreak),
		Delimiter:   normalizeDelimiter(str("delimiter", cfg.Delimiter)),
		Upload:      str("upload", cfg.Upload),
		Profile:     str("profile", cfg.Profile),
		Region:      str("region", cfg.Region),
		NoBanner:    noBanner,
		Quiet:       quiet,
	}

	if err := app.validateArgs(args); err != nil {
		return nil, err
	}
	return args, nil
}

// resolveDir usa o diretório atual quando dir está vazio.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

func normalizeDelimiter(d string) string {
	switch d {
	case "tab", `\t`:
		return "\t"
	}
	return d
}

func (app *CLIApp) validateArgs(args *types.CLIArgs) error {
	err := app.validate.Struct(args)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	flag := flagName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("--%s is required", flag)
	case "min":
		return fmt.Sprintf("--%s needs at least %s value", flag, fe.Param())
	case "oneof":
		return fmt.Sprintf("--%s %q must be one of: %s", flag, fe.Value(), fe.Param())
	case "startswith":
		return fmt.Sprintf("--%s %q must start with %s", flag, fe.Value(), fe.Param())
	case "len":
		return fmt.Sprintf("--%s %q must be a single character", flag, fe.Value())
	default:
		return fmt.Sprintf("--%s failed %s validation", flag, fe.Tag())
	}
}

// flagName converte o nome do campo (ReportType) para o nome da flag (report-type).
// Índices de slice ("ReportType[1]") são descartados.
func flagName(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	if app.showBanner && !cliArgs.NoBanner && !cliArgs.Quiet {
		displayWelcomeBanner()
		go version.CheckLatestVersion(version.Version)
	}

	return app.newRunner(cliArgs).RunReport(cmd.Context(), cliArgs)
}
