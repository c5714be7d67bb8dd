package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/campaign-attribution-go/internal/application/pipeline"
	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
	"github.com/diillson/campaign-attribution-go/internal/domain/repository"
	"github.com/diillson/campaign-attribution-go/internal/shared/types"
)

// ReportUseCase loads the input tables, runs the attribution pipeline and
// publishes the campaign report.
type ReportUseCase struct {
	tableRepo  repository.TableRepository
	exportRepo repository.ExportRepository
	store      repository.ObjectStore
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	tableRepo repository.TableRepository,
	exportRepo repository.ExportRepository,
	store repository.ObjectStore,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		tableRepo:  tableRepo,
		exportRepo: exportRepo,
		store:      store,
		console:    console,
		now:        time.Now,
	}
}

// RunReport executa o relatório completo. Nada é exportado se qualquer etapa falhar.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if len(args.ReportType) == 0 {
		return types.ErrNoReportTypes
	}

	tieBreak, err := pipeline.ParseTieBreak(args.TieBreak)
	if err != nil {
		return err
	}

	input, err := uc.LoadInput(ctx, args)
	if err != nil {
		return err
	}

	status := uc.console.Status("Attributing purchases to campaigns...")
	result, err := pipeline.Run(input, pipeline.Options{TieBreak: tieBreak})
	status.Stop()
	if err != nil {
		return err
	}

	uc.displaySummary(result)
	uc.displayReport(result.Report)

	paths, err := uc.ExportReport(result.Report, args)
	if err != nil {
		return err
	}

	if args.Upload != "" {
		return uc.UploadReports(ctx, paths, args.Upload)
	}
	return nil
}

// LoadInput reads the ads, leads and purchases tables.
func (uc *ReportUseCase) LoadInput(ctx context.Context, args *types.CLIArgs) (pipeline.Input, error) {
	var input pipeline.Input
	var err error

	if input.Ads, err = uc.loadTable(ctx, "ads", args.Ads); err != nil {
		return pipeline.Input{}, err
	}
	if input.Leads, err = uc.loadTable(ctx, "leads", args.Leads); err != nil {
		return pipeline.Input{}, err
	}
	if input.Purchases, err = uc.loadTable(ctx, "purchases", args.Purchases); err != nil {
		return pipeline.Input{}, err
	}
	return input, nil
}

func (uc *ReportUseCase) loadTable(ctx context.Context, name, source string) (*entity.RawTable, error) {
	status := uc.console.Status(fmt.Sprintf("Loading %s from %s...", name, source))
	table, err := uc.tableRepo.Load(ctx, name, source)
	status.Stop()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	uc.console.LogInfo("Loaded %d %s rows", len(table.Rows), name)
	return table, nil
}

// ExportReport grava o relatório em cada formato pedido e retorna os caminhos.
func (uc *ReportUseCase) ExportReport(rows []entity.CampaignReportRow, args *types.CLIArgs) ([]string, error) {
	name := args.ReportName
	if args.Timestamped {
		name = fmt.Sprintf("%s_%s", name, uc.now().Format("20060102_1504"))
	}

	var paths []string
	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "xlsx":
			path, err = uc.exportRepo.ExportToXLSX(rows, name, args.Dir)
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(rows, name, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(rows, name, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(rows, name, args.Dir)
		default:
			err = fmt.Errorf("unsupported report type %q", reportType)
		}
		if err != nil {
			return nil, fmt.Errorf("exporting %s report: %w", reportType, err)
		}
		uc.console.LogSuccess("Saved %s report to %s", strings.ToUpper(reportType), path)
		paths = append(paths, path)
	}
	return paths, nil
}

// UploadReports envia os arquivos exportados para o prefixo s3:// informado.
func (uc *ReportUseCase) UploadReports(ctx context.Context, paths []string, prefix string) error {
	account, err := uc.store.AccountID(ctx)
	if err != nil {
		return fmt.Errorf("resolving caller identity: %w", err)
	}
	uc.console.LogInfo("Uploading reports as account %s", account)

	for _, path := range paths {
		uri := joinURI(prefix, filepath.Base(path))
		if err := uc.store.Upload(ctx, path, uri); err != nil {
			return fmt.Errorf("uploading %s: %w", path, err)
		}
		uc.console.LogSuccess("Uploaded %s", uri)
	}
	return nil
}

func (uc *ReportUseCase) displaySummary(result *pipeline.Result) {
	uc.console.LogInfo("Ads: %d rows, %d campaign-months", len(result.Ads), len(result.Aggregates))
	uc.console.LogInfo("Leads: %d rows, %d from paid traffic", len(result.Leads), len(result.FilteredLeads))
	uc.console.LogInfo("Purchases: %d rows", len(result.Purchases))
	uc.console.LogInfo("Attribution: %d ad-lead pairs, %d candidates, %d within window, %d attributed",
		result.Stats.AdLeadRows, result.Stats.CandidateRows, result.Stats.WindowRows, result.Stats.AttributedRows)
}

func (uc *ReportUseCase) displayReport(rows []entity.CampaignReportRow) {
	if len(rows) == 0 {
		uc.console.LogWarning("No campaign spend found, the report is empty")
		return
	}

	table := uc.console.CreateTable()
	for _, col := range entity.ReportColumns {
		table.AddColumn(col)
	}
	for _, row := range rows {
		table.AddRow(
			row.YearMonth,
			row.Source,
			row.Medium,
			row.Campaign,
			strconv.FormatInt(row.Clicks, 10),
			fmt.Sprintf("%.2f", row.CampaignCost),
			formatCount(row.LeadsCount),
			formatMetric(row.Revenue),
			formatMetric(row.CPL),
			formatMetric(row.ROAS),
		)
	}
	uc.console.Println(table.Render())
}

func formatCount(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatMetric(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func joinURI(prefix, name string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + name
}
