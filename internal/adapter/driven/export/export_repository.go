package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/diillson/campaign-attribution-go/internal/domain/entity"
	"github.com/diillson/campaign-attribution-go/internal/domain/repository"
)

// SheetName is the worksheet holding the report in xlsx exports.
const SheetName = "analytics"

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToXLSX writes the report as a single-sheet workbook, header first, no
// index column. Undefined metrics are left as empty cells.
func (r *ExportRepositoryImpl) ExportToXLSX(rows []entity.CampaignReportRow, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return "", fmt.Errorf("error naming sheet: %w", err)
	}

	header := make([]interface{}, len(entity.ReportColumns))
	for i, c := range entity.ReportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("error writing XLSX header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("error creating header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(entity.ReportColumns))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return "", fmt.Errorf("error styling XLSX header: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := xlsxValues(row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return "", fmt.Errorf("error writing XLSX row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "D", 16); err != nil {
		return "", fmt.Errorf("error sizing XLSX columns: %w", err)
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToCSV(rows []entity.CampaignReportRow, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(entity.ReportColumns); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(textValues(row)); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(rows []entity.CampaignReportRow, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	if rows == nil {
		rows = []entity.CampaignReportRow{}
	}
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(rows []entity.CampaignReportRow, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	stripeColor := [3]int{245, 245, 245}

	widths := []float64{22, 26, 20, 50, 22, 30, 25, 30, 24, 24}

	drawHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		for i, col := range entity.ReportColumns {
			pdf.CellFormat(widths[i], 8, col, "", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(100, 10, "Campaign attribution report", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 10, "Campaign performance by month")
	pdf.Ln(12)
	drawHeader()

	pdf.SetFont("Arial", "", 9)
	for n, row := range rows {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Arial", "", 9)
		}
		fill := n%2 == 1
		pdf.SetFillColor(stripeColor[0], stripeColor[1], stripeColor[2])
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for i, v := range textValues(row) {
			align := "R"
			if i < 4 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, tr(v), "B", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename monta o caminho do relatório e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext)), nil
}

// xlsxValues keeps numbers numeric so spreadsheets can compute on them.
func xlsxValues(row entity.CampaignReportRow) []interface{} {
	values := []interface{}{
		row.YearMonth, row.Source, row.Medium, row.Campaign,
		row.Clicks, row.CampaignCost, nil, nil, nil, nil,
	}
	if row.LeadsCount != nil {
		values[6] = *row.LeadsCount
	}
	if row.Revenue != nil {
		values[7] = *row.Revenue
	}
	if row.CPL != nil {
		values[8] = *row.CPL
	}
	if row.ROAS != nil {
		values[9] = *row.ROAS
	}
	return values
}

func textValues(row entity.CampaignReportRow) []string {
	return []string{
		row.YearMonth,
		row.Source,
		row.Medium,
		row.Campaign,
		strconv.FormatInt(row.Clicks, 10),
		formatFloat(&row.CampaignCost),
		formatInt(row.LeadsCount),
		formatFloat(row.Revenue),
		formatFloat(row.CPL),
		formatFloat(row.ROAS),
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
