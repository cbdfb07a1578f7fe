package services

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"stockscenario/types"
	"stockscenario/utils/helpers"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceI interface {
	BuildXLSXReport(ctx context.Context, analysis types.AnalysisResponse) ([]byte, string, error)
}

type reportService struct{}

var ReportService ReportServiceI = &reportService{}

// BuildXLSXReport renders one analysis run as a spreadsheet: a header
// block with the resolved fundamentals, then one row per scenario with
// formatted targets and implied returns. Returns the workbook bytes
// and the generated file name. When CLOUDINARY_URL is set a copy is
// uploaded as well; upload failures are logged, not fatal.
func (rs *reportService) BuildXLSXReport(ctx context.Context, analysis types.AnalysisResponse) ([]byte, string, error) {
	span := sentry.StartSpan(ctx, "[SVC] BuildXLSXReport")
	defer span.Finish()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Scenarios"
	index, err := f.NewSheet(sheet)
	if err != nil {
		sentry.CaptureException(err)
		return nil, "", fmt.Errorf("error creating report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	fd := analysis.Fundamentals
	header := [][]interface{}{
		{"Company", fd.CompanyName},
		{"Ticker", analysis.Ticker},
		{"Horizon (years)", analysis.HorizonYears},
		{"Current Price", helpers.FormatUSD(fd.Price)},
		{"P/E Ratio", fmt.Sprintf("%.2f", fd.PERatio)},
		{"Profit Margin", fmt.Sprintf("%.1f%%", fd.ProfitMarginPct)},
		{"FCF Yield", fmt.Sprintf("%.2f%%", fd.FCFYieldPct)},
		{"FCF Margin", fmt.Sprintf("%.1f%%", fd.FCFMarginPct)},
	}
	for i, row := range header {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("error writing report header: %w", err)
		}
	}

	tableStart := len(header) + 2
	columns := []interface{}{"Scenario", "EPS Target", "FCF Target", "Avg Price Target", "CAGR"}
	cell, _ := excelize.CoordinatesToCellName(1, tableStart)
	if err := f.SetSheetRow(sheet, cell, &columns); err != nil {
		return nil, "", fmt.Errorf("error writing report columns: %w", err)
	}

	for i, r := range analysis.Results {
		row := []interface{}{
			r.ScenarioName,
			helpers.FormatUSD(r.EPSTargetPrice),
			helpers.FormatUSD(r.FCFTargetPrice),
			helpers.FormatUSD(r.AvgTargetPrice),
			helpers.FormatPct(r.AvgCagr),
		}
		cell, _ := excelize.CoordinatesToCellName(1, tableStart+1+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("error writing scenario row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		sentry.CaptureException(err)
		return nil, "", fmt.Errorf("error serializing report: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.xlsx", analysis.Ticker, uuid.New().String())
	uploadReport(ctx, filename, buf.Bytes())

	return buf.Bytes(), filename, nil
}

// uploadReport pushes a copy of the workbook to Cloudinary when a URL
// is configured.
func uploadReport(ctx context.Context, filename string, content []byte) {
	if os.Getenv("CLOUDINARY_URL") == "" {
		return
	}

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		sentry.CaptureException(err)
		zap.L().Error("Error initializing Cloudinary", zap.Error(err))
		return
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(content), uploader.UploadParams{
		PublicID: filename,
		Folder:   "scenario_reports",
	})
	if err != nil {
		sentry.CaptureException(err)
		zap.L().Error("Error uploading report to Cloudinary", zap.String("filename", filename), zap.Error(err))
		return
	}

	zap.L().Info("Report uploaded to Cloudinary",
		zap.String("filename", filename),
		zap.String("url", uploadResult.SecureURL))
}
