package controllers

import (
	"fmt"

	"stockscenario/services"
	"stockscenario/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalysisControllerI interface {
	GetDefaultAssumptions(ctx *gin.Context)
	RunAnalysis(ctx *gin.Context)
	ExportXLSX(ctx *gin.Context)
}

type analysisController struct {
	analysis services.AnalysisServiceI
	reports  services.ReportServiceI
}

var AnalysisController AnalysisControllerI = &analysisController{
	analysis: services.AnalysisService,
	reports:  services.ReportService,
}

// NewAnalysisController wires a controller around explicit services;
// tests use it with a stubbed fetcher.
func NewAnalysisController(analysis services.AnalysisServiceI, reports services.ReportServiceI) AnalysisControllerI {
	return &analysisController{analysis: analysis, reports: reports}
}

// GetDefaultAssumptions returns the fundamentals and seeded Bear/Base/
// Bull assumptions for a ticker, before any user edits.
func (a *analysisController) GetDefaultAssumptions(ctx *gin.Context) {
	ticker := ctx.Query("ticker")
	if ticker == "" {
		ctx.JSON(400, gin.H{"error": "Ticker is required"})
		return
	}

	response, err := a.analysis.DefaultScenarios(ctx.Request.Context(), ticker)
	if err != nil {
		zap.L().Error("Error building default scenarios", zap.String("ticker", ticker), zap.Error(err))
		ctx.JSON(502, gin.H{"error": fmt.Sprintf("Error fetching data for %s. Please check the ticker or try again later. Details: %v", ticker, err)})
		return
	}

	ctx.JSON(200, response)
}

// RunAnalysis executes one projection run. Horizon must be within
// 3-10 years (default 5); assumption overrides are merged over the
// computed defaults per scenario.
func (a *analysisController) RunAnalysis(ctx *gin.Context) {
	var req types.AnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	response, err := a.analysis.Analyze(ctx.Request.Context(), req)
	if err != nil {
		zap.L().Error("Analysis failed", zap.String("ticker", req.Ticker), zap.Error(err))
		ctx.JSON(502, gin.H{"error": fmt.Sprintf("Error fetching data for %s. Please check the ticker or try again later. Details: %v", req.Ticker, err)})
		return
	}

	ctx.JSON(200, response)
}

// ExportXLSX runs an analysis and streams the scenario table as a
// spreadsheet.
func (a *analysisController) ExportXLSX(ctx *gin.Context) {
	var req types.AnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, gin.H{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	response, err := a.analysis.Analyze(ctx.Request.Context(), req)
	if err != nil {
		zap.L().Error("Analysis failed", zap.String("ticker", req.Ticker), zap.Error(err))
		ctx.JSON(502, gin.H{"error": fmt.Sprintf("Error fetching data for %s. Please check the ticker or try again later. Details: %v", req.Ticker, err)})
		return
	}

	content, filename, err := a.reports.BuildXLSXReport(ctx.Request.Context(), response)
	if err != nil {
		zap.L().Error("Report generation failed", zap.String("ticker", req.Ticker), zap.Error(err))
		ctx.JSON(500, gin.H{"error": "Error generating report"})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
