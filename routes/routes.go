package routes

import (
	"stockscenario/controllers"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine) {

	v1 := r.Group("/api")

	{
		v1.GET("/keepServerRunning", controllers.HealthController.IsRunning)
		v1.GET("/assumptions", controllers.AnalysisController.GetDefaultAssumptions)
		v1.POST("/analyze", controllers.AnalysisController.RunAnalysis)
		v1.POST("/exportXlsx", controllers.AnalysisController.ExportXLSX)
	}
}
