package dashboard

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/foreman/internal/chart"
	"github.com/zulandar/foreman/internal/db"
	"gorm.io/gorm"
)

// recentRuns is the number of runs listed on the index page.
const recentRuns = 20

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, gormDB *gorm.DB, chartDir string) {
	router.GET("/", handleIndex(gormDB))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/runs", handleRunList(gormDB))
	api.GET("/runs/:id", handleRunDetail(gormDB))

	router.GET("/charts/:name", handleChart(chartDir))
}

func handleIndex(gormDB *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		runs, err := db.ListRuns(gormDB.WithContext(c.Request.Context()), recentRuns)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.HTML(http.StatusOK, "index.html", gin.H{
			"runs":          runs,
			"costChart":     chart.CostFile,
			"timelineChart": chart.TimelineFile,
		})
	}
}

func handleRunList(gormDB *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := recentRuns
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
				return
			}
			limit = n
		}
		runs, err := db.ListRuns(gormDB.WithContext(c.Request.Context()), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, runs)
	}
}

func handleRunDetail(gormDB *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
			return
		}
		run, err := db.GetRun(gormDB.WithContext(c.Request.Context()), uint(id))
		if errors.Is(err, db.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, run)
	}
}

// handleChart serves only the known chart files from chartDir.
func handleChart(chartDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if name != chart.CostFile && name != chart.TimelineFile {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(filepath.Join(chartDir, name))
	}
}
