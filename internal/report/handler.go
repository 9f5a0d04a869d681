package report

import (
	"errors"
	"io"
	"net/http"

	"github.com/eadsgraphic/vizreport/pkg/logger"
	"github.com/eadsgraphic/vizreport/pkg/middleware"
	"github.com/gin-gonic/gin"
)

const failedMessage = "Failed to create PDF report."

// RegisterReportRoutes mounts GET /reports/visualizations, and
// GET /reports/files/:id when svc stores reports.
func RegisterReportRoutes(r gin.IRouter, svc *Service) {
	r.GET("/reports/visualizations", func(c *gin.Context) {
		rep, err := svc.Build(c.Request.Context(), c.GetHeader(middleware.FirmHeader))
		if err != nil {
			logger.Errorf("report: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": failedMessage})
			return
		}
		if rep.Key != "" {
			c.Header("X-Report-Key", rep.Key)
		}
		if rep.URL != "" {
			c.Header("X-Report-URL", rep.URL)
		}
		c.Header("Content-Disposition", `inline; filename="visualizations.pdf"`)
		c.Data(http.StatusOK, contentType, rep.PDF)
	})

	if !svc.Stored() {
		return
	}

	r.GET("/reports/files/:id", func(c *gin.Context) {
		id := c.Param("id")
		rc, err := svc.Open(c.Request.Context(), id)
		if errors.Is(err, ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": ErrReportNotFound.Error()})
			return
		}
		if err != nil {
			logger.Errorf("report %s: %v", id, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "failure"})
			return
		}
		defer rc.Close()
		c.Header("Content-Type", contentType)
		c.Header("Content-Disposition", `inline; filename="`+id+`.pdf"`)
		c.Status(http.StatusOK)
		n, err := io.Copy(c.Writer, rc)
		if err != nil {
			logger.Warnf("report %s: stream aborted after %d bytes: %v", id, n, err)
		}
	})
}
