package handler

import (
	"errors"
	"net/http"

	"github.com/eadsgraphic/vizreport/internal/visualization"
	"github.com/eadsgraphic/vizreport/internal/visualization/service"
	"github.com/eadsgraphic/vizreport/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterVisualizationRoutes mounts the /visualizations CRUD endpoints.
// The firm request header tags created records and filters the list.
func RegisterVisualizationRoutes(r gin.IRouter, svc *service.Service) {
	r.GET("/visualizations", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), c.GetHeader(middleware.FirmHeader))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/visualizations/:id", func(c *gin.Context) {
		v, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	})

	r.POST("/visualizations", func(c *gin.Context) {
		p, ok := bindPayload(c)
		if !ok {
			return
		}
		v, err := svc.Create(c.Request.Context(), p, c.GetHeader(middleware.FirmHeader))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	})

	r.PUT("/visualizations/:id", func(c *gin.Context) {
		id := c.Param("id")
		p, ok := bindPayload(c)
		if !ok {
			return
		}
		if err := svc.Update(c.Request.Context(), id, p); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Successfully updated visualization " + id})
	})

	r.DELETE("/visualizations/:id", func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Successfully deleted visualization " + id})
	})

	r.DELETE("/visualizations", func(c *gin.Context) {
		if err := svc.DeleteAll(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Successfully deleted all visualizations"})
	})
}

// bindPayload decodes the JSON body; a malformed body is reported as invalid input.
func bindPayload(c *gin.Context) (visualization.Payload, bool) {
	var p visualization.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, visualization.NewValidationError("invalid request body: "+err.Error()))
		return p, false
	}
	return p, true
}

func writeError(c *gin.Context, err error) {
	var ve *visualization.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
	case errors.Is(err, visualization.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, visualization.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": visualization.ErrNotFound.Error()})
	case errors.Is(err, visualization.ErrStorage):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "failure"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "failure"})
	}
}
