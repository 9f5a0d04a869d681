package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the visualization API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>vizreport Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the visualization and report endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "vizreport", "version": "v1.0.0" },
  "components": {
    "parameters": {
      "firm": { "name": "firm", "in": "header", "required": false, "schema": {"type":"string"} },
      "id": { "name": "id", "in": "path", "required": true, "schema": {"type":"string"} }
    },
    "schemas": {
      "Payload": {"type":"object","required":["description"],"properties":{"name":{"type":"string"},"description":{"type":"string","maxLength":180}}},
      "Visualization": {"type":"object","properties":{"id":{"type":"string"},"name":{"type":"string"},"description":{"type":"string"},"firm":{"type":"string"}}},
      "Summary": {"type":"object","properties":{"id":{"type":"string"},"name":{"type":"string"},"description":{"type":"string"}}},
      "Message": {"type":"object","properties":{"message":{"type":"string"}}}
    }
  },
  "paths": {
    "/visualizations": {
      "get": { "summary": "List visualizations", "parameters": [{"$ref":"#/components/parameters/firm"}], "responses": { "200": { "description": "summaries", "content": {"application/json": {"schema": {"type":"array","items":{"$ref":"#/components/schemas/Summary"}}}} }, "503": { "description": "storage failure" } } },
      "post": { "summary": "Create visualization", "parameters": [{"$ref":"#/components/parameters/firm"}], "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Payload"} } } }, "responses": { "200": { "description": "created record", "content": {"application/json": {"schema": {"$ref":"#/components/schemas/Visualization"}}} }, "400": { "description": "validation error" } } },
      "delete": { "summary": "Delete all visualizations", "responses": { "200": { "description": "deleted" } } }
    },
    "/visualizations/{id}": {
      "get": { "summary": "Get visualization", "parameters": [{"$ref":"#/components/parameters/id"}], "responses": { "200": { "description": "record" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace visualization", "parameters": [{"$ref":"#/components/parameters/id"}], "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Payload"} } } }, "responses": { "200": { "description": "updated" }, "400": { "description": "validation error" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete visualization", "parameters": [{"$ref":"#/components/parameters/id"}], "responses": { "200": { "description": "deleted (idempotent)" } } }
    },
    "/reports/visualizations": {
      "get": { "summary": "Render visualization summary as PDF", "parameters": [{"$ref":"#/components/parameters/firm"}], "responses": { "200": { "description": "PDF", "content": {"application/pdf": {}} }, "400": { "description": "Failed to create PDF report." } } }
    },
    "/reports/files/{id}": {
      "get": { "summary": "Download a stored report", "parameters": [{"$ref":"#/components/parameters/id"}], "responses": { "200": { "description": "PDF" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
