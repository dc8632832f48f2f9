package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>blogsphere-api swagger</title>
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

// Minimal OpenAPI document describing the auth and post endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "blogsphere-api", "version": "v0.1.0" },
  "paths": {
    "/auth/google": {
      "get": { "summary": "Start Google login", "responses": { "302": { "description": "redirect to the provider consent screen" } } }
    },
    "/auth/google/callback": {
      "get": { "summary": "Provider callback", "responses": { "302": { "description": "redirect to the client with ?token= on success, to the login page on failure" } } }
    },
    "/auth/me": {
      "get": { "summary": "Current user", "security": [{"bearerAuth": []}], "responses": { "200": { "description": "user JSON" }, "401": { "description": "missing/invalid/expired token or unknown user" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Logout acknowledgement", "responses": { "200": { "description": "client discards the token" } } }
    },
    "/api/posts": {
      "post": { "summary": "Create a post", "security": [{"bearerAuth": []}], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"title":{"type":"string"},"content":{"type":"string"},"shared":{"type":"boolean"}}}}}}, "responses": { "201": { "description": "created post" }, "400": { "description": "missing title/content" } } },
      "get": { "summary": "List own posts, newest first", "security": [{"bearerAuth": []}], "responses": { "200": { "description": "array of posts" } } }
    },
    "/api/posts/{id}": {
      "get": { "summary": "Get own post", "security": [{"bearerAuth": []}], "responses": { "200": { "description": "post" }, "404": { "description": "not owned or not found" } } },
      "put": { "summary": "Partially update own post", "security": [{"bearerAuth": []}], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"title":{"type":"string"},"content":{"type":"string"},"shared":{"type":"boolean"}}}}}}, "responses": { "200": { "description": "updated post" }, "400": { "description": "invalid partial update" }, "404": { "description": "not owned or not found" } } },
      "delete": { "summary": "Delete own post", "security": [{"bearerAuth": []}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not owned or not found" } } }
    },
    "/api/posts/shared/{id}": {
      "get": { "summary": "Public lookup of a shared post", "responses": { "200": { "description": "post" }, "404": { "description": "not found or not shared" } } }
    }
  },
  "components": { "securitySchemes": { "bearerAuth": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } } }
}`
