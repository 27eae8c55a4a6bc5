package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API documentation endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
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
    <title>internforge API</title>
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

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "internforge", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Error": { "type": "object", "properties": { "error": {"type":"string"}, "stage": {"type":"string"}, "submissionId": {"type":"string"} } },
      "Feedback": { "type": "object", "properties": { "id": {"type":"string"}, "submissionId": {"type":"string"}, "strengths": {"type":"array","items":{"type":"string"}}, "weaknesses": {"type":"array","items":{"type":"string"}}, "improvements": {"type":"array","items":{"type":"string"}}, "recommendedNextSteps": {"type":"array","items":{"type":"string"}}, "createdAt": {"type":"string","format":"date-time"} } }
    }
  },
  "security": [ { "bearer": [] } ],
  "paths": {
    "/auth/register": {
      "post": { "summary": "Create a local account", "security": [],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email","password"],"properties":{"email":{"type":"string"},"password":{"type":"string"},"name":{"type":"string"},"college":{"type":"string"},"course":{"type":"string"},"semester":{"type":"string"}}}}}},
        "responses": { "201": { "description": "registered" }, "400": { "description": "missing email or password" }, "409": { "description": "user already exists" } } }
    },
    "/auth/login": {
      "post": { "summary": "Exchange credentials for an access token", "security": [],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email","password"],"properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "accessToken and expiresIn" }, "401": { "description": "invalid credentials" } } }
    },
    "/auth/logout": { "post": { "summary": "Revoke the presented access token", "responses": { "200": { "description": "logged out" } } } },
    "/users/me": {
      "get": { "summary": "Current user profile", "responses": { "200": { "description": "user" }, "404": { "description": "user not found" } } },
      "put": { "summary": "Update name, college, course, semester or onboardingCompleted", "responses": { "200": { "description": "updated" }, "400": { "description": "no valid fields" } } }
    },
    "/users/skills": {
      "get": { "summary": "List own skills", "responses": { "200": { "description": "skills" } } },
      "post": { "summary": "Add a skill", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["skill","level"],"properties":{"skill":{"type":"string"},"level":{"type":"string"}}}}}}, "responses": { "201": { "description": "skill" } } }
    },
    "/users/skills/{skillId}": { "delete": { "summary": "Remove a skill", "responses": { "200": { "description": "removed" }, "404": { "description": "skill not found" } } } },
    "/internships/generate": {
      "post": { "summary": "Generate and store an internship plan",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["domain","title","durationWeeks","daysPerWeek","skills"],"properties":{"domain":{"type":"string"},"title":{"type":"string"},"durationWeeks":{"type":"integer"},"daysPerWeek":{"type":"integer"},"skills":{"type":"array","items":{"type":"array","items":{"type":"string"},"minItems":2,"maxItems":2}}}}}}},
        "responses": { "200": { "description": "internshipId, internship, weeklyPlans, tasks" }, "400": { "description": "invalid request" }, "409": { "description": "generation already in progress" }, "502": { "description": "model call or output failed", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } } } }
    },
    "/internships": { "get": { "summary": "List own internships", "responses": { "200": { "description": "internships" } } } },
    "/internships/{id}": { "get": { "summary": "Get an internship", "responses": { "200": { "description": "internship" }, "404": { "description": "not found" } } } },
    "/internships/{id}/weeks": { "get": { "summary": "Weekly plans ordered by week number", "responses": { "200": { "description": "weekly plans" } } } },
    "/internships/{id}/tasks": { "get": { "summary": "Tasks, optionally for one week", "parameters": [ { "name": "week", "in": "query", "schema": {"type":"integer"} } ], "responses": { "200": { "description": "tasks" } } } },
    "/internships/{id}/tasks/{taskId}": { "get": { "summary": "Get one task", "responses": { "200": { "description": "task" }, "404": { "description": "not found" } } } },
    "/submissions": {
      "post": { "summary": "Submit code for a task and evaluate it",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["internshipId","taskId","taskDescription","submittedData"],"properties":{"internshipId":{"type":"string"},"taskId":{"type":"string"},"taskDescription":{"type":"string"},"submittedData":{"type":"string"}}}}}},
        "responses": { "201": { "description": "submissionId, status, feedback" }, "404": { "description": "task not found" }, "502": { "description": "evaluation failed; submission kept", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Error" } } } } } }
    },
    "/submissions/{id}": { "get": { "summary": "Get a submission", "responses": { "200": { "description": "submission" }, "404": { "description": "not found" } } } },
    "/submissions/{id}/feedback": { "get": { "summary": "Feedback of a submission", "responses": { "200": { "description": "feedback", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Feedback" } } } }, "404": { "description": "feedback not ready" } } } },
    "/submissions/{id}/evaluate": { "post": { "summary": "Retry evaluation of a submission without feedback", "responses": { "201": { "description": "feedback" }, "409": { "description": "feedback already exists" }, "502": { "description": "evaluation failed" } } } },
    "/submissions/tasks/{taskId}/submissions": { "get": { "summary": "Own submissions for a task", "responses": { "200": { "description": "submissions" } } } },
    "/health": { "get": { "summary": "Liveness check", "security": [], "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "security": [], "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "security": [], "responses": { "200": { "description": "metrics" } } } }
  }
}`
