// Package docs registers the OpenAPI document served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a user", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.RegisterRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/types.APIResponse"}}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Exchange credentials for a bearer token", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Log out", "responses": {"200": {"description": "OK"}}}},
        "/users/me": {"get": {"tags": ["users"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}}},
        "/projects": {
            "get": {"tags": ["projects"], "summary": "List the caller's projects with their work items", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}},
            "post": {"tags": ["projects"], "summary": "Create a project", "security": [{"BearerAuth": []}], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.ProjectRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/types.APIResponse"}}}}
        },
        "/projects/{projectId}": {
            "get": {"tags": ["projects"], "summary": "Get a project", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "projectId", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}},
            "put": {"tags": ["projects"], "summary": "Update project fields", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "projectId", "type": "string", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.ProjectRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}},
            "delete": {"tags": ["projects"], "summary": "Delete a project with its work items and activity", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "projectId", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/projects/{projectId}/activities": {"get": {"tags": ["activities"], "summary": "Activity log of a project, newest first", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "projectId", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}}},
        "/features": {
            "get": {"tags": ["features"], "summary": "List features", "security": [{"BearerAuth": []}], "parameters": [{"in": "query", "name": "projectId", "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}},
            "post": {"tags": ["features"], "summary": "Create a feature", "security": [{"BearerAuth": []}], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.WorkItemRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/types.APIResponse"}}}}
        },
        "/features/{id}/update-status": {"put": {"tags": ["features"], "summary": "Change a feature's status", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.StatusUpdateRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}}},
        "/activities": {"get": {"tags": ["activities"], "summary": "Activity across all of the caller's projects, newest first", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.APIResponse"}}}}}
    },
    "definitions": {
        "types.APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "field": {"type": "string"}, "details": {"type": "string"}}},
        "types.APIResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "data": {}, "error": {"$ref": "#/definitions/types.APIError"}}},
        "types.RegisterRequest": {"type": "object", "required": ["email", "name", "password"], "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string", "minLength": 8}, "profileImageUrl": {"type": "string"}}},
        "types.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "types.ProjectRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "productionLink": {"type": "string"}, "repoLink": {"type": "string"}, "frontendLink": {"type": "string"}, "backendLink": {"type": "string"}, "frontendDetails": {"type": "string"}, "backendDetails": {"type": "string"}, "envDetails": {"type": "string"}, "testUserDetails": {"type": "string"}, "authDetails": {"type": "string"}, "setupSteps": {"type": "array", "items": {"type": "string"}}}},
        "types.WorkItemRequest": {"type": "object", "required": ["description"], "properties": {"projectId": {"type": "string"}, "description": {"type": "string"}, "status": {"type": "string"}, "rank": {"type": "integer"}, "tags": {"type": "array", "items": {"type": "string"}}}},
        "types.StatusUpdateRequest": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "DevTrack API",
	Description:      "Project tracking with an append-only activity log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
