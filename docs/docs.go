// Package docs holds the OpenAPI document of the weather-notifier API, in the layout produced by swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Database, cache and queue status",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Application health",
                "responses": {
                    "200": {"description": "Application is up", "schema": {"$ref": "#/definitions/model.HealthResponse"}},
                    "503": {"description": "A component is down", "schema": {"$ref": "#/definitions/model.HealthResponse"}}
                }
            }
        },
        "/notifications/run": {
            "get": {
                "description": "Starts a weather notification run in the background",
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Trigger a notification run",
                "responses": {
                    "202": {"description": "Run accepted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/user-details": {
            "get": {
                "description": "Retrieve registered devices with pagination",
                "produces": ["application/json"],
                "tags": ["user-details"],
                "summary": "List user details",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Paginated list of user details", "schema": {"$ref": "#/definitions/model.Page-entity_UserDetail"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user-details"],
                "summary": "Register a device",
                "parameters": [
                    {"description": "User detail data", "name": "userDetail", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.UserDetailDTO"}}
                ],
                "responses": {
                    "201": {"description": "Created user detail", "schema": {"$ref": "#/definitions/entity.UserDetail"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "409": {"description": "Device token already registered", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/user-details/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user-details"],
                "summary": "Get user detail",
                "parameters": [
                    {"type": "integer", "description": "User detail id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.UserDetail"}},
                    "404": {"description": "User detail not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Fields absent from the body are left unchanged, null clears a field and device_token is ignored",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user-details"],
                "summary": "Update a device registration",
                "parameters": [
                    {"type": "integer", "description": "User detail id", "name": "id", "in": "path", "required": true},
                    {"description": "User detail data", "name": "userDetail", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.UserDetailUpdateDTO"}}
                ],
                "responses": {
                    "200": {"description": "Updated user detail", "schema": {"$ref": "#/definitions/entity.UserDetail"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "User detail not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["user-details"],
                "summary": "Delete a device registration",
                "parameters": [
                    {"type": "integer", "description": "User detail id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "User detail deleted successfully"},
                    "404": {"description": "User detail not found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entity.UserDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "device_token": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.ComponentHealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["UP", "DOWN", "UNKNOWN"]},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["UP", "DOWN", "UNKNOWN"]},
                "database": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "cache": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "queue": {"$ref": "#/definitions/model.ComponentHealthStatus"}
            }
        },
        "model.Page-entity_UserDetail": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/entity.UserDetail"}},
                "number": {"type": "integer"},
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "numberOfElements": {"type": "integer"}
            }
        },
        "model.UserDetailDTO": {
            "type": "object",
            "required": ["device_token"],
            "properties": {
                "device_token": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "model.UserDetailUpdateDTO": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "x-nullable": true},
                "city": {"type": "string", "x-nullable": true},
                "lat": {"type": "number", "x-nullable": true},
                "lon": {"type": "number", "x-nullable": true}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/weather-notifier",
	Schemes:          []string{},
	Title:            "weather-notifier API",
	Description:      "Device registry and weather notification fan-out",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
