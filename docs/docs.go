// Package docs registers the swagger spec served by the API's swagger UI.
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
    "paths": {
        "/exports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "List export jobs",
                "responses": {
                    "200": {"description": "List of export jobs"},
                    "500": {"description": "Internal server error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Create an export job",
                "parameters": [
                    {
                        "description": "Export configuration",
                        "name": "export",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.ExportJobSpec"}
                    }
                ],
                "responses": {
                    "202": {"description": "Export job created"},
                    "400": {"description": "Invalid request payload"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Get export job",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Export job"},
                    "404": {"description": "Job not found"}
                }
            }
        },
        "/exports/{id}/errors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Get export job errors",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Job errors"}}
            }
        },
        "/exports/{id}/warnings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Get export job warnings",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Job warnings"}}
            }
        },
        "/exports/{id}/result": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Get export job result",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Export result"},
                    "404": {"description": "No result yet"}
                }
            }
        },
        "/exports/{id}/download": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["exports"],
                "summary": "Download the produced CSV",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV file"},
                    "404": {"description": "No result yet"}
                }
            }
        }
    },
    "definitions": {
        "model.ExportJobSpec": {
            "type": "object",
            "required": ["path"],
            "properties": {
                "path": {"type": "string"},
                "segment": {"type": "integer"},
                "overwrite": {"type": "boolean"},
                "zeroPoint": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Light Curve Export API",
	Description:      "Asynchronous FITS-to-CSV light curve export jobs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
