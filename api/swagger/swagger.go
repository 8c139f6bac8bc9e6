package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campusbot Schedule API",
        "description": "Weekly schedule rendering and mutual-enrollment matching",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedules", "description": "Schedule image rendering"},
        {"name": "Mutuals", "description": "Shared-section matching"},
        {"name": "Calendar", "description": "iCalendar export"},
        {"name": "Imports", "description": "Registrar roster upload"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Render a user's weekly schedule as an 800x600 PNG",
                "produces": ["image/png"],
                "parameters": [
                    {"name": "userId", "in": "query", "type": "string", "required": true},
                    {"name": "term", "in": "query", "type": "string", "required": true, "description": "Term prefix: A, B, C or D"}
                ],
                "responses": {
                    "200": {"description": "PNG image"},
                    "400": {"description": "Missing userId or term", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mutuals": {
            "get": {
                "tags": ["Mutuals"],
                "summary": "List classes two users share, grouped by class",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "userId", "in": "query", "type": "string", "required": true},
                    {"name": "otherId", "in": "query", "type": "string", "required": true},
                    {"name": "term", "in": "query", "type": "string", "description": "Term prefix; ALL or absent for every term"}
                ],
                "responses": {
                    "200": {"description": "Grouped shared classes", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/mutuals/report": {
            "get": {
                "tags": ["Mutuals"],
                "summary": "Export shared classes as CSV or PDF",
                "parameters": [
                    {"name": "userId", "in": "query", "type": "string", "required": true},
                    {"name": "otherId", "in": "query", "type": "string", "required": true},
                    {"name": "term", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"}
                ],
                "responses": {
                    "200": {"description": "Report bytes"}
                }
            }
        },
        "/calendar.ics": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Export a user's schedule as iCalendar text",
                "produces": ["text/calendar"],
                "parameters": [
                    {"name": "userId", "in": "query", "type": "string", "required": true},
                    {"name": "term", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "VCALENDAR text"}
                }
            }
        },
        "/imports/tokens": {
            "post": {
                "tags": ["Imports"],
                "summary": "Issue a single-use roster upload token",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/IssueTokenRequest"}}
                ],
                "responses": {
                    "201": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/imports/upload": {
            "post": {
                "tags": ["Imports"],
                "summary": "Upload a registrar roster CSV",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "token", "in": "formData", "type": "string", "required": true},
                    {"name": "roster", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Import summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "IssueTokenRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"}
            }
        },
        "MutualClass": {
            "type": "object",
            "properties": {
                "class_id": {"type": "string"},
                "name": {"type": "string"},
                "section_ids": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
