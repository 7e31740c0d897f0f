package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Camp Attendance API",
        "description": "Staff, camp and assignment record keeping for hospital medical camps",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Staff", "description": "Staff directory management"},
        {"name": "Camps", "description": "Medical camp registry"},
        {"name": "Assignments", "description": "Staff-to-camp assignment ledger"},
        {"name": "Dashboard", "description": "Overview aggregates"},
        {"name": "Settings", "description": "Persisted theme configuration"},
        {"name": "Export", "description": "Spreadsheet export"}
    ],
    "paths": {
        "/staff": {
            "get": {
                "tags": ["Staff"],
                "summary": "List staff directory",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Staff"],
                "summary": "Add a staff record",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StaffRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/staff/{id}": {
            "get": {
                "tags": ["Staff"],
                "summary": "Get staff detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Staff"],
                "summary": "Replace a staff record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StaffRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Staff"],
                "summary": "Delete a staff record and its assignments",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/staff/{id}/assignments": {
            "get": {
                "tags": ["Staff"],
                "summary": "List camps a staff member attended",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/staff/import": {
            "post": {
                "tags": ["Staff"],
                "summary": "Import staff from an XLSX upload",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "mode", "in": "query", "type": "string", "enum": ["append", "replace"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/camps": {
            "get": {
                "tags": ["Camps"],
                "summary": "List camps, most recent first",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Camps"],
                "summary": "Add a camp",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCampRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/camps/{id}": {
            "delete": {
                "tags": ["Camps"],
                "summary": "Delete a camp and its assignments",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/camps/{id}/assignments": {
            "get": {
                "tags": ["Camps"],
                "summary": "List staff assigned to a camp",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/camps/{id}/roster": {
            "get": {
                "tags": ["Camps"],
                "summary": "Download a camp roster report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "Report file"}}
            }
        },
        "/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List all assignments with display fields",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Assign staff to a camp (idempotent)",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown camp or staff id", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Assignments"],
                "summary": "Remove one camp/staff assignment",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnassignRequest"}}],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Assignment not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Overview aggregates for the landing page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/settings/theme": {
            "get": {
                "tags": ["Settings"],
                "summary": "Get the persisted theme colors",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Update theme colors",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/export/workbook": {
            "get": {
                "tags": ["Export"],
                "summary": "Download all collections as an XLSX workbook",
                "responses": {"200": {"description": "Workbook file"}}
            }
        }
    },
    "definitions": {
        "StaffRequest": {
            "type": "object",
            "properties": {
                "serialNo": {"type": "integer"},
                "name": {"type": "string"},
                "category": {"type": "string", "enum": ["Doctor", "Nurse", "Faculty", "PG", "Internee"]},
                "pgYear": {"type": "string"},
                "joiningDate": {"type": "string", "format": "date"}
            },
            "required": ["name", "category"]
        },
        "CreateCampRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "campDate": {"type": "string", "format": "date"}
            },
            "required": ["title", "campDate"]
        },
        "AssignRequest": {
            "type": "object",
            "properties": {
                "campId": {"type": "integer"},
                "staffIds": {"type": "array", "items": {"type": "integer"}}
            },
            "required": ["campId", "staffIds"]
        },
        "UnassignRequest": {
            "type": "object",
            "properties": {
                "campId": {"type": "integer"},
                "staffId": {"type": "integer"}
            },
            "required": ["campId", "staffId"]
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
