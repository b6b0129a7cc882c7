package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Property Maintenance API",
        "description": "Buildings, apartments, maintenance requests, parts inventory and reports",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Buildings", "description": "Buildings and apartment occupancy"},
        {"name": "Requests", "description": "Maintenance request lifecycle"},
        {"name": "Employees", "description": "Maintenance staff"},
        {"name": "Parts", "description": "Parts inventory"},
        {"name": "Reports", "description": "Aggregate reports with optional CSV/PDF export"}
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
                "summary": "Readiness check (database ping)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/buildings": {
            "get": {
                "tags": ["Buildings"],
                "summary": "List buildings with occupancy summaries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Buildings"],
                "summary": "Register a building",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBuildingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/buildings/{id}": {
            "put": {
                "tags": ["Buildings"],
                "summary": "Update building fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateBuildingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "No updatable fields"},
                    "404": {"description": "Building not found"}
                }
            }
        },
        "/buildings/{id}/apartments": {
            "get": {
                "tags": ["Buildings"],
                "summary": "List apartments in a building",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/buildings/{id}/apartments/{apt}": {
            "put": {
                "tags": ["Buildings"],
                "summary": "Update apartment fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "apt", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "No updatable fields"},
                    "404": {"description": "Apartment not found"}
                }
            }
        },
        "/buildings/{id}/apartments/{apt}/vacancy": {
            "get": {
                "tags": ["Buildings"],
                "summary": "Occupancy snapshot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "apt", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Apartment not found"}
                }
            },
            "put": {
                "tags": ["Buildings"],
                "summary": "Set or clear the renter; null renterId vacates",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "apt", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "renterId key missing"},
                    "404": {"description": "Apartment not found"}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["Requests"],
                "summary": "List maintenance requests",
                "parameters": [
                    {"name": "studentID", "in": "query", "type": "integer"},
                    {"name": "employeeID", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "priority", "in": "query", "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Requests"],
                "summary": "Submit a maintenance request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRequestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/requests/{id}": {
            "get": {
                "tags": ["Requests"],
                "summary": "Full request detail with photos, notes, history, crew and parts",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Request not found"}
                }
            },
            "put": {
                "tags": ["Requests"],
                "summary": "Update request fields and/or reassign an employee",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "No updatable fields"},
                    "404": {"description": "Request not found"}
                }
            },
            "delete": {
                "tags": ["Requests"],
                "summary": "Cancel a request (soft delete)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Canceled"},
                    "404": {"description": "Request not found"}
                }
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List employees",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Register an employee",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/employee/parts": {
            "get": {
                "tags": ["Parts"],
                "summary": "List the parts inventory",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Parts"],
                "summary": "Register a part",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/employee/parts/{id}": {
            "get": {
                "tags": ["Parts"],
                "summary": "Part with usage history",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Part not found"}
                }
            },
            "put": {
                "tags": ["Parts"],
                "summary": "Update part fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Part not found"}
                }
            }
        },
        "/employee/parts/{id}/status": {
            "put": {
                "tags": ["Parts"],
                "summary": "Apply a signed stock delta",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Part not found"}
                }
            }
        },
        "/reports/cost": {
            "get": {
                "tags": ["Reports"],
                "summary": "Maintenance cost over a date range",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"},
                    {"name": "by_build", "in": "query", "type": "boolean"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing date range"}
                }
            }
        },
        "/reports/revenue": {
            "get": {
                "tags": ["Reports"],
                "summary": "Rental revenue over a date range",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"},
                    {"name": "interval", "in": "query", "type": "string"},
                    {"name": "include_empty", "in": "query", "type": "boolean"},
                    {"name": "by_build", "in": "query", "type": "boolean"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing date range"}
                }
            }
        },
        "/reports/vacancies": {
            "get": {
                "tags": ["Reports"],
                "summary": "Current vacancy counts",
                "parameters": [
                    {"name": "by_build", "in": "query", "type": "boolean"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/reports/average-monthly-requests": {
            "get": {
                "tags": ["Reports"],
                "summary": "Average requests per month by issue type",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "desc", "in": "query", "type": "boolean"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing or invalid date range"}
                }
            }
        },
        "/reports/building-activity": {
            "get": {
                "tags": ["Reports"],
                "summary": "Request workload per building",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "required": true, "type": "string"},
                    {"name": "building", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "desc", "in": "query", "type": "boolean"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing date range"}
                }
            }
        },
        "/reports/active-requests": {
            "get": {
                "tags": ["Reports"],
                "summary": "Requests that are neither completed nor canceled",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "CreateBuildingRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "managerID": {"type": "integer"}
            },
            "required": ["address", "managerID"]
        },
        "UpdateBuildingRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "managerID": {"type": "integer"}
            }
        },
        "CreateRequestRequest": {
            "type": "object",
            "properties": {
                "issueType": {"type": "string"},
                "description": {"type": "string"},
                "buildingID": {"type": "integer"},
                "aptNumber": {"type": "integer"},
                "priority": {"type": "string"},
                "studentID": {"type": "integer"},
                "dateRequested": {"type": "string", "format": "date-time"}
            },
            "required": ["issueType", "description", "buildingID"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
