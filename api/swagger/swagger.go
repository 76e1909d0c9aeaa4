package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Attendance API",
        "description": "Daily student attendance, reports and dashboard statistics",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Catalog", "description": "Departments and levels"},
        {"name": "Students", "description": "Student registry"},
        {"name": "Attendance", "description": "Daily roster and marks"},
        {"name": "Dashboard", "description": "Daily reports and period statistics"},
        {"name": "Reports", "description": "File exports"}
    ],
    "paths": {
        "/departments": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List departments with their levels",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/levels": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List levels",
                "parameters": [{"name": "departmentCode", "in": "query", "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown department", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "level", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown department or level", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already used", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/search": {
            "get": {
                "tags": ["Students"],
                "summary": "Search students by name or email",
                "parameters": [{"name": "q", "in": "query", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/by-level": {
            "get": {
                "tags": ["Students"],
                "summary": "List the students of a level",
                "parameters": [{"name": "code", "in": "query", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/count": {
            "get": {
                "tags": ["Students"],
                "summary": "Count the students of a department and level",
                "parameters": [
                    {"name": "departmentCode", "in": "query", "type": "string", "required": true},
                    {"name": "levelCode", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/students/{id}": {
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student and its attendance records",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "Deleted student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Daily roster with resolved attendance status",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "levelId", "in": "query", "type": "integer"},
                    {"name": "levelCode", "in": "query", "type": "string"},
                    {"name": "departmentCode", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark a student present or absent for a day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/attendance-report": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Daily attendance report",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "departmentCode", "in": "query", "type": "string"},
                    {"name": "levelCode", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dashboard/attendance-stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Presence rate over a week, a month or a custom window",
                "parameters": [
                    {"name": "departmentCode", "in": "query", "type": "string", "required": true},
                    {"name": "levelCode", "in": "query", "type": "string", "required": true},
                    {"name": "type", "in": "query", "type": "string", "required": true, "enum": ["weekly", "monthly", "custom"]},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Monthly overview with weekday breakdown",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string", "required": true},
                    {"name": "level", "in": "query", "type": "string", "required": true},
                    {"name": "month", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dashboard/student-count": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Count the students of a department and level",
                "parameters": [
                    {"name": "departmentCode", "in": "query", "type": "string", "required": true},
                    {"name": "levelCode", "in": "query", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/reports/attendance/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the daily roster as CSV, PDF or XLSX",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "required": true},
                    {"name": "departmentCode", "in": "query", "type": "string"},
                    {"name": "levelCode", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format or too many rows", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "departmentCode": {"type": "string"},
                "levelCode": {"type": "string"}
            },
            "required": ["firstName", "lastName", "departmentCode", "levelCode"]
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "isPresent": {"type": "boolean"},
                "date": {"type": "string"}
            },
            "required": ["studentId", "isPresent", "date"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"}
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
