// Package docs registers the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List upcoming events",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of events (default 5, max 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListEventsSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.GetEventSuccessResponse"}}
                }
            }
        },
        "/registrations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Register for a class",
                "parameters": [
                    {"description": "Registration form", "name": "registration", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.RegistrationInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.RegisterSuccessResponse"}},
                    "400": {"description": "error.code: bad_request or validation", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/registrations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Get a registration",
                "parameters": [
                    {"type": "string", "description": "Registration ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/payments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Pay for a registration",
                "parameters": [
                    {"description": "Payment form", "name": "payment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.PaymentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.PaySuccessResponse"}},
                    "400": {"description": "error.code: bad_request or validation", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/checkout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Start hosted checkout",
                "responses": {
                    "303": {"description": "Location: hosted checkout page"},
                    "502": {"description": "error.code: upstream", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Operator login",
                "parameters": [
                    {"description": "Operator password", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "data.token", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/admin/reconciliations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List payments awaiting reconciliation",
                "parameters": [
                    {"type": "integer", "description": "Page (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data.items and data.pagination", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/admin/reconciliations/{id}/retry": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Retry marking a registration paid",
                "parameters": [
                    {"type": "string", "description": "Reconciliation ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data is the reconciliation record", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.AdminLoginRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "controllers.GetEventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Event"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.ListEventsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.RegisterSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object", "properties": {"success": {"type": "boolean"}, "registrationId": {"type": "string"}}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.PaySuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object", "properties": {"success": {"type": "boolean"}, "paymentId": {"type": "string"}}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "location_name": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "zip": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "domain.RegistrationInput": {
            "type": "object",
            "properties": {
                "eventId": {"type": "string"},
                "firstName": {"type": "string", "minLength": 2},
                "lastName": {"type": "string", "minLength": 2},
                "address": {"type": "string", "minLength": 5},
                "city": {"type": "string", "minLength": 2},
                "state": {"type": "string", "minLength": 2},
                "zipCode": {"type": "string", "minLength": 5},
                "phone": {"type": "string", "minLength": 10},
                "email": {"type": "string"},
                "guestName": {"type": "string"},
                "confirmEvent": {"type": "boolean"}
            }
        },
        "domain.PaymentInput": {
            "type": "object",
            "properties": {
                "registrationId": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "zipCode": {"type": "string"},
                "cardType": {"type": "string"},
                "cardNumber": {"type": "string", "minLength": 13, "maxLength": 19},
                "expirationMonth": {"type": "string"},
                "expirationYear": {"type": "string"},
                "securityCode": {"type": "string", "minLength": 3, "maxLength": 4}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "rule": {"type": "string"}, "message": {"type": "string"}}}}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Class Registration API",
	Description:      "Event listing, registration, payment and hosted checkout for the New Retirement Rules class.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
