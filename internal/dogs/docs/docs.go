// Package docs holds the OpenAPI document for the dog registry API.
// Regenerate with: swag init -g cmd/dogs/main.go -o internal/dogs/docs --parseInternal
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
        "/api/dogs/dogs": {
            "get": {
                "description": "Lists dogs that are not deleted. At most one filter applies: name, then breed, then supplier. Matching is a case-insensitive substring.",
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "List dogs",
                "parameters": [
                    {"type": "string", "description": "Name contains", "name": "name", "in": "query"},
                    {"type": "string", "description": "Breed contains", "name": "breed", "in": "query"},
                    {"type": "string", "description": "Supplier name contains", "name": "supplier", "in": "query"},
                    {"type": "integer", "description": "0-based page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "size", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "field[,asc|desc]", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DogPageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a dog. The supplier is looked up by name and created when missing.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Create a dog",
                "parameters": [
                    {"description": "Dog", "name": "dog", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateDogRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.DogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/dogs/dogs/{id}": {
            "get": {
                "description": "Returns the dog with the given id, including soft-deleted dogs.",
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Get a dog",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Dog ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Overwrites only the fields present in the body. The supplier cannot be changed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Update a dog",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Dog ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "dog", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateDogRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Marks the dog as deleted. It stays readable by id.",
                "tags": ["dogs"],
                "summary": "Delete a dog",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Dog ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateDogRequest": {
            "type": "object",
            "required": ["breed", "currentStatus", "name", "supplier"],
            "properties": {
                "badgeId": {"type": "string", "maxLength": 64, "example": "B-123"},
                "birthDate": {"type": "string", "example": "2020-01-02"},
                "breed": {"type": "string", "example": "Labrador"},
                "currentStatus": {"type": "string", "enum": ["IN_TRAINING", "IN_SERVICE", "RETIRED", "LEFT"], "example": "IN_SERVICE"},
                "dateAcquired": {"type": "string", "example": "2021-03-04"},
                "gender": {"type": "string", "enum": ["MALE", "FEMALE"], "example": "MALE"},
                "kennellingCharacteristics": {"type": "array", "items": {"type": "string"}},
                "leavingDate": {"type": "string"},
                "leavingReason": {"type": "string", "enum": ["TRANSFERRED", "RETIRED_PUT_DOWN", "KIA", "REJECTED", "RETIRED_REHOMED", "DIED"]},
                "name": {"type": "string", "example": "Rocky"},
                "supplier": {"type": "string", "example": "SupplierA"}
            }
        },
        "handlers.DogPageResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/handlers.DogResponse"}},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "handlers.DogResponse": {
            "type": "object",
            "properties": {
                "badgeId": {"type": "string"},
                "birthDate": {"type": "string"},
                "breed": {"type": "string", "example": "Labrador"},
                "currentStatus": {"type": "string", "example": "IN_SERVICE"},
                "dateAcquired": {"type": "string"},
                "gender": {"type": "string"},
                "id": {"type": "string", "example": "5b0c1f4e-8a43-4f4e-9d4b-2f1c3f0a9e11"},
                "kennellingCharacteristics": {"type": "array", "items": {"type": "string"}},
                "leavingDate": {"type": "string"},
                "leavingReason": {"type": "string"},
                "name": {"type": "string", "example": "Rocky"},
                "supplier": {"type": "string", "example": "SupplierA"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handlers.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.UpdateDogRequest": {
            "type": "object",
            "properties": {
                "badgeId": {"type": "string", "maxLength": 64},
                "birthDate": {"type": "string"},
                "breed": {"type": "string"},
                "currentStatus": {"type": "string", "enum": ["IN_TRAINING", "IN_SERVICE", "RETIRED", "LEFT"]},
                "dateAcquired": {"type": "string"},
                "gender": {"type": "string", "enum": ["MALE", "FEMALE"]},
                "kennellingCharacteristics": {"type": "array", "items": {"type": "string"}},
                "leavingDate": {"type": "string"},
                "leavingReason": {"type": "string", "enum": ["TRANSFERRED", "RETIRED_PUT_DOWN", "KIA", "REJECTED", "RETIRED_REHOMED", "DIED"]},
                "name": {"type": "string", "example": "Max"}
            }
        },
        "handlers.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handlers.FieldError"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and a JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dog Registry API",
	Description:      "Tracks service dogs and the suppliers they were acquired from.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
