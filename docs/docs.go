// Package docs Mountain Explorer API.
//
// Поиск вершин и вулканов рядом с точкой по данным OpenStreetMap (Overpass API),
// адреса через Nominatim и краткие статьи из Wikipedia.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Проверка состояния",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/v1/mountains/nearby": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Mountains"],
                "summary": "Поиск вершин и вулканов рядом с точкой",
                "parameters": [
                    {"type": "number", "description": "Широта", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Долгота", "name": "lon", "in": "query", "required": true},
                    {"type": "integer", "default": 50000, "description": "Радиус поиска в метрах", "name": "radius", "in": "query"},
                    {"type": "integer", "default": 30, "description": "Максимальное количество результатов", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/mountains/{id}/details": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Mountains"],
                "summary": "Детали вершины",
                "parameters": [
                    {"type": "integer", "description": "OSM ID вершины", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Название", "name": "name", "in": "query"},
                    {"type": "number", "description": "Широта", "name": "lat", "in": "query"},
                    {"type": "number", "description": "Долгота", "name": "lon", "in": "query"},
                    {"type": "integer", "description": "Высота в метрах", "name": "ele", "in": "query"},
                    {"type": "string", "description": "Тип (peak, volcano)", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/locations/select": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Locations"],
                "summary": "Выбор точки на карте или геолокации устройства",
                "parameters": [
                    {"description": "Координаты точки", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectLocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/places/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Locations"],
                "summary": "Поиск места по названию",
                "parameters": [
                    {"type": "string", "description": "Название места", "name": "q", "in": "query", "required": true},
                    {"type": "string", "description": "ID сессии", "name": "session_id", "in": "query"},
                    {"type": "integer", "description": "Радиус поиска в метрах", "name": "radius", "in": "query"},
                    {"type": "integer", "description": "Максимальное количество результатов", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Состояние сессии",
                "parameters": [
                    {"type": "string", "description": "ID сессии (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Сохранение состояния сессии",
                "parameters": [
                    {"type": "string", "description": "ID сессии (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Состояние", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SaveStateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Сброс состояния сессии",
                "parameters": [
                    {"type": "string", "description": "ID сессии (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.Point": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "dto.SelectLocationRequest": {
            "type": "object",
            "required": ["lat", "lon"],
            "properties": {
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "is_user_location": {"type": "boolean"},
                "session_id": {"type": "string"},
                "radius": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "dto.SaveStateRequest": {
            "type": "object",
            "properties": {
                "origin": {"$ref": "#/definitions/dto.Point"},
                "address": {"type": "string"},
                "is_user_location": {"type": "boolean"},
                "radius": {"type": "integer"},
                "limit": {"type": "integer"},
                "mountains": {"type": "array", "items": {"$ref": "#/definitions/domain.Mountain"}}
            }
        },
        "domain.Mountain": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"},
                "elevation": {"type": "integer"},
                "type": {"type": "string", "enum": ["peak", "volcano"]},
                "distance_km": {"type": "number"},
                "wikipedia": {"type": "string"},
                "wikidata": {"type": "string"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "message": {"type": "string"},
                "time_ms": {"type": "number"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Mountain Explorer API",
	Description:      "Поиск вершин и вулканов рядом с точкой по данным OpenStreetMap.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
