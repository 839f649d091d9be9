// Package docs đăng ký tài liệu OpenAPI cho /swagger
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
        "/v1/reservations": {
            "post": {
                "tags": ["reservations"],
                "summary": "Create a reservation (partner API key)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateReservationRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Room type not found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Unavailable", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/reservations/{code}": {
            "get": {
                "tags": ["reservations"],
                "summary": "Reservation detail by confirmation code",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "code", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/v1/reservations/{id}/cancel": {
            "patch": {
                "tags": ["reservations"],
                "summary": "Cancel a reservation",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Invalid transition", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/properties/{slug}": {
            "get": {
                "tags": ["properties"],
                "summary": "Public property info",
                "parameters": [{"in": "path", "name": "slug", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/v1/properties/{slug}/availability": {
            "post": {
                "tags": ["properties"],
                "summary": "Search availability",
                "parameters": [
                    {"in": "path", "name": "slug", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AvailabilityRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/v1/properties/{slug}/reviews": {
            "get": {
                "tags": ["properties"],
                "summary": "Published reviews with average rating",
                "parameters": [{"in": "path", "name": "slug", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/review/{token}": {
            "get": {
                "tags": ["reviews"],
                "summary": "Stay details for the review form",
                "parameters": [{"in": "path", "name": "token", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Invalid review link", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Link used or expired", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["reviews"],
                "summary": "Submit a review with a one-time link",
                "parameters": [
                    {"in": "path", "name": "token", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Link used or expired", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/operator/properties/{propertyId}/reviews": {
            "get": {
                "tags": ["operator"],
                "summary": "Reviews for moderation",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "propertyId", "type": "string", "required": true},
                    {"in": "query", "name": "status", "type": "string", "enum": ["pending", "published", "hidden"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/v1/operator/properties/{propertyId}/reviews/{reviewId}/publish": {
            "post": {
                "tags": ["operator"],
                "summary": "Publish a review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "propertyId", "type": "string", "required": true},
                    {"in": "path", "name": "reviewId", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/v1/operator/properties/{propertyId}/reviews/{reviewId}/hide": {
            "post": {
                "tags": ["operator"],
                "summary": "Hide a review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "propertyId", "type": "string", "required": true},
                    {"in": "path", "name": "reviewId", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/v1/operator/properties/{propertyId}/reviews/{reviewId}/response": {
            "put": {
                "tags": ["operator"],
                "summary": "Public property response to a review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "propertyId", "type": "string", "required": true},
                    {"in": "path", "name": "reviewId", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"response": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/book/{slug}/checkout": {
            "post": {
                "tags": ["booking"],
                "summary": "Create a payment intent for a guest stay",
                "parameters": [{"in": "path", "name": "slug", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/book/{slug}/reservations": {
            "post": {
                "tags": ["booking"],
                "summary": "Complete a guest booking after payment",
                "parameters": [{"in": "path", "name": "slug", "type": "string", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "402": {"description": "Payment not authorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Operator login",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/v1/webhooks/payments": {
            "post": {
                "tags": ["webhooks"],
                "summary": "Payment provider webhook",
                "parameters": [{"in": "header", "name": "X-Webhook-Signature", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid signature"}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/response.Meta"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "meta": {"$ref": "#/definitions/response.Meta"}
            }
        },
        "response.Meta": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "detail": {"type": "string"}
            }
        },
        "dto.AvailabilityRequest": {
            "type": "object",
            "required": ["checkIn", "checkOut", "adults"],
            "properties": {
                "checkIn": {"type": "string", "example": "2026-07-01"},
                "checkOut": {"type": "string", "example": "2026-07-04"},
                "adults": {"type": "integer", "minimum": 1, "maximum": 10},
                "children": {"type": "integer", "minimum": 0, "maximum": 10}
            }
        },
        "dto.SubmitReviewRequest": {
            "type": "object",
            "required": ["rating", "body"],
            "properties": {
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "title": {"type": "string"},
                "body": {"type": "string", "minLength": 10}
            }
        },
        "dto.CreateReservationRequest": {
            "type": "object",
            "required": ["propertySlug", "roomTypeId", "checkIn", "checkOut", "adults", "guest"],
            "properties": {
                "propertySlug": {"type": "string"},
                "roomTypeId": {"type": "string", "format": "uuid"},
                "checkIn": {"type": "string"},
                "checkOut": {"type": "string"},
                "adults": {"type": "integer"},
                "children": {"type": "integer"},
                "channel": {"type": "string", "enum": ["direct", "booking_com", "airbnb", "expedia", "walk_in", "phone"]},
                "guest": {
                    "type": "object",
                    "properties": {
                        "firstName": {"type": "string"},
                        "lastName": {"type": "string"},
                        "email": {"type": "string"},
                        "phone": {"type": "string"}
                    }
                },
                "specialRequests": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo giữ thông tin mà gin-swagger đọc
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StayDesk API",
	Description:      "Booking engine for independent properties.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
