// Package docs registers the OpenAPI description served at /swagger/.
// Regenerate with `swag init -g internal/auth/http/router.go -o api/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "status, uptime, version"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "status, uptime, version, checks"},
                    "503": {"description": "database unreachable"}
                }
            }
        },
        "/v2/authentication": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Session probe",
                "responses": {
                    "200": {"description": "current account"},
                    "401": {"description": "unauthenticated"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Sign in",
                "responses": {
                    "200": {"description": "account, expires_at"},
                    "400": {"description": "invalid_request"},
                    "401": {"description": "bad_credentials"},
                    "403": {"description": "account_inactive"}
                }
            },
            "delete": {
                "tags": ["Authentication"],
                "summary": "Sign out",
                "responses": {"204": {"description": "signed out"}}
            }
        },
        "/v2/users": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List accounts",
                "responses": {
                    "200": {"description": "accounts"},
                    "401": {"description": "unauthenticated"},
                    "403": {"description": "forbidden"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Register an account",
                "responses": {
                    "201": {"description": "created account"},
                    "400": {"description": "invalid_request"},
                    "403": {"description": "signup_closed"},
                    "409": {"description": "email_taken"}
                }
            }
        },
        "/v2/users/{email}": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Fetch one account",
                "responses": {
                    "200": {"description": "account"},
                    "404": {"description": "not_found"}
                }
            },
            "patch": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Update an account",
                "responses": {
                    "200": {"description": "updated account"},
                    "404": {"description": "not_found"}
                }
            },
            "delete": {
                "security": [{"SessionCookie": []}],
                "tags": ["Users"],
                "summary": "Delete an account",
                "responses": {
                    "204": {"description": "deleted"},
                    "404": {"description": "not_found"}
                }
            }
        },
        "/v2/users/{email}/metadata": {
            "put": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "tags": ["Users"],
                "summary": "Replace own metadata",
                "responses": {
                    "204": {"description": "updated"},
                    "403": {"description": "forbidden"}
                }
            }
        },
        "/v2/invites": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Invites"],
                "summary": "List standing invites",
                "responses": {"200": {"description": "invites"}}
            },
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invites"],
                "summary": "Invite an email address",
                "responses": {
                    "201": {"description": "invite"},
                    "400": {"description": "invalid_request"}
                }
            }
        },
        "/v2/invites/{email}": {
            "patch": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "tags": ["Invites"],
                "summary": "Replace an invite's permission grant",
                "responses": {
                    "204": {"description": "updated"},
                    "404": {"description": "not_found"}
                }
            },
            "delete": {
                "security": [{"SessionCookie": []}],
                "tags": ["Invites"],
                "summary": "Revoke an invite",
                "responses": {
                    "204": {"description": "revoked"},
                    "404": {"description": "not_found"}
                }
            }
        },
        "/v2/nodes": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Nodes"],
                "summary": "List nodes",
                "responses": {"200": {"description": "nodes"}}
            },
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Nodes"],
                "summary": "Create a node",
                "responses": {
                    "201": {"description": "node"},
                    "409": {"description": "node_exists"}
                }
            }
        },
        "/v2/nodes/{id}": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Nodes"],
                "summary": "Fetch a node",
                "responses": {
                    "200": {"description": "node"},
                    "404": {"description": "not_found"}
                }
            },
            "patch": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "tags": ["Nodes"],
                "summary": "Replace a node's default text",
                "responses": {
                    "204": {"description": "updated"},
                    "404": {"description": "not_found"}
                }
            },
            "delete": {
                "security": [{"SessionCookie": []}],
                "tags": ["Nodes"],
                "summary": "Delete a node",
                "responses": {
                    "204": {"description": "deleted"},
                    "404": {"description": "not_found"}
                }
            }
        },
        "/v2/permissions": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Permissions"],
                "summary": "Permission catalog",
                "responses": {"200": {"description": "assignable permissions"}}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "name": "authToken",
            "in": "cookie",
            "description": "Signed session token set by POST /v2/authentication."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Gatekeep Authentication Service API",
	Description:      "Self-hosted authentication and authorization backend: signed session tokens, a closed permission catalog, and invite-gated signups.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
