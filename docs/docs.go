// Package docs holds the OpenAPI description of the cup API.
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
        "/tournament/run": {
            "post": {
                "description": "Seeds eight teams, plays quarter-finals, semi-finals and the final, and records the champion",
                "produces": ["application/json"],
                "tags": ["Tournament"],
                "summary": "Run Tournament",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TournamentOutcome"}},
                    "409": {"description": "Run already in progress", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Fewer than eight valid teams", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/bracket": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tournament"],
                "summary": "Get Bracket",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Bracket"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/matches/{stage}/{slot}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tournament"],
                "summary": "Get Match",
                "parameters": [
                    {"type": "string", "enum": ["quarterFinals", "semiFinals", "final"], "description": "Stage", "name": "stage", "in": "path", "required": true},
                    {"type": "integer", "minimum": 1, "description": "Slot, starting at 1", "name": "slot", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MatchResult"}},
                    "400": {"description": "Invalid stage or slot", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Match not found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tournament"],
                "summary": "Hall of Fame",
                "parameters": [
                    {"type": "integer", "default": 20, "description": "Limit", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TournamentResult"}}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Teams"],
                "summary": "List Teams",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Team"}}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "description": "Generates a 23-player squad and derives the team rating from it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Teams"],
                "summary": "Register Team",
                "parameters": [
                    {"description": "Team", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterTeamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Team"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Country already registered", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/teams/backfill": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Teams"],
                "summary": "Backfill Rosters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BackfillResult"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/teams/{id}": {
            "delete": {
                "tags": ["Teams"],
                "summary": "Delete Team",
                "parameters": [
                    {"type": "string", "description": "Team ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Team not found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/scorers/top": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Top Scorers",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Limit", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ScorerTally"}}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/analytics/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Team Analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TeamAnalytics"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/analytics/goals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Goal Analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GoalAnalytics"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.Player": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "position": {"type": "string", "enum": ["GK", "DF", "MD", "AT"]},
                "rating": {"type": "object", "additionalProperties": {"type": "integer"}},
                "isCaptain": {"type": "boolean"}
            }
        },
        "models.Team": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "country": {"type": "string"},
                "manager": {"type": "string"},
                "rating": {"type": "integer"},
                "players": {"type": "array", "items": {"$ref": "#/definitions/models.Player"}}
            }
        },
        "models.RegisterTeamRequest": {
            "type": "object",
            "required": ["country"],
            "properties": {
                "country": {"type": "string", "minLength": 2, "maxLength": 64},
                "manager": {"type": "string", "maxLength": 64},
                "captain": {"type": "string", "maxLength": 64}
            }
        },
        "models.ScorerEvent": {
            "type": "object",
            "properties": {
                "team": {"type": "string"},
                "player": {"type": "string"},
                "minute": {"type": "integer", "minimum": 1, "maximum": 90}
            }
        },
        "models.MatchResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "run_id": {"type": "string"},
                "stage": {"type": "string", "enum": ["quarterFinals", "semiFinals", "final"]},
                "slot": {"type": "integer"},
                "teamA": {"type": "string"},
                "teamB": {"type": "string"},
                "scoreA": {"type": "integer"},
                "scoreB": {"type": "integer"},
                "scorers": {"type": "array", "items": {"$ref": "#/definitions/models.ScorerEvent"}},
                "scorersA": {"type": "array", "items": {"$ref": "#/definitions/models.ScorerEvent"}},
                "scorersB": {"type": "array", "items": {"$ref": "#/definitions/models.ScorerEvent"}},
                "winner": {"type": "string"},
                "tie_break": {"type": "boolean"},
                "simulated": {"type": "boolean"},
                "createdAt": {"type": "string"}
            }
        },
        "models.Bracket": {
            "type": "object",
            "properties": {
                "quarterFinals": {"type": "array", "items": {"$ref": "#/definitions/models.MatchResult"}},
                "semiFinals": {"type": "array", "items": {"$ref": "#/definitions/models.MatchResult"}},
                "final": {"type": "array", "items": {"$ref": "#/definitions/models.MatchResult"}}
            }
        },
        "models.TournamentOutcome": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "champion": {"$ref": "#/definitions/models.Team"},
                "runnerUp": {"$ref": "#/definitions/models.Team"},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/models.MatchResult"}}
            }
        },
        "models.TournamentResult": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "champion": {"type": "string"},
                "runnerUp": {"type": "string"},
                "rating": {"type": "integer"},
                "year": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "models.BackfillResult": {
            "type": "object",
            "properties": {"updated": {"type": "integer"}}
        },
        "models.ScorerTally": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "player": {"type": "string"},
                "country": {"type": "string"},
                "goals": {"type": "integer"}
            }
        },
        "models.TeamAnalytics": {
            "type": "object",
            "properties": {
                "team_count": {"type": "integer"},
                "average_rating": {"type": "number"},
                "strongest": {"type": "string"},
                "ratings": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "country": {"type": "string"},
                            "rating": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "models.GoalAnalytics": {
            "type": "object",
            "properties": {
                "windows": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "from_minute": {"type": "integer"},
                            "to_minute": {"type": "integer"},
                            "goals": {"type": "integer"}
                        }
                    }
                },
                "stages": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "stage": {"type": "string"},
                            "matches": {"type": "integer"},
                            "goals": {"type": "integer"},
                            "per_game": {"type": "number"}
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Knockout Cup API",
	Description:      "Eight-team knockout tournament simulation: teams, bracket, champions and scorer statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
