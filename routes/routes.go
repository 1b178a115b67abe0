// Package routes exposes the travel pipeline and the chat router over the
// application's HTTP API.
package routes

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/ringsaturn/tzf"

	"backend/chat"
	"backend/travel"
)

// API bundles the handlers' dependencies.
type API struct {
	Generator     *travel.Generator
	Conversations *chat.Manager
	Timezones     tzf.F // optional; nil means every export is UTC
}

// Bind registers every route under /api/v1.
func (api *API) Bind(se *core.ServeEvent) {
	g := se.Router.Group("/api/v1")
	g.GET("/", api.Welcome)
	g.POST("/generate-program", api.GenerateProgram)
	g.POST("/generate-program-v2", api.GenerateProgramV2)
	g.POST("/generate-structured-text", api.GenerateStructuredText)
	g.POST("/program-export", api.ExportProgram)
	g.GET("/programs", api.ListPrograms)
	g.POST("/chat", api.Chat)
	g.GET("/chat/history/{sessionId}", api.ChatHistory)
}

func (api *API) Welcome(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to the travel program API",
	})
}
