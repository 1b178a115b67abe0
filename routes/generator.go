package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"backend/travel"
)

// GenerateProgram handles the primary generation path: TravelRequest in,
// TravelProgram out. Any unrecovered pipeline failure surfaces as one
// generic error string.
func (api *API) GenerateProgram(e *core.RequestEvent) error {
	var req travel.TravelRequest
	if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	program, err := api.Generator.GenerateProgram(e.Request.Context(), req)
	if err != nil {
		e.App.Logger().Error("program generation failed", "error", err)
		return e.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("error while generating the program: %s", err),
		})
	}

	if err := saveProgram(e.App, program); err != nil {
		e.App.Logger().Warn("unable to archive generated program", "error", err)
	}

	return e.JSON(http.StatusOK, program)
}

// GenerateProgramV2 handles the provider-orchestrated path: ProgramRequest
// in, ProgramResponse with metadata out.
func (api *API) GenerateProgramV2(e *core.RequestEvent) error {
	var req travel.ProgramRequest
	if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	response, err := api.Generator.GenerateProgramV2(e.Request.Context(), req)
	if err != nil {
		e.App.Logger().Error("program generation failed", "error", err, "version", "v2")
		return e.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("error while generating the program: %s", err),
		})
	}

	return e.JSON(http.StatusOK, response)
}

// GenerateStructuredText returns a plain-text day-by-day program for the
// request's first destination.
func (api *API) GenerateStructuredText(e *core.RequestEvent) error {
	var req travel.TravelRequest
	if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	text, err := api.Generator.GenerateStructuredText(e.Request.Context(), req)
	if err != nil {
		e.App.Logger().Error("structured text generation failed", "error", err)
		return e.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("error while generating the structured program: %s", err),
		})
	}

	return e.JSON(http.StatusOK, map[string]string{
		"program": text,
	})
}
