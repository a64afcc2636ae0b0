package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

type LanguageHandler struct {
	pref ports.LanguagePreference
}

func NewLanguageHandler(pref ports.LanguagePreference) *LanguageHandler {
	return &LanguageHandler{pref: pref}
}

// Get returns the saved UI language.
//
// @Summary      Get UI language
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  languageResponse
// @Router       /api/language [get]
func (h *LanguageHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, languageResponse{Language: h.pref.Get(c.Request().Context())})
}

// Set saves the UI language.
//
// @Summary      Set UI language
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body      languageRequest  true  "Language (en or zh)"
// @Success      200   {object}  languageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/language [put]
func (h *LanguageHandler) Set(c echo.Context) error {
	var req languageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	lang := domain.Language(req.Language)
	if err := h.pref.Set(c.Request().Context(), lang); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languageResponse{Language: lang})
}
