package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
)

// httpErrorHandler renders every error as {"error": "..."}. Unknown errors are
// logged and hidden behind the status text.
func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	case errors.Is(err, ierrors.ErrInvalidInput):
		code = http.StatusBadRequest
		message = publicMessage(err, ierrors.ErrInvalidInput)
	case errors.Is(err, ierrors.ErrUnknownFormat):
		code = http.StatusBadRequest
		message = publicMessage(err, ierrors.ErrUnknownFormat)
	case errors.Is(err, ierrors.ErrNotFound):
		code = http.StatusNotFound
		message = ierrors.ErrNotFound.Error()
	case errors.Is(err, ierrors.ErrAlreadyExists):
		code = http.StatusConflict
		message = ierrors.ErrAlreadyExists.Error()
	case errors.Is(err, ierrors.ErrNotRegistered):
		code = http.StatusUnauthorized
		message = ierrors.ErrNotRegistered.Error()
	case errors.Is(err, ierrors.ErrInvalidToken):
		code = http.StatusUnauthorized
		message = ierrors.ErrInvalidToken.Error()
	default:
		event := log.Error()
		if id := userID(c); id != 0 {
			event = event.Int64("user", id)
		}
		event.Msgf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err.Error())
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"error": message})
	}
	if err != nil {
		log.Error().Msgf("httpErrorHandler: %v", err.Error())
	}
}

// publicMessage drops the call chain wrapped around sentinel and keeps the
// details added after it, e.g. "invalid input: subjects[0].name (required)".
func publicMessage(err, sentinel error) string {
	message := err.Error()
	if i := strings.Index(message, sentinel.Error()); i >= 0 {
		return message[i:]
	}
	return sentinel.Error()
}
