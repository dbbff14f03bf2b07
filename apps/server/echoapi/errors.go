package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/itmsdev/itms-client/core"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "invalid username or password")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errHTTPForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows
// how to shape our errors into the {message} bodies clients rely on.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			fldErrs := make(map[string]string, len(origErr.Fields))
			for _, fldErr := range origErr.Fields {
				fldErrs[fldErr.Field] = fldErr.Error
			}
			code = http.StatusBadRequest
			message = fldErrs
		default:
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			logger.Error("unhandled API error", err)
		}

		if !ctx.Response().Committed {
			var resErr error
			if ctx.Request().Method == http.MethodHead {
				resErr = ctx.NoContent(code)
			} else {
				resErr = ctx.JSON(code, echo.Map{"message": message})
			}
			if resErr != nil {
				logger.Error("writing API error response", resErr)
			}
		}
	}
}
