package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-ticket-booking/internal/booking"
    "github.com/iliyamo/cinema-ticket-booking/internal/repository"
)

// respondError translates domain errors into JSON error responses of the form
// {"error": code, "message": text}.  Validation failures add the offending
// field.  Anything unrecognised becomes a 500.
func respondError(c echo.Context, err error) error {
    var verr *booking.ValidationError
    switch {
    case errors.As(err, &verr):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":   "validation_error",
            "field":   verr.Field,
            "message": verr.Message,
        })
    case errors.Is(err, booking.ErrAuthorizationRequired):
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authorization_required", "message": "please log in to continue"})
    case errors.Is(err, booking.ErrInvalidTransition):
        return c.JSON(http.StatusConflict, echo.Map{"error": "invalid_transition", "message": err.Error()})
    case errors.Is(err, booking.ErrPaymentInProgress):
        return c.JSON(http.StatusConflict, echo.Map{"error": "payment_in_progress", "message": err.Error()})
    case errors.Is(err, booking.ErrNoTicket):
        return c.JSON(http.StatusConflict, echo.Map{"error": "no_ticket", "message": err.Error()})
    case errors.Is(err, booking.ErrFlowNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "flow_not_found", "message": err.Error()})
    case errors.Is(err, repository.ErrMovieNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "movie_not_found", "message": err.Error()})
    case errors.Is(err, repository.ErrInvalidReview):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation_error", "field": "review", "message": err.Error()})
    default:
        c.Logger().Error(err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": "internal server error"})
    }
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad_request", "message": msg})
}
