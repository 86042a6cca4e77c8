package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"mergingtonactivities/internal/delivery/http/helpers"
	"mergingtonactivities/internal/domain"
)

// Error details returned to clients.
const (
	detailActivityNotFound = "Activity not found"
	detailAlreadySignedUp  = "Student already signed up for this activity"
	detailNotRegistered    = "Student is not registered for this activity"
	detailActivityFull     = "Activity is full"
	detailEmailRequired    = "email is required"
	detailInvalidForm      = "invalid form body"
	detailInternalError    = "internal server error"
)

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
	}
}

// ListActivities godoc
// @Summary List all activities
// @Description Returns every activity keyed by name, with description, schedule, capacity and current participants.
// @Tags activities
// @Produce json
// @Success 200 {object} map[string]domain.Activity
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities [get]
func (c *ActivityController) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := c.Service.ListActivities(r.Context())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if activities == nil {
		activities = map[string]*domain.Activity{}
	}
	helpers.WriteJSON(w, http.StatusOK, activities)
}

// GetActivity godoc
// @Summary Get one activity
// @Tags activities
// @Produce json
// @Param name path string true "Activity name"
// @Success 200 {object} domain.Activity
// @Failure 404 {object} helpers.ErrorResponse "Activity not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{name} [get]
func (c *ActivityController) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := c.Service.GetActivity(r.Context(), r.PathValue("name"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, activity)
}

// Signup godoc
// @Summary Sign up for an activity
// @Description Adds the student's email to the activity's participants.
// @Tags activities
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name path string true "Activity name"
// @Param email formData string true "Student email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse "already signed up, activity full, or missing email"
// @Failure 404 {object} helpers.ErrorResponse "Activity not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{name}/signup [post]
func (c *ActivityController) Signup(w http.ResponseWriter, r *http.Request) {
	email, ok := formEmail(w, r)
	if !ok {
		return
	}
	msg, err := c.Service.Signup(r.Context(), r.PathValue("name"), email)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, msg)
}

// Unregister godoc
// @Summary Unregister from an activity
// @Description Removes the student's email from the activity's participants.
// @Tags activities
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name path string true "Activity name"
// @Param email formData string true "Student email"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse "not registered or missing email"
// @Failure 404 {object} helpers.ErrorResponse "Activity not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /activities/{name}/unregister [post]
func (c *ActivityController) Unregister(w http.ResponseWriter, r *http.Request) {
	email, ok := formEmail(w, r)
	if !ok {
		return
	}
	msg, err := c.Service.Unregister(r.Context(), r.PathValue("name"), email)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, msg)
}

// formEmail reads the email field from the form body or query string. On failure it
// writes a 400 and returns false.
func formEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, detailInvalidForm)
		return "", false
	}
	email := r.Form.Get("email")
	if email == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, detailEmailRequired)
		return "", false
	}
	return email, true
}

func (c *ActivityController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, detailActivityNotFound)
	case errors.Is(err, domain.ErrAlreadyRegistered):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailAlreadySignedUp)
	case errors.Is(err, domain.ErrNotRegistered):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailNotRegistered)
	case errors.Is(err, domain.ErrActivityFull):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailActivityFull)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, detailEmailRequired)
	default:
		c.internalError(w, r, err)
	}
}

func (c *ActivityController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, detailInternalError)
}
