package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"timetrack-backend/controllers"
	timeentryhandler "timetrack-backend/lib/timeentry"
	"timetrack-backend/middleware"
	apimodels "timetrack-backend/models/api"
	timeentryapimodels "timetrack-backend/models/api/timeentry"
)

type timeEntryApiController struct {
	controllers.BaseAPIController
}

func InitTimeEntryApiRouters(app *fiber.App) {
	controller := timeEntryApiController{}
	app.Route("time-entry", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Create
// @Tags TimeEntry
// @Description Records hours against the week's draft timesheet, creating it when missing
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 timeentryapimodels.EntryData	true	"request body"
// @Success 200 {object} apimodels.Response{data=timeentryapimodels.EntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/time-entry [post]
func (c *timeEntryApiController) create(ctx *fiber.Ctx) error {
	var payload timeentryapimodels.EntryData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := timeentryhandler.Instance.Create(ctx.Context(), userID, payload)
	if err != nil {
		if errors.Is(err, timeentryhandler.ErrTimesheetLocked) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "time entry creation error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Delete
// @Tags TimeEntry
// @Description Removes an entry from the owner's draft timesheet
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/time-entry/{id} [delete]
func (c *timeEntryApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = timeentryhandler.Instance.Delete(ctx.Context(), userID, id)
	if err != nil {
		if errors.Is(err, timeentryhandler.ErrTimesheetLocked) || errors.Is(err, timeentryhandler.ErrEntryNotFound) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "time entry deletion error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
