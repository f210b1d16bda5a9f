package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"timetrack-backend/controllers"
	xlsexport "timetrack-backend/lib/export/xls"
	timesheethandler "timetrack-backend/lib/timesheet"
	"timetrack-backend/middleware"
	apimodels "timetrack-backend/models/api"
	tsapimodels "timetrack-backend/models/api/timesheet"
)

type timesheetApiController struct {
	controllers.BaseAPIController
}

func InitTimesheetApiRouters(app *fiber.App) {
	controller := timesheetApiController{}
	app.Route("timesheet", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("export", controller.export)
			idRoute.Put("submit", controller.submit)
			idRoute.Post("comment", controller.addComment)
			idRoute.Put("approve", middleware.ManagerRequired(), controller.approve)
			idRoute.Put("reject", middleware.ManagerRequired(), controller.reject)
			idRoute.Put("unlock", middleware.AdminRequired(), controller.unlock)
		})
	})
}

var timesheetUserErrors = []error{
	timesheethandler.ErrTimesheetNotFound,
	timesheethandler.ErrAccessDenied,
	timesheethandler.ErrNotOwner,
	timesheethandler.ErrNotDraft,
	timesheethandler.ErrEmptyTimesheet,
	timesheethandler.ErrNotSubmitted,
	timesheethandler.ErrAuthorityDenied,
	timesheethandler.ErrNotLocked,
	timesheethandler.ErrEntryNotInTimesheet,
}

// isUserError separates actionable domain refusals from internal failures.
func isUserError(err error) bool {
	for _, userErr := range timesheetUserErrors {
		if errors.Is(err, userErr) {
			return true
		}
	}
	var windowErr timesheethandler.UnlockWindowError
	return errors.As(err, &windowErr)
}

// @Summary List
// @Tags Timesheet
// @Description Own timesheets, or the whole team's with team_view for managers
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tsapimodels.TsFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]tsapimodels.TimesheetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/timesheet/list [post]
func (c *timesheetApiController) list(ctx *fiber.Ctx) error {
	var payload tsapimodels.TsFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	list, err := timesheethandler.Instance.List(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "timesheet listing error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get
// @Tags Timesheet
// @Description Timesheet with entries and comments
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=tsapimodels.TimesheetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/timesheet/{id} [get]
func (c *timesheetApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := timesheethandler.Instance.GetByID(userID, id)
	if err != nil {
		if isUserError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "timesheet lookup error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Export
// @Tags Timesheet
// @Description Timesheet as an xlsx file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/timesheet/{id}/export [get]
func (c *timesheetApiController) export(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	buf, fileName, err := timesheethandler.ExportXLS(xlsexport.Instance, userID, id)
	if err != nil {
		if isUserError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "timesheet export error")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Submit
// @Tags Timesheet
// @Description Moves the owner's draft timesheet to submitted
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/timesheet/{id}/submit [put]
func (c *timesheetApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = timesheethandler.Instance.Submit(ctx.Context(), userID, id)
	if err != nil {
		if isUserError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "timesheet submit error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Approve
// @Tags Timesheet
// @Description Approves a submitted timesheet and locks it
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/timesheet/{id}/approve [put]
func (c *timesheetApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = timesheethandler.Instance.Approve(ctx.Context(), userID, id)
	if err != nil {
		if isUserError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "timesheet approve error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Reject
// @Tags Timesheet
// @Description Rejects a submitted timesheet with a mandatory comment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tsapimodels.RejectData	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/timesheet/{id}/reject [put]
func (c *timesheetApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tsapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = timesheethandler.Instance.Reject(ctx.Context(), userID, id, payload)
	if err != nil {
		if isUserError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "timesheet reject error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Unlock
// @Tags Timesheet
// @Description Admin override returning a locked timesheet to draft
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tsapimodels.UnlockData	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/timesheet/{id}/unlock [put]
func (c *timesheetApiController) unlock(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tsapimodels.UnlockData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = timesheethandler.Instance.Unlock(ctx.Context(), userID, id, payload)
	if err != nil {
		if isUserError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "timesheet unlock error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Comment
// @Tags Timesheet
// @Description Adds a comment to the timesheet or one of its entries
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tsapimodels.CommentData	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=tsapimodels.CommentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/timesheet/{id}/comment [post]
func (c *timesheetApiController) addComment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tsapimodels.CommentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := timesheethandler.Instance.AddComment(userID, id, payload)
	if err != nil {
		if isUserError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "timesheet comment error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
