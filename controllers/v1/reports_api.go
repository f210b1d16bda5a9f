package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"timetrack-backend/controllers"
	reportshandler "timetrack-backend/lib/reports"
	"timetrack-backend/middleware"
	apimodels "timetrack-backend/models/api"
	reportsapimodels "timetrack-backend/models/api/reports"
)

type reportsApiController struct {
	controllers.BaseAPIController
}

func InitReportsApiRouters(app *fiber.App) {
	controller := reportsApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Use(middleware.ManagerRequired())

		router.Post("hours/summary", controller.hoursSummary)
		router.Post("approval/metrics", controller.approvalMetrics)
		router.Post("utilization", controller.utilization)
	})
}

// @Summary Approved hours summary
// @Tags Reports
// @Description Total approved hours, optionally grouped by user or project
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportsapimodels.HoursSummaryFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportsapimodels.HoursSummaryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/hours/summary [post]
func (c *reportsApiController) hoursSummary(ctx *fiber.Ctx) error {
	var payload reportsapimodels.HoursSummaryFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := reportshandler.Instance.HoursSummary(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "hours summary error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Approval metrics
// @Tags Reports
// @Description Timesheet counts per status and the approval rate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportsapimodels.ReportFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportsapimodels.ApprovalMetricsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/approval/metrics [post]
func (c *reportsApiController) approvalMetrics(ctx *fiber.Ctx) error {
	var payload reportsapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := reportshandler.Instance.ApprovalMetrics(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "approval metrics error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Utilization report
// @Tags Reports
// @Description Approved hours against expected weekly hours per active user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 reportsapimodels.UtilizationFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportsapimodels.UtilizationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/utilization [post]
func (c *reportsApiController) utilization(ctx *fiber.Ctx) error {
	var payload reportsapimodels.UtilizationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := reportshandler.Instance.Utilization(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "utilization report error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
