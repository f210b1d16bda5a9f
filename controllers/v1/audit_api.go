package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"timetrack-backend/controllers"
	timesheethandler "timetrack-backend/lib/timesheet"
	"timetrack-backend/middleware"
	apimodels "timetrack-backend/models/api"
	tsapimodels "timetrack-backend/models/api/timesheet"
)

type auditApiController struct {
	controllers.BaseAPIController
}

func InitAuditApiRouters(app *fiber.App) {
	controller := auditApiController{}
	app.Route("audit", func(router fiber.Router) {
		router.Use(middleware.AdminRequired())

		router.Post("overrides", controller.listOverrides)
	})
}

// @Summary Override list
// @Tags Audit
// @Description Admin override history of the current user's company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tsapimodels.AuditFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]tsapimodels.OverrideView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/audit/overrides [post]
func (c *auditApiController) listOverrides(ctx *fiber.Ctx) error {
	var payload tsapimodels.AuditFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	list, rowCount, err := timesheethandler.Instance.ListOverrides(companyID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "override audit listing error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}
