package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"timetrack-backend/controllers"
	companyhandler "timetrack-backend/lib/company"
	"timetrack-backend/middleware"
	apimodels "timetrack-backend/models/api"
	companyapimodels "timetrack-backend/models/api/company"
)

type companySettingsApiController struct {
	controllers.BaseAPIController
}

func InitCompanySettingsApiRouters(app *fiber.App) {
	controller := companySettingsApiController{}
	app.Route("company/settings", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Put("", middleware.AdminRequired(), controller.update)
	})
}

// @Summary Get
// @Tags Company settings
// @Description Approval policy settings of the current user's company
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=companyapimodels.SettingsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/settings [get]
func (c *companySettingsApiController) get(ctx *fiber.Ctx) error {
	companyID := middleware.GetUserCompany(ctx)
	view, err := companyhandler.Instance.GetSettingsView(companyID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "company settings lookup error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update
// @Tags Company settings
// @Description Updates approval policy settings, every change is audited
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 companyapimodels.SettingsUpdateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/settings [put]
func (c *companySettingsApiController) update(ctx *fiber.Ctx) error {
	var payload companyapimodels.SettingsUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID := middleware.GetUserCompany(ctx)
	userID := middleware.GetUserID(ctx)
	err := companyhandler.Instance.UpdateSettings(companyID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "company settings update error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
