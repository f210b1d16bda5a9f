package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"timetrack-backend/controllers"
	ooohandler "timetrack-backend/lib/ooo"
	"timetrack-backend/middleware"
	apimodels "timetrack-backend/models/api"
	oooapimodels "timetrack-backend/models/api/ooo"
)

type oooApiController struct {
	controllers.BaseAPIController
}

func InitOOOApiRouters(app *fiber.App) {
	controller := oooApiController{}
	app.Route("ooo", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Create
// @Tags OOO
// @Description Schedules an out-of-office period for the current user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 oooapimodels.OOOPeriodData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ooo [post]
func (c *oooApiController) create(ctx *fiber.Ctx) error {
	var payload oooapimodels.OOOPeriodData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := ooohandler.Instance.Create(userID, payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List
// @Tags OOO
// @Description Own OOO periods grouped by active, future and past
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=oooapimodels.CategorizedView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ooo [get]
func (c *oooApiController) list(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	view, err := ooohandler.Instance.List(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "OOO period listing error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Delete
// @Tags OOO
// @Description Cancels a current or future OOO period
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ooo/{id} [delete]
func (c *oooApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = ooohandler.Instance.Delete(userID, id)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
