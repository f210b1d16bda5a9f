package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"timetrack-backend/controllers"
	delegationhandler "timetrack-backend/lib/delegation"
	"timetrack-backend/middleware"
	apimodels "timetrack-backend/models/api"
	delegationapimodels "timetrack-backend/models/api/delegation"
)

type delegationApiController struct {
	controllers.BaseAPIController
}

func InitDelegationApiRouters(app *fiber.App) {
	controller := delegationApiController{}
	app.Route("delegation", func(router fiber.Router) {
		router.Use(middleware.ManagerRequired())

		router.Post("", controller.create)
		router.Get("given", controller.listGiven)
		router.Get("received", controller.listReceived)
		router.Delete(":id", controller.revoke)
	})
}

// @Summary Create
// @Tags Delegation
// @Description Delegates the current user's approval authority for a period
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 delegationapimodels.DelegationData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/delegation [post]
func (c *delegationApiController) create(ctx *fiber.Ctx) error {
	var payload delegationapimodels.DelegationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := delegationhandler.Instance.Create(userID, payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List given
// @Tags Delegation
// @Description Delegations the current user has granted
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]delegationapimodels.DelegationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/delegation/given [get]
func (c *delegationApiController) listGiven(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := delegationhandler.Instance.ListGiven(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "delegation listing error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary List received
// @Tags Delegation
// @Description Delegations granted to the current user
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]delegationapimodels.DelegationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/delegation/received [get]
func (c *delegationApiController) listReceived(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := delegationhandler.Instance.ListReceived(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "delegation listing error")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Revoke
// @Tags Delegation
// @Description Revokes a delegation the current user granted
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/delegation/{id} [delete]
func (c *delegationApiController) revoke(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = delegationhandler.Instance.Revoke(userID, id)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
