package routes

import (
	"staydesk/constants"
	"staydesk/controllers"
	middlewares "staydesk/middleware"
	"staydesk/services"
	"staydesk/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

func SetupRoutes(router *gin.Engine, ct *services.Container, m *melody.Melody, log logger.Logger) {
	reservationController := controllers.NewReservationController(ct)
	propertyController := controllers.NewPropertyController(ct)
	guestController := controllers.NewGuestController(ct, log)
	operatorController := controllers.NewOperatorController(ct)
	authController := controllers.NewAuthController(ct)
	webhookController := controllers.NewWebhookController(ct, log)
	reviewController := controllers.NewReviewController(ct)

	router.Use(middlewares.ErrorHandler())

	v1 := router.Group("/v1")

	partner := v1.Group("/reservations", middlewares.PartnerKey())
	partner.POST("", reservationController.CreateReservation)
	partner.GET("/:code", reservationController.GetReservation)
	partner.PATCH("/:id/cancel", reservationController.CancelReservation)

	v1.GET("/properties/:slug", propertyController.GetProperty)
	v1.GET("/properties/:slug/rooms", propertyController.ListRoomTypes)
	v1.POST("/properties/:slug/availability", propertyController.SearchAvailability)
	v1.GET("/properties/:slug/reviews", propertyController.ListReviews)

	v1.POST("/auth/login", authController.Login)
	v1.POST("/webhooks/payments", webhookController.HandlePayment)

	book := router.Group("/book/:slug", middlewares.SessionMiddleware())
	book.GET("", guestController.GetStep)
	book.POST("/checkout", guestController.Checkout)
	book.POST("/reservations", guestController.CreateReservation)

	router.GET("/review/:token", reviewController.GetForm)
	router.POST("/review/:token", reviewController.Submit)

	anyRole := middlewares.OperatorAuth(ct.Tokens, constants.RoleAdmin, constants.RoleManager, constants.RoleStaff)
	managers := middlewares.OperatorAuth(ct.Tokens, constants.RoleAdmin, constants.RoleManager)
	admins := middlewares.OperatorAuth(ct.Tokens, constants.RoleAdmin)

	op := v1.Group("/operator")
	op.POST("/properties", admins, operatorController.CreateProperty)
	op.POST("/operators", managers, operatorController.CreateOperator)

	res := op.Group("/reservations", anyRole)
	res.GET("/:id", operatorController.GetReservation)
	res.POST("/:id/confirm", operatorController.Confirm)
	res.POST("/:id/check-in", operatorController.CheckIn)
	res.POST("/:id/check-out", operatorController.CheckOut)
	res.POST("/:id/no-show", operatorController.NoShow)
	res.POST("/:id/cancel", operatorController.Cancel)
	res.POST("/:id/capture", managers, operatorController.Capture)
	res.POST("/:id/refund", managers, operatorController.Refund)

	prop := op.Group("/properties/:propertyId", anyRole, middlewares.PropertyScope("propertyId"))
	prop.GET("/calendar", operatorController.Calendar)
	prop.GET("/room-types", operatorController.ListRoomTypes)
	prop.PUT("/room-types/:roomTypeId/rates/:date", managers, operatorController.SetRate)
	prop.PUT("/room-types/:roomTypeId/blocks/:date", operatorController.SetBlock)
	prop.POST("/room-types", managers, operatorController.CreateRoomType)
	prop.POST("/room-types/:roomTypeId/rate-plans", managers, operatorController.CreateRatePlan)
	prop.POST("/rooms", managers, operatorController.AddRoom)
	prop.DELETE("/rooms/:roomId", managers, operatorController.RemoveRoom)
	prop.POST("/backfill", managers, operatorController.Backfill)
	prop.POST("/api-key", managers, operatorController.RotateAPIKey)
	prop.GET("/reviews", operatorController.ListReviews)
	prop.POST("/reviews/:reviewId/publish", managers, operatorController.PublishReview)
	prop.POST("/reviews/:reviewId/hide", managers, operatorController.HideReview)
	prop.PUT("/reviews/:reviewId/response", managers, operatorController.RespondReview)

	router.GET("/ws", anyRole, controllers.Connect(m))
}
