package routers

import (
	"net/http"

	"github.com/dhbw-wi22a/B2B-Backend/handlers"
	"github.com/dhbw-wi22a/B2B-Backend/mailservice"
	"github.com/dhbw-wi22a/B2B-Backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client, mail *mailservice.Client) *gin.Engine {
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/web", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "OK"})
	})

	//identity is resolved once here; unauthenticated requests pass through
	router.Use(middleware.AuthMiddleware(db))
	{
		//catalog browsing
		router.GET("/web/api/items", func(context *gin.Context) {
			handlers.GetItemListHandler(context, db, rdb)
		})
		router.GET("/web/api/items/:itemID", func(context *gin.Context) {
			handlers.GetItemDataHandler(context, db)
		})
		//order placement, anonymous checkout allowed
		router.POST("/web/api/orders", func(context *gin.Context) {
			handlers.SendOrderHandler(context, db, mail)
		})
		//account self service
		router.POST("/web/api/selfservice/register", func(context *gin.Context) {
			handlers.RegisterHandler(context, db, mail)
		})
		router.POST("/web/api/selfservice/login", func(context *gin.Context) {
			handlers.LoginHandler(context, db)
		})
		router.POST("/web/api/selfservice/password-reset", func(context *gin.Context) {
			handlers.RequestPasswordResetHandler(context, db, mail)
		})
		router.POST("/web/api/selfservice/password-reset/confirm", func(context *gin.Context) {
			handlers.ConfirmPasswordResetHandler(context, db)
		})
		router.GET("/web/api/verify-email/:token", func(context *gin.Context) {
			handlers.VerifyEmailHandler(context, db)
		})
		//invitation resolution by opaque token, the token is the credential
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			router.Handle(method, "/web/api/invitations/:token/accept", func(context *gin.Context) {
				handlers.AcceptInvitationHandler(context, db)
			})
			router.Handle(method, "/web/api/invitations/:token/decline", func(context *gin.Context) {
				handlers.DeclineInvitationHandler(context, db)
			})
		}

		////routes below require a logged-in user
		loginRequired := router.Group("/web/api")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			loginRequired.GET("/selfservice/profile", func(context *gin.Context) {
				handlers.GetUserProfileHandler(context, db)
			})
			loginRequired.PATCH("/selfservice/profile", func(context *gin.Context) {
				handlers.UpdateUserProfileHandler(context, db)
			})
			loginRequired.DELETE("/selfservice/profile", func(context *gin.Context) {
				handlers.DeactivateUserHandler(context, db)
			})
			loginRequired.POST("/selfservice/logout", func(context *gin.Context) {
				handlers.LogOutHandler(context, db)
			})

			loginRequired.GET("/carts", func(context *gin.Context) {
				handlers.GetCartHandler(context, db)
			})
			loginRequired.POST("/carts/set", func(context *gin.Context) {
				handlers.SetCartItemHandler(context, db)
			})
			loginRequired.POST("/carts/clear", func(context *gin.Context) {
				handlers.ClearCartHandler(context, db)
			})

			loginRequired.GET("/orders", func(context *gin.Context) {
				handlers.GetOrderListHandler(context, db)
			})
			loginRequired.GET("/orders/:orderID", func(context *gin.Context) {
				handlers.GetOrderDataHandler(context, db)
			})

			loginRequired.GET("/addresses", func(context *gin.Context) {
				handlers.GetAddressListHandler(context, db)
			})
			loginRequired.POST("/addresses", func(context *gin.Context) {
				handlers.CreateAddressHandler(context, db)
			})
			loginRequired.GET("/addresses/billing", func(context *gin.Context) {
				handlers.GetBillingAddressHandler(context, db)
			})
			loginRequired.PATCH("/addresses/:addressID", func(context *gin.Context) {
				handlers.UpdateAddressHandler(context, db)
			})
			loginRequired.DELETE("/addresses/:addressID", func(context *gin.Context) {
				handlers.DeleteAddressHandler(context, db)
			})

			loginRequired.GET("/groups", func(context *gin.Context) {
				handlers.GetGroupListHandler(context, db)
			})
			loginRequired.POST("/groups", func(context *gin.Context) {
				handlers.CreateGroupHandler(context, db)
			})
			loginRequired.POST("/groups/:groupID/invite", func(context *gin.Context) {
				handlers.InviteMemberHandler(context, db, mail)
			})
			loginRequired.GET("/invitations", func(context *gin.Context) {
				handlers.GetInvitationListHandler(context, db)
			})
			loginRequired.GET("/memberships", func(context *gin.Context) {
				handlers.GetGroupMembershipsHandler(context, db)
			})

			loginRequired.GET("/shopping-lists", func(context *gin.Context) {
				handlers.GetShoppingListsHandler(context, db)
			})
			loginRequired.POST("/shopping-lists", func(context *gin.Context) {
				handlers.CreateShoppingListHandler(context, db)
			})
			loginRequired.POST("/shopping-lists/:listID/add-item", func(context *gin.Context) {
				handlers.AddShoppingListItemHandler(context, db)
			})
			loginRequired.PATCH("/shopping-lists/:listID/update-item", func(context *gin.Context) {
				handlers.UpdateShoppingListItemHandler(context, db)
			})
			loginRequired.DELETE("/shopping-lists/:listID/remove-item", func(context *gin.Context) {
				handlers.RemoveShoppingListItemHandler(context, db)
			})
		}

		////catalog management requires the admin role
		adminRequired := router.Group("/web/api/admin")
		adminRequired.Use(middleware.CheckLoginMiddleware(), middleware.CheckAdminPermissionMiddleware())
		{
			adminRequired.POST("/items", func(context *gin.Context) {
				handlers.CreateItemHandler(context, db, rdb)
			})
			adminRequired.PATCH("/items/:itemID", func(context *gin.Context) {
				handlers.UpdateItemHandler(context, db, rdb)
			})
			adminRequired.DELETE("/items/:itemID", func(context *gin.Context) {
				handlers.DeleteItemHandler(context, db, rdb)
			})
			adminRequired.GET("/categories", func(context *gin.Context) {
				handlers.GetCategoryListHandler(context, db)
			})
		}
	}

	return router
}
