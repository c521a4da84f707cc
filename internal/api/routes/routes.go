package routes

import (
	"froot-boot-api-server/config"
	"froot-boot-api-server/internal/api/handlers"
	"froot-boot-api-server/internal/api/middleware"
	"froot-boot-api-server/internal/auth"
	"froot-boot-api-server/internal/events"
	"froot-boot-api-server/internal/models"
	"froot-boot-api-server/internal/s3"
	"froot-boot-api-server/internal/service"
	"froot-boot-api-server/internal/socket"
	"froot-boot-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Services bundles the per-entity services built over one database.
type Services struct {
	Locations *service.Service[models.Location]
	Members   *service.Service[models.Member]
	Farms     *service.Service[models.Farm]
	Products  *service.Service[models.Product]
	WebHooks  *service.Service[models.WebHook]
}

// NewServices wires a store and service for every entity.
func NewServices(db *mongo.Database) *Services {
	return &Services{
		Locations: service.New(store.Locations(db)),
		Members:   service.New(store.Members(db)),
		Farms:     service.New(store.Farms(db)),
		Products:  service.New(store.Products(db)),
		WebHooks:  service.New(store.WebHooks(db)),
	}
}

// SetupRouter builds the route tree. Reads, login, member registration
// and webhook registration are public; every other mutation requires a
// bearer token.
func SetupRouter(
	cfg config.Config,
	svcs *Services,
	tokens *auth.TokenIssuer,
	bus *events.Bus,
	uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	basePath := cfg.Server.BasePath

	rootHandler := &handlers.RootHandler{BasePath: basePath}
	locationHandler := &handlers.LocationHandler{Locations: svcs.Locations, Members: svcs.Members, BasePath: basePath}
	memberHandler := &handlers.MemberHandler{Members: svcs.Members, Farms: svcs.Farms, Tokens: tokens, BasePath: basePath}
	farmHandler := &handlers.FarmHandler{Farms: svcs.Farms, BasePath: basePath}
	productHandler := &handlers.ProductHandler{Products: svcs.Products, Bus: bus, Uploader: uploader, BasePath: basePath}
	webHookHandler := &handlers.WebHookHandler{WebHooks: svcs.WebHooks, BasePath: basePath}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Tokens: tokens}

	authenticate := middleware.Authenticate(tokens)

	api := router.Group(basePath)
	{
		api.GET("/", rootHandler.Get)
		api.GET("/ws", webSocketHandler.ServeWs)

		locations := api.Group("/locations")
		{
			locations.GET("/", locationHandler.FindAll)
			locations.POST("/", locationHandler.Create)

			keyed := locations.Group("/:key", locationHandler.LoadLocation())
			{
				keyed.GET("", locationHandler.Find)
				keyed.GET("/members", locationHandler.FindMembersByLocation)
				keyed.PUT("", authenticate, locationHandler.Update)
				keyed.DELETE("", authenticate, locationHandler.Delete)
			}
		}

		members := api.Group("/members")
		{
			members.POST("/login", memberHandler.Login)
			members.GET("/", memberHandler.FindAll)
			members.POST("/", memberHandler.Create)

			member := members.Group("/:id", memberHandler.LoadMember())
			{
				member.GET("", memberHandler.Find)
				member.GET("/farms", memberHandler.FindFarmsByMember)
				member.PUT("", authenticate, memberHandler.Update)
				member.PATCH("", authenticate, memberHandler.Patch)
				member.DELETE("", authenticate, memberHandler.Delete)

				member.POST("/farms", authenticate, farmHandler.Create)

				farm := member.Group("/farms/:farmId", farmHandler.LoadFarm())
				{
					farm.GET("", farmHandler.Find)
					farm.PUT("", authenticate, farmHandler.Update)
					farm.PATCH("", authenticate, farmHandler.Patch)
					farm.DELETE("", authenticate, farmHandler.Delete)

					farm.GET("/products", productHandler.FindProductsByFarm)
					farm.POST("/products", authenticate, productHandler.Create)

					product := farm.Group("/products/:productId", productHandler.LoadProduct())
					{
						product.GET("", productHandler.Find)
						product.PUT("", authenticate, productHandler.Update)
						product.PATCH("", authenticate, productHandler.Patch)
						product.DELETE("", authenticate, productHandler.Delete)
						product.POST("/photo", authenticate, productHandler.UploadPhoto)
					}
				}
			}
		}

		webhooks := api.Group("/webhooks")
		{
			webhooks.GET("/", webHookHandler.FindAll)
			webhooks.POST("/", webHookHandler.Register)
			webhooks.POST("/register", webHookHandler.Register)
			webhooks.DELETE("/:id", authenticate, webHookHandler.Unregister)
		}
	}

	return router
}
