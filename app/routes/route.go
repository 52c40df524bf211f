package routes

import (
	"github.com/gorilla/mux"
	"github.com/shopapp-dev/shopapp/app/configs"
	"github.com/shopapp-dev/shopapp/app/handlers"
	"github.com/shopapp-dev/shopapp/app/middlewares"
	"github.com/shopapp-dev/shopapp/app/repositories"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB) *mux.Router {
	log := configs.Log.Sugar()
	rnd := render.New()

	userRepo := repositories.NewUserRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	storeRepo := repositories.NewStoreRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	imageRepo := repositories.NewImageRepository(db)

	inventorySvc := services.NewInventoryService(db, stockRepo, log)
	orderSvc := services.NewOrderService(db, orderRepo, itemRepo, productRepo, customerRepo, inventorySvc, log)
	catalogSvc := services.NewCatalogService(db, productRepo, storeRepo, categoryRepo, log)
	authSvc := services.NewAuthService(userRepo, customerRepo, log)
	imageSvc := services.NewImageService(imageRepo, productRepo, userRepo, log)
	authorizer := services.NewOwnershipAuthorizer(productRepo, storeRepo)

	authHandler := handlers.NewAuthHandler(authSvc, rnd, log)
	productHandler := handlers.NewProductHandler(catalogSvc, rnd, log)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, rnd, log)
	storeHandler := handlers.NewStoreHandler(storeRepo, rnd, log)
	stockHandler := handlers.NewStockHandler(inventorySvc, rnd, log)
	orderHandler := handlers.NewOrderHandler(orderSvc, rnd, log)
	imageHandler := handlers.NewImageHandler(imageSvc, authorizer, rnd, log)

	router := mux.NewRouter()
	router.Use(middlewares.Recover(log))
	router.Use(middlewares.RequestLogger(log))
	router.Use(middlewares.Identity)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}", productHandler.Get).Methods("GET")
	api.HandleFunc("/categories", categoryHandler.List).Methods("GET")
	api.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.Get).Methods("GET")
	api.HandleFunc("/categories/{id:[0-9]+}/products", productHandler.ListByCategory).Methods("GET")
	api.HandleFunc("/stores", storeHandler.List).Methods("GET")
	api.HandleFunc("/stores/{id:[0-9]+}", storeHandler.Get).Methods("GET")
	api.HandleFunc("/stores/{id:[0-9]+}/products", productHandler.ListByStore).Methods("GET")
	api.HandleFunc("/stores/{storeId:[0-9]+}/stocks", stockHandler.ListByStore).Methods("GET")
	api.HandleFunc("/stocks/{productId:[0-9]+}/{storeId:[0-9]+}", stockHandler.Get).Methods("GET")

	api.HandleFunc("/images/{id:[0-9]+}", imageHandler.Get).Methods("GET")
	api.HandleFunc("/images/product/list/{id:[0-9]+}", imageHandler.ListByProduct).Methods("GET")
	api.HandleFunc("/images/product/{id:[0-9]+}", imageHandler.GetByProduct).Methods("GET")
	api.HandleFunc("/images/products/list", imageHandler.ListByProductIDs).Methods("GET")
	api.HandleFunc("/images/user/{id:[0-9]+}", imageHandler.GetByUser).Methods("GET")

	// Mutations require an authenticated session.
	authed := api.NewRoute().Subrouter()
	authed.Use(middlewares.RequireUser)

	authed.HandleFunc("/products", productHandler.Create).Methods("POST")
	authed.HandleFunc("/products/{id:[0-9]+}", productHandler.Update).Methods("PUT")
	authed.HandleFunc("/products/{id:[0-9]+}", productHandler.Delete).Methods("DELETE")
	authed.HandleFunc("/categories", categoryHandler.Create).Methods("POST")
	authed.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.Update).Methods("PUT")
	authed.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.Delete).Methods("DELETE")
	authed.HandleFunc("/stores", storeHandler.Create).Methods("POST")
	authed.HandleFunc("/stores/{id:[0-9]+}", storeHandler.Update).Methods("PUT")
	authed.HandleFunc("/stores/{id:[0-9]+}", storeHandler.Delete).Methods("DELETE")
	authed.HandleFunc("/stocks/restock", stockHandler.Restock).Methods("POST")

	authed.HandleFunc("/orders", orderHandler.Create).Methods("POST")
	authed.HandleFunc("/orders/{id:[0-9]+}", orderHandler.Get).Methods("GET")
	authed.HandleFunc("/orders/{id:[0-9]+}", orderHandler.Delete).Methods("DELETE")
	authed.HandleFunc("/orders/{id:[0-9]+}/status", orderHandler.ChangeStatus).Methods("PUT")
	authed.HandleFunc("/orders/{id:[0-9]+}/items", orderHandler.AddItem).Methods("POST")
	authed.HandleFunc("/orders/{id:[0-9]+}/items/{itemId:[0-9]+}", orderHandler.UpdateItem).Methods("PUT")
	authed.HandleFunc("/orders/{id:[0-9]+}/items/{itemId:[0-9]+}", orderHandler.RemoveItem).Methods("DELETE")

	authed.HandleFunc("/images", imageHandler.Add).Methods("POST")
	authed.HandleFunc("/images/{id:[0-9]+}", imageHandler.Update).Methods("PUT")
	authed.HandleFunc("/images/{id:[0-9]+}", imageHandler.Delete).Methods("DELETE")

	return router
}
