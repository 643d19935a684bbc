package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/secondchance/secondchance-backend/internal/handler"
	"github.com/secondchance/secondchance-backend/internal/repository"
	"github.com/secondchance/secondchance-backend/internal/service"
	"github.com/secondchance/secondchance-backend/internal/storage"
	"github.com/secondchance/secondchance-backend/internal/token"
	"gorm.io/gorm"
)

type Options struct {
	JWTSecret  string
	BcryptCost int
	Store      storage.Store
	// UploadDir is served statically under /images when set.
	UploadDir string
}

type Server struct {
	e        *echo.Echo
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

func New(db *gorm.DB, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization", "email"},
	}))

	issuer := token.NewIssuer(opts.JWTSecret)

	userRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(userRepo, issuer, opts.BcryptCost)
	authHandler := handler.NewAuthHandler(authSvc)

	itemRepo := repository.NewItemRepository(db)
	itemSvc := service.NewItemService(itemRepo)
	itemHandler := handler.NewItemHandler(itemSvc, opts.Store)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.PUT("/update", authHandler.Update)
	auth.POST("/login", authHandler.Login)

	e.GET("/items", itemHandler.List)
	e.POST("/items", itemHandler.Create)
	e.GET("/items/:id", itemHandler.Get)
	e.PUT("/items/:id", itemHandler.Update)
	e.DELETE("/items/:id", itemHandler.Delete)

	if opts.UploadDir != "" {
		e.Static("/images", opts.UploadDir)
	}

	return &Server{e: e, itemRepo: itemRepo, userRepo: userRepo}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) SetDB(db *gorm.DB) {
	if s.itemRepo != nil {
		s.itemRepo.SetDB(db)
	}
	if s.userRepo != nil {
		s.userRepo.SetDB(db)
	}
}
