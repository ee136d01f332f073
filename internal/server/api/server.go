// Package api exposes the storefront over HTTP: authentication endpoints
// that issue the session cookie, plus the catalog item/tag CRUD. Handlers
// translate service-level sentinel errors into the fixed single-message
// responses the clients expect.
package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dstepanenko/storefront/internal/logging"
	"github.com/dstepanenko/storefront/internal/server/auth"
	"github.com/dstepanenko/storefront/internal/server/models"
	"github.com/dstepanenko/storefront/internal/server/services"
)

// AuthService is the slice of the user service the HTTP layer needs.
type AuthService interface {
	Register(ctx context.Context, email, password string, profile models.Profile) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	VerifySession(token string) (*auth.Claims, error)
}

// ItemService is the slice of the item service the HTTP layer needs.
type ItemService interface {
	List(ctx context.Context) ([]*models.ItemView, error)
	Get(ctx context.Context, id int64) (*models.ItemView, error)
	Count(ctx context.Context, id int64) (int64, error)
	Create(ctx context.Context, item *models.Item, tagIDs []int64) (*models.ItemView, error)
	Update(ctx context.Context, id int64, patch *services.ItemPatch) (*models.ItemView, error)
	Delete(ctx context.Context, id int64) error
}

// TagService is the slice of the tag service the HTTP layer needs.
type TagService interface {
	List(ctx context.Context) ([]*models.Tag, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

// AvatarService mints presigned URLs for item pictures.
type AvatarService interface {
	GetPresignedPutUrl(ctx context.Context) (string, string, error)
	GetPresignedGetUrl(ctx context.Context, key string) (string, error)
}

// Server wires the services into a fiber application.
type Server struct {
	app     *fiber.App
	logger  logging.Logger
	users   AuthService
	items   ItemService
	tags    TagService
	avatars AvatarService
}

func NewServer(logger logging.Logger, users AuthService, items ItemService, tags TagService, avatars AvatarService) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		logger:  logger,
		users:   users,
		items:   items,
		tags:    tags,
		avatars: avatars,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Post("/register", s.register)
	s.app.Post("/login", s.login)
	s.app.Post("/verify_jwt", s.verifyJWT)
	s.app.Post("/logout", s.logout)

	s.app.Get("/items", s.listItems)
	s.app.Get("/items/:id", s.getItem)
	s.app.Get("/items/:id/count", s.getItemCount)
	s.app.Get("/items/:id/avatar", s.getItemAvatar)

	s.app.Get("/tags", s.listTags)

	// Mutating catalog routes require a valid session.
	s.app.Post("/items", s.sessionMiddleware, s.createItem)
	s.app.Put("/items/:id", s.sessionMiddleware, s.updateItem)
	s.app.Delete("/items/:id", s.sessionMiddleware, s.deleteItem)
	s.app.Post("/items/:id/avatar/upload-url", s.sessionMiddleware, s.createItemAvatarUploadURL)
	s.app.Post("/tags", s.sessionMiddleware, s.createTag)
	s.app.Delete("/tags/:id", s.sessionMiddleware, s.deleteTag)
}

// Listen blocks serving HTTP on addr until Shutdown is called or the
// listener fails.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
