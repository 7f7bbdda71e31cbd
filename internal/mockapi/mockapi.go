// Package mockapi assembles the in-memory records backend: repositories,
// seed data, controllers, middleware and routes.
package mockapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/controllers"
	"github.com/yigit/unirecords/internal/app/repositories"
	"github.com/yigit/unirecords/internal/app/routes"
	"github.com/yigit/unirecords/internal/middleware"
	"github.com/yigit/unirecords/internal/pkg/auth"
	"github.com/yigit/unirecords/internal/pkg/filestorage"
	"github.com/yigit/unirecords/internal/pkg/logger"
	"github.com/yigit/unirecords/internal/pkg/validation"
	"github.com/yigit/unirecords/internal/seed"
	"golang.org/x/crypto/bcrypt"
)

// Options configures the backend
type Options struct {
	// Seed drives the sample data generator; the same seed gives the same data.
	Seed int64
	// Empty skips sample records; the demo logins are still created.
	Empty        bool
	JWTSecret    string
	TokenTTL     time.Duration
	Issuer       string
	PasswordCost int
	// StoragePath archives uploaded import files when set.
	StoragePath string
	// Mode is the gin mode: debug, release or test.
	Mode   string
	Now    func() time.Time
	Logger *zerolog.Logger
}

func (o *Options) setDefaults() {
	if o.JWTSecret == "" {
		o.JWTSecret = "unirecords-dev-secret"
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = 24 * time.Hour
	}
	if o.Issuer == "" {
		o.Issuer = "unirecords.local"
	}
	if o.PasswordCost == 0 {
		o.PasswordCost = auth.BcryptCost
	}
	if o.Mode == "" {
		o.Mode = gin.ReleaseMode
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// API is a ready-to-serve backend
type API struct {
	Router     *gin.Engine
	Repos      *repositories.Repositories
	JWTService *auth.JWTService
	Storage    filestorage.FileStorage
}

// Handler returns the router as an http.Handler.
func (a *API) Handler() http.Handler {
	return a.Router
}

// New builds repositories, loads seed data and mounts every route.
func New(opts Options) (*API, error) {
	opts.setDefaults()
	lgr := logger.Component("mockapi")
	if opts.Logger != nil {
		lgr = *opts.Logger
	}
	if opts.PasswordCost < bcrypt.MinCost {
		return nil, fmt.Errorf("password cost %d below bcrypt minimum", opts.PasswordCost)
	}

	api := &API{Repos: repositories.NewRepositories()}

	data := seed.Data{}
	if !opts.Empty {
		data = seed.Generate(opts.Seed)
	}
	if err := seed.Load(api.Repos, data, opts.PasswordCost, lgr); err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}

	if opts.StoragePath != "" {
		storage, err := filestorage.NewLocalStorage(opts.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		api.Storage = storage
	}

	api.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      opts.JWTSecret,
		AccessTokenExp: opts.TokenTTL,
		TokenIssuer:    opts.Issuer,
	})

	v := validation.NewWithClock(opts.Now)
	ctrls := routes.Controllers{
		Auth:     controllers.NewAuthController(api.Repos.UserRepository, api.JWTService, lgr),
		User:     controllers.NewUserController(api.Repos, v, opts.PasswordCost, lgr),
		Students: controllers.NewStudentController(api.Repos, v, opts.Now, lgr),
		Alumni:   controllers.NewAlumniController(api.Repos, v, lgr),
		Advisors: controllers.NewAdvisorController(api.Repos, v, lgr),
		Projects: controllers.NewProjectController(api.Repos, v, opts.Now, lgr),
		Import:   controllers.NewImportController(api.Repos, api.Storage, bcrypt.MinCost, lgr),
	}

	gin.SetMode(opts.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	routes.SetupRouter(router, ctrls, middleware.NewAuthMiddleware(api.JWTService))
	api.Router = router

	return api, nil
}
