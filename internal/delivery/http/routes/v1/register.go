package v1

import (
	"skill-swap/internal/config"
	"skill-swap/internal/database"
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/observability"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/repository"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Deps are the process-wide resources the v1 API is built from.
type Deps struct {
	Config      config.Config
	DB          database.DB
	Revocations middleware.RevocationChecker
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(deps.Config.JWT.Secret, deps.Config.JWT.Issuer)
	authMw := middleware.NewAuthMiddleware(jwtSvc, deps.Revocations)

	skillRepo := repository.NewPostgresSkillRepository(deps.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(deps.DB)
	profileRepo := repository.NewPostgresProfileRepository(deps.DB)
	swapRepo := repository.NewPostgresSwapRepository(deps.DB)
	discoveryRepo := repository.NewPostgresDiscoveryRepository(deps.DB)

	skillUC := usecase.NewSkillUsecase(skillRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, userSkillRepo)
	userSkillUC := usecase.NewUserSkillUsecase(profileRepo, userSkillRepo)
	discoveryUC := usecase.NewDiscoveryUsecase(discoveryRepo, userSkillRepo, skillRepo)
	swapUC := usecase.NewSwapUsecase(swapRepo, profileRepo, userSkillRepo, usecase.SwapOptions{
		StrictTransitions: deps.Config.Swap.StrictTransitions,
		Recorder:          observability.SwapRecorder{},
	})

	h := handlers{
		health:  handler.NewHealthHandler(deps.DB),
		browse:  handler.NewBrowseHandler(discoveryUC, profileUC),
		profile: handler.NewProfileHandler(profileUC, userSkillUC, skillUC),
		skills:  handler.NewSkillHandler(skillUC),
		swaps:   handler.NewSwapHandler(swapUC),
	}

	h.mountPublic(r)
	// Every route registered after this group passes through auth, so public
	// routes must be mounted above.
	h.mountProtected(r.Group("", authMw.Middleware()))
}

type handlers struct {
	health  *handler.HealthHandler
	browse  *handler.BrowseHandler
	profile *handler.ProfileHandler
	skills  *handler.SkillHandler
	swaps   *handler.SwapHandler
}

func (h handlers) mountPublic(r fiber.Router) {
	h.health.RegisterRoutes(r)
	h.browse.RegisterRoutes(r)
	h.profile.RegisterRoutes(r, nil)
	h.skills.RegisterRoutes(r, nil)
}

// mountProtected expects r to already carry the auth middleware.
func (h handlers) mountProtected(r fiber.Router) {
	h.profile.RegisterRoutes(nil, r)
	h.skills.RegisterRoutes(nil, r)
	h.swaps.RegisterRoutes(r)
}
