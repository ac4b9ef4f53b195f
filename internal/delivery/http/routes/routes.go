package routes

import (
	"github.com/gofiber/fiber/v3"

	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/ws"
)

type Registry struct {
	health *handler.HealthHandler
	auth   *handler.AuthHandler
	score  *handler.ScoreHandler
	upload *handler.UploadHandler
	ws     *ws.Handler
}

func NewRegistry(auth *handler.AuthHandler, score *handler.ScoreHandler, upload *handler.UploadHandler, wsHandler *ws.Handler) *Registry {
	return &Registry{
		health: handler.NewHealthHandler(),
		auth:   auth,
		score:  score,
		upload: upload,
		ws:     wsHandler,
	}
}

// Register mounts every endpoint at the root; the paths are part of the
// public contract, so there is no /api prefix.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	if r.auth != nil {
		r.auth.RegisterRoutes(app)
	}
	if r.score != nil {
		r.score.RegisterRoutes(app)
	}
	if r.upload != nil {
		r.upload.RegisterRoutes(app)
	}
	if r.ws != nil {
		r.ws.RegisterRoutes(app)
	}
}
