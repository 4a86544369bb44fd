package camerahandler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/api/response"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/sl"
)

type CameraHandler struct {
	log            *slog.Logger
	cameraProvider CameraProvider
}

type CameraProvider interface {
	Camera(id string) (models.Camera, error)
}

func New(log *slog.Logger, cameraProvider CameraProvider) *CameraHandler {
	return &CameraHandler{
		log:            log,
		cameraProvider: cameraProvider,
	}
}

// Camera handles GET /cameras/{id}.
func (h *CameraHandler) Camera(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cameras.Camera"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("camera id is required", middleware.GetReqID(r.Context())))

		return
	}

	cam, err := h.cameraProvider.Camera(id)
	if err != nil {
		if errors.Is(err, errs.ErrCameraNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(fmt.Sprintf("camera not found: %s", id), middleware.GetReqID(r.Context())))

			return
		}

		log.Error("failed to get camera", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get camera", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, cam)
}
