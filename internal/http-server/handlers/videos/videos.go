package videohandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/api/response"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/sl"
)

const defaultLimit = 10

type VideoHandler struct {
	log           *slog.Logger
	videoProvider VideoProvider
}

type VideoProvider interface {
	Search(q, tagsCsv string, limit int) ([]models.Video, error)
	Tags() ([]string, error)
	Bulk(ids []string) ([]models.Video, error)
}

func New(log *slog.Logger, videoProvider VideoProvider) *VideoHandler {
	return &VideoHandler{
		log:           log,
		videoProvider: videoProvider,
	}
}

type SearchRequest struct {
	Q     string
	Tags  string
	Limit int `validate:"min=1,max=50"`
}

type BulkRequest struct {
	Videos []string `json:"videos"`
}

// Search handles GET /videos?q=&tags=&limit=.
func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.videos.Search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req := SearchRequest{
		Q:     r.URL.Query().Get("q"),
		Tags:  r.URL.Query().Get("tags"),
		Limit: defaultLimit,
	}

	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			log.Error("invalid limit", slog.String("limit", rawLimit))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("limit must be an integer", middleware.GetReqID(r.Context())))

			return
		}

		req.Limit = limit
	}

	if err := validator.New().Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))

		return
	}

	videos, err := h.videoProvider.Search(req.Q, req.Tags, req.Limit)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to search videos", middleware.GetReqID(r.Context())))

		return
	}

	if videos == nil {
		videos = []models.Video{}
	}

	render.JSON(w, r, videos)
}

// Tags handles GET /tags.
func (h *VideoHandler) Tags(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.videos.Tags"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tags, err := h.videoProvider.Tags()
	if err != nil {
		log.Error("failed to list tags", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list tags", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, tags)
}

// Bulk handles POST /videos/bulk, preserving request order and
// multiplicity and skipping unknown ids.
func (h *VideoHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.videos.Bulk"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req BulkRequest
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request", ""))

			return
		}

		log.Error("failed to decode request body", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to decode request", middleware.GetReqID(r.Context())))

		return
	}

	log.Info("request body decoded", slog.Int("requested", len(req.Videos)))

	videos, err := h.videoProvider.Bulk(req.Videos)
	if err != nil {
		log.Error("failed to fetch videos", sl.Err(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch videos", middleware.GetReqID(r.Context())))

		return
	}

	render.JSON(w, r, videos)
}
