package reporthandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/api/response"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/sl"
)

type ReportHandler struct {
	log      *slog.Logger
	reporter Reporter
}

type Reporter interface {
	Report(req models.ReportRequest) (models.Report, error)
}

func New(log *slog.Logger, reporter Reporter) *ReportHandler {
	return &ReportHandler{
		log:      log,
		reporter: reporter,
	}
}

type Response struct {
	Message  string `json:"message"`
	User     string `json:"user"`
	Location string `json:"location"`
	MovieID  string `json:"movieId"`
	URL      string `json:"url"`
}

// Report handles POST /report: capture a clip from the camera at the
// reported location, publish it, and register its metadata.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reports.Report"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ReportRequest
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

	log.Info("request body decoded", slog.String("user", req.User), slog.String("location", req.Location))

	if err := validator.New().Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)

		log.Error("invalid request", sl.Err(err))

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))

		return
	}

	report, err := h.reporter.Report(req)
	if err != nil {
		requestID := middleware.GetReqID(r.Context())

		switch {
		case errors.Is(err, errs.ErrCaptureUnavailable):
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("failed to fetch video from camera", requestID))
		case errors.Is(err, errs.ErrStoreUnavailable):
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("database is unavailable", requestID))
		case errors.Is(err, errs.ErrUploadFailed):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to upload video", requestID))
		case errors.Is(err, errs.ErrWriteToDB):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save video metadata", requestID))
		default:
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process report", requestID))
		}

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message:  "アゲ報告を受け付けました",
		User:     report.User,
		Location: report.Location,
		MovieID:  report.MovieID,
		URL:      report.URL,
	})
}
