package cameraservice

import (
	"fmt"
	"log/slog"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/models"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/lib/sl"
)

type CameraService struct {
	log            *slog.Logger
	cameraProvider CameraProvider
}

type CameraProvider interface {
	Camera(id string) (models.Camera, error)
}

func New(log *slog.Logger, cameraProvider CameraProvider) *CameraService {
	return &CameraService{
		log:            log,
		cameraProvider: cameraProvider,
	}
}

func (s *CameraService) Camera(id string) (models.Camera, error) {
	const op = "service.cameras.Camera"

	log := s.log.With(
		slog.String("op", op),
		slog.String("camera_id", id),
	)

	cam, err := s.cameraProvider.Camera(id)
	if err != nil {
		log.Error("failed to get camera", sl.Err(err))

		return models.Camera{}, fmt.Errorf("%s: %w", op, err)
	}

	return cam, nil
}
