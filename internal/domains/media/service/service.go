package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"bistro/config"
	"bistro/infras/otel"
	"bistro/infras/s3"
	"bistro/internal/domains/media/model/dto"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrDeleteMedia = errors.New("failed to delete media")

type Media interface {
	Upload(ctx context.Context, req dto.UploadRequest) (dto.UploadResponse, error)
	Delete(ctx context.Context, req dto.DeleteRequest) error
}

type serviceImpl struct {
	s3   s3.S3
	cfg  *config.Config
	otel otel.Otel
}

func New(s3 s3.S3, cfg *config.Config, otel otel.Otel) Media {
	return &serviceImpl{
		s3:   s3,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadRequest) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if limit := s.cfg.External.S3.MaxUploadMB; limit > 0 {
		if err = validator.ValidateVar(req.File.Size, fmt.Sprintf("maxfilesize=%d", limit)); err != nil {
			return res, err
		}
	}

	kind := req.Kind()
	fileName := uuid.NewString() + strings.ToLower(path.Ext(req.File.Filename))

	url, err := s.s3.UploadFile(ctx, kind+"s", fileName, req.ContentType(), req.Content)
	if err != nil {
		log.Error().Err(err).Str("file", req.File.Filename).Msg("failed to upload media")

		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	res = dto.UploadResponse{
		URL:         url,
		FileName:    fileName,
		ContentType: req.ContentType(),
		Kind:        kind,
		Size:        req.File.Size,
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	keys := make([]string, len(req.URLs))

	for i, url := range req.URLs {
		keys[i] = s.s3.ObjectKeyFromURL(url)
		if keys[i] == constant.Empty {
			return failure.BadRequestFromString(fmt.Sprintf("%s is not hosted on the media host", url)) // nolint:wrapcheck
		}
	}

	failed := 0

	for _, key := range keys {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to delete media")

			failed++
		}
	}

	if failed > 0 {
		return failure.InternalError(fmt.Errorf("%w: %d of %d files", ErrDeleteMedia, failed, len(keys))) // nolint:wrapcheck
	}

	return nil
}
