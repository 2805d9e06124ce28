package media

import (
	"net/http"

	"bistro/infras/otel"
	"bistro/internal/domains/media/model/dto"
	"bistro/internal/domains/media/service"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/validator"
	"bistro/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Media
	otel    otel.Otel
}

func New(service service.Media, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/media", func(routerGroup chi.Router) {
		routerGroup.Post("/upload", handler.Upload)
		routerGroup.Delete("/", handler.Delete)
	})
}

// Upload stores an image or video on the media host.
// @Summary Upload a media file
// @Description Upload a png, jpg, jpeg, webp, mp4 or webm file and receive its public URL.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} response.Data[dto.UploadResponse] "Uploaded file"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/upload [post]
// @Security BearerAuth
func (handler *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Upload")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequestFromString("file is required"))

		return
	}
	defer file.Close()

	req := dto.UploadRequest{
		File:    fileHeader,
		Content: file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate upload")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("File uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// Delete removes files from the media host by URL.
// @Summary Delete media files
// @Tags Media
// @Accept json
// @Produce json
// @Param request body dto.DeleteRequest true "Delete Media Request"
// @Success 200 {object} response.Message "Files deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media [delete]
// @Security BearerAuth
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	req := dto.DeleteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete files")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Files deleted successfully")
}
