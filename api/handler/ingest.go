package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planday/backend/api/transport"
	"github.com/planday/backend/domain"
	"github.com/planday/backend/pkg/httpcontext"
	"github.com/planday/backend/repository"
	ingestUC "github.com/planday/backend/usecase/ingest"
)

type IngestHandler struct {
	baseHandler
	uc *ingestUC.UseCase
}

func NewIngestHandler(uc *ingestUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *IngestHandler {
	return &IngestHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Ingest free text into a note and extracted tasks
// @Tags ingest
// @Router /api/v1/ingest/text [post]
func (h *IngestHandler) IngestText(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.IngestTextRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.IngestText(stdCtx, userID, req.Title, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, result)
}

// @Summary List notes
// @Tags notes
// @Router /api/v1/notes [get]
func (h *IngestHandler) ListNotes(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.NoteFilter{
		UserID: userID,
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	notes, err := h.uc.ListNotes(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, notes)
}

// @Summary Get note
// @Tags notes
// @Router /api/v1/notes/{id} [get]
func (h *IngestHandler) GetNote(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing note id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	note, err := h.uc.GetNote(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, note)
}

// @Summary Delete note
// @Tags notes
// @Router /api/v1/notes/{id} [delete]
func (h *IngestHandler) DeleteNote(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing note id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteNote(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
