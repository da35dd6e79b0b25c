package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planday/backend/api/transport"
	"github.com/planday/backend/domain"
	"github.com/planday/backend/pkg/httpcontext"
	scheduleUC "github.com/planday/backend/usecase/schedule"
)

type ScheduleHandler struct {
	baseHandler
	svc *scheduleUC.Service
}

func NewScheduleHandler(svc *scheduleUC.Service, adapter *httpcontext.Adapter, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		baseHandler: newBaseHandler(adapter, logger),
		svc:         svc,
	}
}

// @Summary Generate the daily schedule
// @Tags schedule
// @Router /api/v1/schedule/generate [post]
func (h *ScheduleHandler) Generate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.GenerateScheduleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Date == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sched, err := h.svc.Generate(stdCtx, userID, req.Date, req.Force)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sched)
}

// @Summary Get the schedule for a date
// @Tags schedule
// @Router /api/v1/schedule/{date} [get]
func (h *ScheduleHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	date, _ := ctx.UserValue("date").(string)
	if date == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing date", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sched, err := h.svc.Get(stdCtx, userID, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sched)
}

// @Summary Apply manual adjustments to a schedule
// @Tags schedule
// @Router /api/v1/schedule/{id}/adjust [post]
func (h *ScheduleHandler) Adjust(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	scheduleID, _ := ctx.UserValue("id").(string)
	if scheduleID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing schedule id", nil))
		return
	}

	var req transport.AdjustScheduleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	delta, err := parseDelta(req)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sched, err := h.svc.Adjust(stdCtx, userID, scheduleID, delta)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sched)
}

func parseDelta(req transport.AdjustScheduleRequest) (scheduleUC.Delta, error) {
	delta := scheduleUC.Delta{Removes: req.Removes}

	for _, mv := range req.Moves {
		entry, err := parseEntry(mv)
		if err != nil {
			return scheduleUC.Delta{}, err
		}
		delta.Moves = append(delta.Moves, entry)
	}
	for _, add := range req.Adds {
		entry, err := parseEntry(add)
		if err != nil {
			return scheduleUC.Delta{}, err
		}
		delta.Adds = append(delta.Adds, entry)
	}
	return delta, nil
}

func parseEntry(p transport.EntryPayload) (domain.ScheduleEntry, error) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return domain.ScheduleEntry{}, domain.WrapError(domain.ErrCodeInvalid, "start_time must be RFC3339", err)
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		return domain.ScheduleEntry{}, domain.WrapError(domain.ErrCodeInvalid, "end_time must be RFC3339", err)
	}
	return domain.ScheduleEntry{
		TaskID: p.TaskID,
		Start:  start,
		End:    end,
		Source: domain.SourceManual,
	}, nil
}
