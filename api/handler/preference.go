package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/planday/backend/api/transport"
	"github.com/planday/backend/domain"
	"github.com/planday/backend/pkg/httpcontext"
	preferenceUC "github.com/planday/backend/usecase/preference"
)

type PreferenceHandler struct {
	baseHandler
	uc *preferenceUC.UseCase
}

func NewPreferenceHandler(uc *preferenceUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get scheduling preferences
// @Tags preferences
// @Router /api/v1/users/preferences [get]
func (h *PreferenceHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	prefs, err := h.uc.Get(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, prefs)
}

// @Summary Update scheduling preferences
// @Tags preferences
// @Router /api/v1/users/preferences [patch]
func (h *PreferenceHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.PreferencesUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	current, err := h.uc.Get(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	applyPreferencePatch(current, req)

	updated, err := h.uc.Update(stdCtx, current)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// applyPreferencePatch overlays set fields onto the stored document.
func applyPreferencePatch(prefs *domain.UserPreferences, req transport.PreferencesUpdateRequest) {
	if req.WorkHoursStart != nil {
		prefs.WorkHoursStart = *req.WorkHoursStart
	}
	if req.WorkHoursEnd != nil {
		prefs.WorkHoursEnd = *req.WorkHoursEnd
	}
	if req.WorkDays != nil {
		prefs.WorkDays = *req.WorkDays
	}
	if req.PreferredBreakDuration != nil {
		prefs.PreferredBreakDuration = *req.PreferredBreakDuration
	}
	if req.CalendarSyncEnabled != nil {
		prefs.CalendarSyncEnabled = *req.CalendarSyncEnabled
	}
	if ns := req.NotificationSettings; ns != nil {
		if ns.Email != nil {
			prefs.NotificationSettings.Email = *ns.Email
		}
		if ns.Push != nil {
			prefs.NotificationSettings.Push = *ns.Push
		}
		if ns.InApp != nil {
			prefs.NotificationSettings.InApp = *ns.InApp
		}
		if ns.ReminderMinutesBefore != nil {
			prefs.NotificationSettings.ReminderMinutesBefore = *ns.ReminderMinutesBefore
		}
	}
	if w := req.PriorityWeights; w != nil {
		if w.Deadline != nil {
			prefs.PriorityWeights.Deadline = *w.Deadline
		}
		if w.Importance != nil {
			prefs.PriorityWeights.Importance = *w.Importance
		}
		if w.Duration != nil {
			prefs.PriorityWeights.Duration = *w.Duration
		}
	}
}
