package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/api/apidto"
	"github.com/emberesports/crewdesk/pkg/api/apierr"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/core/suggest/criteria"
	"github.com/emberesports/crewdesk/pkg/db"
)

type EventHandler struct {
	store     db.Database
	directory *people.Directory
	notify    *services.Notifications
	now       func() time.Time
	logger    *zap.Logger
}

func NewEventHandler(logger *zap.Logger, store db.Database, directory *people.Directory, notify *services.Notifications) *EventHandler {
	return &EventHandler{
		store:     store,
		directory: directory,
		notify:    notify,
		now:       time.Now,
		logger:    logger,
	}
}

type eventResp struct {
	Event apidto.Event `json:"event"`
}

type eventsResp struct {
	Events []apidto.Event `json:"events"`
}

// ListEvents returns the active events from ?from (RFC3339, default now) with derived coverage
func (h *EventHandler) ListEvents(c *gin.Context) {
	from := h.now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("invalid from parameter", zap.String("from", raw), zap.Error(err))
			apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.Invalid("from must be an RFC3339 timestamp"))
			return
		}
		from = parsed
	}

	rows, err := services.Coverage(c.Request.Context(), h.store, h.logger, h.directory, db.ActiveFilter(from))
	if err != nil {
		writeErr(c, h.logger, "ListEvents", err)
		return
	}

	events := make([]apidto.Event, 0, len(rows))
	for i := range rows {
		events = append(events, apidto.FromEvent(&rows[i].Event, h.directory))
	}

	c.JSON(http.StatusOK, eventsResp{Events: events})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, h.logger, "GetEvent", err)
		return
	}

	c.JSON(http.StatusOK, eventResp{apidto.FromEvent(event, h.directory)})
}

const defaultSuggestionLimit = 3

type suggestionsResp struct {
	EventID     string              `json:"eventId"`
	Suggestions []apidto.Suggestion `json:"suggestions"`
}

// Suggestions ranks the signups for each open role; ?limit caps candidates per role (0 for all)
func (h *EventHandler) Suggestions(c *gin.Context) {
	limit := defaultSuggestionLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.logger.Warn("invalid limit parameter", zap.String("limit", raw))
			apierr.WriteApiErrJSON(c, http.StatusBadRequest, apierr.Invalid("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	id := c.Param("id")
	suggestions, err := services.SuggestAssignments(c.Request.Context(), h.store, h.logger, id, h.now(), criteria.Defaults(), limit)
	if err != nil {
		writeErr(c, h.logger, "Suggestions", err)
		return
	}

	c.JSON(http.StatusOK, suggestionsResp{EventID: id, Suggestions: apidto.FromSuggestions(suggestions, h.directory)})
}

type signupReq struct {
	Role     string `json:"role" binding:"required,oneof=observer producer caster"`
	PersonID int64  `json:"personId" binding:"required,min=1"`
	Style    string `json:"style"`
}

func (r signupReq) ref() model.PersonRef {
	return model.PersonRef{ID: model.PersonID(r.PersonID), Style: r.Style}
}

type withdrawReq struct {
	Role     string `json:"role" binding:"required,oneof=observer producer caster"`
	PersonID int64  `json:"personId" binding:"required,min=1"`
}

func (h *EventHandler) AddSignup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	event, err := services.AddSignup(c.Request.Context(), h.store, h.logger, c.Param("id"), model.Role(req.Role), req.ref())
	if err != nil {
		writeErr(c, h.logger, "AddSignup", err)
		return
	}

	c.JSON(http.StatusOK, eventResp{apidto.FromEvent(event, h.directory)})
}

func (h *EventHandler) RemoveSignup(c *gin.Context) {
	var req withdrawReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	event, err := services.RemoveSignup(c.Request.Context(), h.store, h.logger, c.Param("id"), model.Role(req.Role), model.PersonID(req.PersonID))
	if err != nil {
		writeErr(c, h.logger, "RemoveSignup", err)
		return
	}

	c.JSON(http.StatusOK, eventResp{apidto.FromEvent(event, h.directory)})
}

type assignResp struct {
	Event       apidto.Event `json:"event"`
	Changed     bool         `json:"changed"`
	Notified    bool         `json:"notified"`
	NotifyError string       `json:"notifyError,omitempty"`
}

func (h *EventHandler) Assign(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	result, err := services.Assign(c.Request.Context(), h.store, h.logger, h.notify, c.Param("id"), model.Role(req.Role), req.ref())
	if err != nil {
		writeErr(c, h.logger, "Assign", err)
		return
	}

	resp := assignResp{
		Event:    apidto.FromEvent(result.Event, h.directory),
		Changed:  result.Changed,
		Notified: result.Notified,
	}
	if result.NotifyErr != nil {
		resp.NotifyError = result.NotifyErr.Error()
	}

	c.JSON(http.StatusOK, resp)
}

type unassignReq struct {
	Role     string `json:"role" binding:"required,oneof=observer producer caster"`
	PersonID int64  `json:"personId" binding:"omitempty,min=1"`
	Index    *int   `json:"index" binding:"omitempty,min=0,max=1"`
}

type unassignResp struct {
	Event   apidto.Event   `json:"event"`
	Removed *apidto.Person `json:"removed"`
}

// Unassign removes by personId, falling back to the occupant at index
func (h *EventHandler) Unassign(c *gin.Context) {
	var req unassignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	if req.PersonID == 0 && req.Index == nil {
		badRequest(c, h.logger, errors.New("personId or index is required"))
		return
	}

	index := -1
	if req.Index != nil {
		index = *req.Index
	}

	event, removed, err := services.Unassign(c.Request.Context(), h.store, h.logger, c.Param("id"), model.Role(req.Role), model.PersonID(req.PersonID), index)
	if err != nil {
		writeErr(c, h.logger, "Unassign", err)
		return
	}

	resp := unassignResp{Event: apidto.FromEvent(event, h.directory)}
	if removed != nil {
		p := apidto.FromRef(*removed, h.directory)
		resp.Removed = &p
	}

	c.JSON(http.StatusOK, resp)
}

type priorityReq struct {
	Priority string `json:"priority" binding:"required,oneof=none low medium high urgent"`
}

func (h *EventHandler) SetPriority(c *gin.Context) {
	var req priorityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	event, err := services.SetPriority(c.Request.Context(), h.store, h.logger, c.Param("id"), model.Priority(req.Priority))
	if err != nil {
		writeErr(c, h.logger, "SetPriority", err)
		return
	}

	c.JSON(http.StatusOK, eventResp{apidto.FromEvent(event, h.directory)})
}
