package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/api/apidto"
	"github.com/emberesports/crewdesk/pkg/api/apierr"
	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/db"
)

type SlotHandler struct {
	store     db.Database
	directory *people.Directory
	now       func() time.Time
	logger    *zap.Logger
}

func NewSlotHandler(logger *zap.Logger, store db.Database, directory *people.Directory) *SlotHandler {
	return &SlotHandler{
		store:     store,
		directory: directory,
		now:       time.Now,
		logger:    logger,
	}
}

type slotsResp struct {
	Slots []apidto.Slot `json:"slots"`
}

func (h *SlotHandler) ListSlots(c *gin.Context) {
	summaries, err := services.ListSlots(c.Request.Context(), h.store, h.logger, h.now())
	if err != nil {
		writeErr(c, h.logger, "ListSlots", err)
		return
	}

	slots := make([]apidto.Slot, 0, len(summaries))
	for _, s := range summaries {
		slots = append(slots, apidto.FromSlot(s))
	}

	c.JSON(http.StatusOK, slotsResp{Slots: slots})
}

type workloadResp struct {
	Workload []apidto.WorkloadEntry `json:"workload"`
}

func (h *SlotHandler) Workload(c *gin.Context) {
	entries, err := services.ComputeWorkload(c.Request.Context(), h.store, h.logger, h.now())
	if err != nil {
		writeErr(c, h.logger, "Workload", err)
		return
	}

	c.JSON(http.StatusOK, workloadResp{Workload: apidto.FromWorkload(entries, h.directory)})
}

type slotSignupReq struct {
	StartAt  time.Time `json:"startAt"`
	Role     string    `json:"role" binding:"required,oneof=observer producer caster"`
	PersonID int64     `json:"personId" binding:"required,min=1"`
	Style    string    `json:"style"`
}

type slotSignupResult struct {
	EventID string           `json:"eventId"`
	OK      bool             `json:"ok"`
	Event   *apidto.Event    `json:"event,omitempty"`
	Error   *apierr.APIError `json:"error,omitempty"`
}

type slotSignupResp struct {
	StartAt time.Time          `json:"startAt"`
	Results []slotSignupResult `json:"results"`
}

// SignupForSlot signs a person up on every event of a slot. Responds 207 with
// per-event results when any event failed.
func (h *SlotHandler) SignupForSlot(c *gin.Context) {
	var req slotSignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	if req.StartAt.IsZero() {
		badRequest(c, h.logger, errors.New("startAt is required"))
		return
	}

	ref := model.PersonRef{ID: model.PersonID(req.PersonID), Style: req.Style}
	results, err := services.SignupForSlot(c.Request.Context(), h.store, h.logger, h.now(), req.StartAt, model.Role(req.Role), ref)
	if err != nil {
		writeErr(c, h.logger, "SignupForSlot", err)
		return
	}

	resp := slotSignupResp{StartAt: results.StartAt}
	for _, r := range results.Results {
		item := slotSignupResult{EventID: r.EventID, OK: r.Err == nil}
		if r.Err != nil {
			_, apiErr, _ := apierr.Map(r.Err)
			item.Error = &apiErr
		} else {
			dto := apidto.FromEvent(r.Event, h.directory)
			item.Event = &dto
		}
		resp.Results = append(resp.Results, item)
	}

	status := http.StatusOK
	if results.Failed() > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}
