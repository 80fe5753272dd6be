package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/pkg/api/apidto"
	"github.com/emberesports/crewdesk/pkg/core/people"
	"github.com/emberesports/crewdesk/pkg/core/services"
	"github.com/emberesports/crewdesk/pkg/db"
)

type ScheduleHandler struct {
	store     db.Database
	directory *people.Directory
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewScheduleHandler(logger *zap.Logger, store db.Database, directory *people.Directory, loc *time.Location) *ScheduleHandler {
	return &ScheduleHandler{
		store:     store,
		directory: directory,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

func (h *ScheduleHandler) Selectable(c *gin.Context) {
	events, err := services.SelectableEvents(c.Request.Context(), h.store, h.logger, h.now())
	if err != nil {
		writeErr(c, h.logger, "Selectable", err)
		return
	}

	c.JSON(http.StatusOK, eventsResp{Events: apidto.FromEvents(events, h.directory)})
}

// Text renders the broadcast schedule as plain text
func (h *ScheduleHandler) Text(c *gin.Context) {
	events, err := services.SelectableEvents(c.Request.Context(), h.store, h.logger, h.now())
	if err != nil {
		writeErr(c, h.logger, "ScheduleText", err)
		return
	}

	schedule := services.BuildBroadcastSchedule(events, h.directory, h.loc)
	c.String(http.StatusOK, schedule.Text())
}

func (h *ScheduleHandler) Toggle(c *gin.Context) {
	event, err := services.ToggleInclude(c.Request.Context(), h.store, h.logger, c.Param("id"))
	if err != nil {
		writeErr(c, h.logger, "ToggleSchedule", err)
		return
	}

	c.JSON(http.StatusOK, eventResp{apidto.FromEvent(event, h.directory)})
}
