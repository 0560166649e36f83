package httphandlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
)

func (h *HTTPHandler) Connect(ctx *gin.Context) {
	err := h.sessions.Connect(ctx.Request.Context())
	h.respond(ctx, err)
}

func (h *HTTPHandler) Disconnect(ctx *gin.Context) {
	h.sessions.Disconnect(ctx.Request.Context())
	h.respond(ctx, nil)
}

func (h *HTTPHandler) GetAlerts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mapAlerts(h.alerts.Active()))
}

func (h *HTTPHandler) DismissAlert(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if !h.alerts.Dismiss(id) && !isFormPost(ctx) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: "alert not found"})
		return
	}
	h.respond(ctx, nil)
}

func (h *HTTPHandler) Index(ctx *gin.Context) {
	snap := h.projects.Snapshot()

	data := IndexPage{
		ContractAddress: h.contractAddress,
		Alerts:          mapAlerts(h.alerts.Active()),
		Snapshot:        mapSnapshot(snap, h.projects.IsBusy()),
		ContributeTo:    ctx.Query("contribute"),
	}
	if len(data.Alerts) > 0 {
		data.RefreshSeconds = int(math.Ceil(h.alerts.DismissDelay().Seconds()))
		if data.RefreshSeconds < 1 {
			data.RefreshSeconds = 1
		}
	}
	if s := h.sessions.Current(); s != nil {
		data.Connected = true
		data.AccountShort = lib.ShortenAddr(s.Account)
	}

	ctx.HTML(http.StatusOK, "index", data)
}
