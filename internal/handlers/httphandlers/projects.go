package httphandlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
	"gitlab.com/TitanInd/crowdfund-client/internal/projectmanager"
	"gitlab.com/TitanInd/crowdfund-client/internal/resources/project"
	"golang.org/x/exp/slices"
)

var statuses = []string{
	project.StatusActive.String(),
	project.StatusExpired.String(),
	project.StatusCompleted.String(),
}

// GetProjects returns the latest snapshot, ?status=active,expired narrows it down
func (h *HTTPHandler) GetProjects(ctx *gin.Context) {
	var filter []string
	if q := ctx.Query("status"); q != "" {
		for _, s := range strings.Split(q, ",") {
			s = strings.ToLower(strings.TrimSpace(s))
			if !slices.Contains(statuses, s) {
				ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown status " + s})
				return
			}
			filter = append(filter, s)
		}
	}

	snap := h.projects.Snapshot()
	data := mapSnapshot(snap, h.projects.IsBusy())
	if filter != nil {
		filtered := []ProjectResponse{}
		for _, p := range data.Projects {
			if slices.Contains(filter, p.Status) {
				filtered = append(filtered, p)
			}
		}
		data.Projects = filtered
	}

	ctx.JSON(http.StatusOK, data)
}

// GetActiveProjects asks the contract which projects still accept contributions
func (h *HTTPHandler) GetActiveProjects(ctx *gin.Context) {
	ids, err := h.chain.GetActiveProjects(ctx.Request.Context())
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	if ids == nil {
		ids = []uint64{}
	}
	ctx.JSON(http.StatusOK, ActiveProjectsResponse{ProjectIDs: ids})
}

func (h *HTTPHandler) CreateProject(ctx *gin.Context) {
	var form projectmanager.CreateProjectForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.actions.Submit(ctx.Request.Context(), projectmanager.Intent{
		Kind:   projectmanager.IntentCreateProject,
		Create: form,
	})
	h.respond(ctx, err)
}

func (h *HTTPHandler) Contribute(ctx *gin.Context) {
	var form projectmanager.ContributeForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.actions.Submit(ctx.Request.Context(), projectmanager.Intent{
		Kind:       projectmanager.IntentContribute,
		Contribute: form,
	})
	h.respond(ctx, err)
}

func (h *HTTPHandler) WithdrawFunds(ctx *gin.Context) {
	h.projectAction(ctx, projectmanager.IntentWithdraw)
}

func (h *HTTPHandler) Refund(ctx *gin.Context) {
	h.projectAction(ctx, projectmanager.IntentRefund)
}

func (h *HTTPHandler) projectAction(ctx *gin.Context, kind projectmanager.IntentKind) {
	projectID, err := strconv.ParseUint(ctx.Param("ID"), 10, 64)
	if err != nil || projectID == 0 {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid project id"})
		return
	}

	err = h.actions.Submit(ctx.Request.Context(), projectmanager.Intent{
		Kind:      kind,
		ProjectID: projectID,
	})
	h.respond(ctx, err)
}

func (h *HTTPHandler) Refresh(ctx *gin.Context) {
	refreshCtx := ctx.Request.Context()
	if s := h.sessions.Current(); s != nil {
		refreshCtx = s.Context()
	}
	err := h.projects.Refresh(refreshCtx)
	if errors.Is(err, projectmanager.ErrRefreshSuperseded) {
		err = nil
	}
	h.respond(ctx, err)
}

func mapSnapshot(snap projectmanager.Snapshot, busy bool) SnapshotResponse {
	res := SnapshotResponse{
		Projects: make([]ProjectResponse, 0, len(snap.Projects)),
		Busy:     busy,
	}
	if snap.Account != nil {
		res.Account = snap.Account.Hex()
	}
	if !snap.RefreshedAt.IsZero() {
		res.RefreshedAt = snap.RefreshedAt.Unix()
	}
	for _, p := range snap.Projects {
		res.Projects = append(res.Projects, mapProject(p))
	}
	return res
}

func mapProject(p project.DisplayState) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID,
		Owner:            p.Owner.Hex(),
		OwnerShort:       lib.ShortenAddr(p.Owner),
		Title:            p.Title,
		Description:      p.Description,
		Goal:             p.Goal.String(),
		FundsRaised:      p.FundsRaised.String(),
		RaisedForDisplay: p.RaisedForDisplay.String(),
		UserContribution: p.UserContribution.String(),
		Deadline:         p.Deadline,
		DeadlineTime:     p.DeadlineTime().UTC().Format(timeFormat),
		IsCompleted:      p.IsCompleted,
		Status:           p.Status.String(),
		Badge:            p.Badge(),
		IsOwner:          p.IsOwner,
		CanContribute:    p.CanContribute,
		CanRefund:        p.CanRefund,
		CanWithdraw:      p.CanWithdraw,
	}
}
