package httphandlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"gitlab.com/TitanInd/crowdfund-client/internal/config"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
	"gitlab.com/TitanInd/crowdfund-client/internal/notify"
	"gitlab.com/TitanInd/crowdfund-client/internal/projectmanager"
	"gitlab.com/TitanInd/crowdfund-client/internal/session"
)

type Projects interface {
	Snapshot() projectmanager.Snapshot
	Refresh(ctx context.Context) error
	IsBusy() bool
}

type Actions interface {
	Submit(ctx context.Context, intent projectmanager.Intent) error
}

type Sessions interface {
	Current() *session.Session
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context)
}

type Alerts interface {
	Active() []notify.Alert
	Dismiss(id uuid.UUID) bool
	DismissDelay() time.Duration
}

// ChainInfo exposes contract-wide reads that are not part of the project list
type ChainInfo interface {
	GetPlatformOwner(ctx context.Context) (common.Address, error)
	GetActiveProjects(ctx context.Context) ([]uint64, error)
}

type Sanitizable interface {
	GetSanitized() interface{}
}

type HTTPHandler struct {
	projects        Projects
	actions         Actions
	sessions        Sessions
	alerts          Alerts
	chain           ChainInfo
	config          Sanitizable
	contractAddress string
	log             interfaces.ILogger
}

func NewHTTPHandler(projects Projects, actions Actions, sessions Sessions, alerts Alerts, chain ChainInfo, cfg Sanitizable, contractAddress string, log interfaces.ILogger) *gin.Engine {
	handl := &HTTPHandler{
		projects:        projects,
		actions:         actions,
		sessions:        sessions,
		alerts:          alerts,
		chain:           chain,
		config:          cfg,
		contractAddress: contractAddress,
		log:             log,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("index").Funcs(templateFuncs).Parse(indexTemplate)))

	r.GET("/", handl.Index)
	r.GET("/healthcheck", handl.HealthCheck)
	r.GET("/config", handl.GetConfig)
	r.GET("/projects", handl.GetProjects)
	r.GET("/projects/active", handl.GetActiveProjects)
	r.GET("/alerts", handl.GetAlerts)

	r.POST("/projects", handl.CreateProject)
	r.POST("/contributions", handl.Contribute)
	r.POST("/projects/:ID/withdraw", handl.WithdrawFunds)
	r.POST("/projects/:ID/refund", handl.Refund)
	r.POST("/refresh", handl.Refresh)
	r.POST("/session/connect", handl.Connect)
	r.POST("/session/disconnect", handl.Disconnect)
	r.POST("/alerts/:ID/dismiss", handl.DismissAlert)

	r.DELETE("/alerts/:ID", handl.DismissAlert)

	err := r.SetTrustedProxies(nil)
	if err != nil {
		panic(err)
	}

	return r
}

func (h *HTTPHandler) HealthCheck(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status":  "healthy",
		"version": config.BuildVersion,
	})
}

// respond redirects browser form posts back to the page, the outcome is already
// queued as an alert. Other clients get the result as JSON.
func (h *HTTPHandler) respond(ctx *gin.Context, err error) {
	if isFormPost(ctx) {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	if err != nil {
		ctx.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

func isFormPost(ctx *gin.Context) bool {
	switch ctx.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return true
	default:
		return false
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, lib.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, lib.ErrWallet):
		return http.StatusForbidden
	case errors.Is(err, lib.ErrRemoteCall):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
