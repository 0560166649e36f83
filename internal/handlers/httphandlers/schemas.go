package httphandlers

import (
	"gitlab.com/TitanInd/crowdfund-client/internal/notify"
)

const timeFormat = "2006-01-02 15:04:05 MST"

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ConfigResponse struct {
	Version         string
	ContractAddress string
	PlatformOwner   string `json:",omitempty"`
	Config          interface{}
}

type ActiveProjectsResponse struct {
	ProjectIDs []uint64
}

type SnapshotResponse struct {
	Account     string `json:",omitempty"`
	RefreshedAt int64  `json:",omitempty"`
	Busy        bool
	Projects    []ProjectResponse
}

// ProjectResponse carries wei amounts as decimal strings
type ProjectResponse struct {
	ID               uint64
	Owner            string
	OwnerShort       string
	Title            string
	Description      string
	Goal             string
	FundsRaised      string
	RaisedForDisplay string
	UserContribution string
	Deadline         uint64
	DeadlineTime     string
	IsCompleted      bool
	Status           string
	Badge            string
	IsOwner          bool

	CanContribute bool
	CanRefund     bool
	CanWithdraw   bool
}

type AlertResponse struct {
	ID        string
	Message   string
	Level     string
	CreatedAt int64
}

type IndexPage struct {
	ContractAddress string
	Connected       bool
	AccountShort    string
	ContributeTo    string
	RefreshSeconds  int // reloads the page once shown alerts expire, zero without alerts
	Alerts          []AlertResponse
	Snapshot        SnapshotResponse
}

func mapAlerts(alerts []notify.Alert) []AlertResponse {
	res := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		res = append(res, AlertResponse{
			ID:        a.ID.String(),
			Message:   a.Message,
			Level:     string(a.Level),
			CreatedAt: a.CreatedAt.Unix(),
		})
	}
	return res
}
