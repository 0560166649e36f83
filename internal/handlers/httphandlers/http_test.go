package httphandlers

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
	"gitlab.com/TitanInd/crowdfund-client/internal/notify"
	"gitlab.com/TitanInd/crowdfund-client/internal/projectmanager"
	"gitlab.com/TitanInd/crowdfund-client/internal/resources/project"
	"gitlab.com/TitanInd/crowdfund-client/internal/session"
)

var (
	testAccount = common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	testNow     = time.Unix(1_700_000_000, 0)
)

type projectsMock struct {
	snapshot     projectmanager.Snapshot
	refreshCalls int
}

func (m *projectsMock) Snapshot() projectmanager.Snapshot { return m.snapshot }

func (m *projectsMock) Refresh(ctx context.Context) error {
	m.refreshCalls++
	return nil
}

func (m *projectsMock) IsBusy() bool { return false }

type actionsMock struct {
	SubmitFunc func(intent projectmanager.Intent) error
	intents    []projectmanager.Intent
}

func (m *actionsMock) Submit(ctx context.Context, intent projectmanager.Intent) error {
	m.intents = append(m.intents, intent)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(intent)
	}
	return nil
}

type sessionsMock struct {
	current     *session.Session
	connects    int
	disconnects int
}

func (m *sessionsMock) Current() *session.Session { return m.current }

func (m *sessionsMock) Connect(ctx context.Context) error {
	m.connects++
	return nil
}

func (m *sessionsMock) Disconnect(ctx context.Context) { m.disconnects++ }

type configMock struct{}

func (configMock) GetSanitized() interface{} { return map[string]string{"Web": "ok"} }

type chainMock struct {
	owner     common.Address
	active    []uint64
	ownerErr  error
	activeErr error
}

func (m *chainMock) GetPlatformOwner(ctx context.Context) (common.Address, error) {
	return m.owner, m.ownerErr
}

func (m *chainMock) GetActiveProjects(ctx context.Context) ([]uint64, error) {
	return m.active, m.activeErr
}

type fixture struct {
	engine   *gin.Engine
	projects *projectsMock
	actions  *actionsMock
	sessions *sessionsMock
	alerts   *notify.Notifier
	chain    *chainMock
}

func newFixture() *fixture {
	log := lib.NewTestLogger()
	f := &fixture{
		projects: &projectsMock{snapshot: testSnapshot()},
		actions:  &actionsMock{},
		sessions: &sessionsMock{},
		alerts:   notify.NewNotifier(time.Minute, 16, log),
		chain:    &chainMock{owner: testAccount, active: []uint64{1, 3}},
	}
	f.engine = NewHTTPHandler(f.projects, f.actions, f.sessions, f.alerts, f.chain, configMock{}, "0xd5fe7E6eB04450095a078A6E31610F2D7617C205", log)
	return f
}

func testSnapshot() projectmanager.Snapshot {
	owner := common.HexToAddress("0xd5fe7E6eB04450095a078A6E31610F2D7617C205")
	active := project.Project{
		ID: 1, Owner: owner, Title: "Solar", Description: "panels",
		Goal: big.NewInt(1000), Deadline: uint64(testNow.Unix()) + 60, FundsRaised: big.NewInt(10),
	}
	expired := active
	expired.ID, expired.Title, expired.Deadline = 2, "Wind", uint64(testNow.Unix())-60

	return projectmanager.Snapshot{
		Projects: []project.DisplayState{
			project.Reconcile(active, testNow, &testAccount, nil),
			project.Reconcile(expired, testNow, &testAccount, big.NewInt(5)),
		},
		Account:     &testAccount,
		RefreshedAt: testNow,
	}
}

func (f *fixture) do(method, target string, body string, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := newFixture().do(http.MethodGet, "/healthcheck", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "healthy")
}

func TestGetConfig(t *testing.T) {
	w := newFixture().do(http.MethodGet, "/config", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, "0xd5fe7E6eB04450095a078A6E31610F2D7617C205", res.ContractAddress)
}

func TestGetConfigPlatformOwner(t *testing.T) {
	f := newFixture()

	var res ConfigResponse
	require.NoError(t, json.Unmarshal(f.do(http.MethodGet, "/config", "", "").Body.Bytes(), &res))
	require.Equal(t, testAccount.Hex(), res.PlatformOwner)

	f.chain.ownerErr = lib.NewRemoteCallError("platformOwner", context.DeadlineExceeded)
	w := f.do(http.MethodGet, "/config", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "PlatformOwner")
}

func TestGetActiveProjects(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/projects/active", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res ActiveProjectsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, []uint64{1, 3}, res.ProjectIDs)

	f.chain.active = nil
	w = f.do(http.MethodGet, "/projects/active", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"ProjectIDs":[]`)

	f.chain.activeErr = lib.NewRemoteCallError("getActiveProjects", context.DeadlineExceeded)
	require.Equal(t, http.StatusBadGateway, f.do(http.MethodGet, "/projects/active", "", "").Code)
}

func TestGetProjects(t *testing.T) {
	w := newFixture().do(http.MethodGet, "/projects", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, testAccount.Hex(), res.Account)
	require.Len(t, res.Projects, 2)
	require.Equal(t, "active", res.Projects[0].Status)
	require.True(t, res.Projects[0].CanContribute)
	require.Equal(t, "expired", res.Projects[1].Status)
	require.True(t, res.Projects[1].CanRefund)
	require.Equal(t, "5", res.Projects[1].UserContribution)
}

func TestGetProjectsStatusFilter(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodGet, "/projects?status=expired", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Projects, 1)
	require.Equal(t, uint64(2), res.Projects[0].ID)

	w = f.do(http.MethodGet, "/projects?status=completed", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Empty(t, res.Projects)

	w = f.do(http.MethodGet, "/projects?status=pending", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProjectJSON(t *testing.T) {
	f := newFixture()

	w := f.do(http.MethodPost, "/projects", `{"title":"Solar","description":"panels","goal":"1000","durationDays":"30"}`, "application/json")

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.actions.intents, 1)
	intent := f.actions.intents[0]
	require.Equal(t, projectmanager.IntentCreateProject, intent.Kind)
	require.Equal(t, "Solar", intent.Create.Title)
	require.Equal(t, "30", intent.Create.DurationDays)
}

func TestCreateProjectFormRedirects(t *testing.T) {
	f := newFixture()
	f.actions.SubmitFunc = func(intent projectmanager.Intent) error {
		return lib.NewValidationError("Please fill in all fields!")
	}

	form := url.Values{"title": {""}, "description": {"d"}, "goal": {"1"}, "duration": {"1"}}
	w := f.do(http.MethodPost, "/projects", form.Encode(), "application/x-www-form-urlencoded")

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}

func TestActionErrorStatusCodes(t *testing.T) {
	f := newFixture()
	body := `{"projectId":"1","amount":"10"}`

	f.actions.SubmitFunc = func(projectmanager.Intent) error { return lib.NewValidationError("bad") }
	require.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/contributions", body, "application/json").Code)

	f.actions.SubmitFunc = func(projectmanager.Intent) error { return lib.NewWalletError("no wallet", nil) }
	require.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/contributions", body, "application/json").Code)

	f.actions.SubmitFunc = func(projectmanager.Intent) error {
		return lib.NewRemoteCallError("contribute", context.DeadlineExceeded)
	}
	require.Equal(t, http.StatusBadGateway, f.do(http.MethodPost, "/contributions", body, "application/json").Code)
}

func TestWithdrawAndRefundRoutes(t *testing.T) {
	f := newFixture()

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/projects/3/withdraw", "", "").Code)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/projects/2/refund", "", "").Code)
	require.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/projects/abc/refund", "", "").Code)

	require.Len(t, f.actions.intents, 2)
	require.Equal(t, projectmanager.IntentWithdraw, f.actions.intents[0].Kind)
	require.Equal(t, uint64(3), f.actions.intents[0].ProjectID)
	require.Equal(t, projectmanager.IntentRefund, f.actions.intents[1].Kind)
	require.Equal(t, uint64(2), f.actions.intents[1].ProjectID)
}

func TestSessionRoutes(t *testing.T) {
	f := newFixture()

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/session/connect", "", "").Code)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/session/disconnect", "", "").Code)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/refresh", "", "").Code)

	require.Equal(t, 1, f.sessions.connects)
	require.Equal(t, 1, f.sessions.disconnects)
	require.Equal(t, 1, f.projects.refreshCalls)
}

func TestAlertsListAndDismiss(t *testing.T) {
	f := newFixture()
	alert := f.alerts.Push(lib.AlertSuccess, "Contribution successful!")

	w := f.do(http.MethodGet, "/alerts", "", "")
	var res []AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, 1)
	require.Equal(t, "success", res[0].Level)

	require.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/alerts/"+alert.ID.String(), "", "").Code)
	require.Empty(t, f.alerts.Active())
	require.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/alerts/"+uuid.NewString(), "", "").Code)
	require.Equal(t, http.StatusBadRequest, f.do(http.MethodDelete, "/alerts/nope", "", "").Code)
}

func TestIndexRendersProjects(t *testing.T) {
	f := newFixture()
	f.sessions.current = session.NewSession(context.Background(), testAccount)
	f.alerts.Push(lib.AlertDanger, "Error processing refund: execution reverted")

	w := f.do(http.MethodGet, "/?contribute=1", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "Solar")
	require.Contains(t, body, "Expired")
	require.Contains(t, body, "/projects/2/refund")
	require.NotContains(t, body, "/withdraw")
	require.Contains(t, body, "execution reverted")
	require.Contains(t, body, lib.ShortenAddr(testAccount))
	require.Contains(t, body, `value="1"`)
}

func TestIndexReloadsWhileAlertsShown(t *testing.T) {
	f := newFixture()

	body := f.do(http.MethodGet, "/", "", "").Body.String()
	require.NotContains(t, body, `http-equiv="refresh"`)

	f.alerts.Push(lib.AlertSuccess, "Project created successfully!")
	body = f.do(http.MethodGet, "/", "", "").Body.String()
	require.Contains(t, body, `<meta http-equiv="refresh" content="60">`)
}
