package projectmanager

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
)

const (
	MsgFillAllFields       = "Please fill in all fields!"
	MsgPositiveGoal        = "Goal and duration must be positive numbers!"
	MsgInvalidContribution = "Please enter a valid project ID and contribution amount!"
	MsgConnectWallet       = "Please connect your wallet first."
)

// CreateProjectForm holds raw form input, goal is in wei and duration in days
type CreateProjectForm struct {
	Title        string `form:"title" json:"title" validate:"required"`
	Description  string `form:"description" json:"description" validate:"required"`
	Goal         string `form:"goal" json:"goal" validate:"required"`
	DurationDays string `form:"duration" json:"durationDays" validate:"required"`
}

// ContributeForm holds raw form input, amount is in wei
type ContributeForm struct {
	ProjectID string `form:"projectId" json:"projectId" validate:"required"`
	Amount    string `form:"amount" json:"amount" validate:"required"`
}

func (f CreateProjectForm) parse(validate *validator.Validate) (goal *big.Int, durationDays *big.Int, err error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	if err := validate.Struct(f); err != nil {
		return nil, nil, lib.NewValidationError(MsgFillAllFields)
	}

	goal, ok := parsePositive(f.Goal)
	if !ok {
		return nil, nil, lib.NewValidationError(MsgPositiveGoal)
	}
	durationDays, ok = parsePositive(f.DurationDays)
	if !ok {
		return nil, nil, lib.NewValidationError(MsgPositiveGoal)
	}
	return goal, durationDays, nil
}

func (f ContributeForm) parse(validate *validator.Validate) (projectID uint64, amount *big.Int, err error) {
	if err := validate.Struct(f); err != nil {
		return 0, nil, lib.NewValidationError(MsgInvalidContribution)
	}

	projectID, err = strconv.ParseUint(strings.TrimSpace(f.ProjectID), 10, 64)
	if err != nil || projectID == 0 {
		return 0, nil, lib.NewValidationError(MsgInvalidContribution)
	}
	amount, ok := parsePositive(f.Amount)
	if !ok {
		return 0, nil, lib.NewValidationError(MsgInvalidContribution)
	}
	return projectID, amount, nil
}

// parsePositive accepts a base-10 integer strictly greater than zero
func parsePositive(s string) (*big.Int, bool) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() <= 0 {
		return nil, false
	}
	return v, true
}
