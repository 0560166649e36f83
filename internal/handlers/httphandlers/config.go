package httphandlers

import (
	"github.com/gin-gonic/gin"
	"gitlab.com/TitanInd/crowdfund-client/internal/config"
)

func (h *HTTPHandler) GetConfig(ctx *gin.Context) {
	res := ConfigResponse{
		Version:         config.BuildVersion,
		ContractAddress: h.contractAddress,
		Config:          h.config.GetSanitized(),
	}

	owner, err := h.chain.GetPlatformOwner(ctx.Request.Context())
	if err != nil {
		h.log.Warnf("cannot read platform owner: %s", err)
	} else {
		res.PlatformOwner = owner.Hex()
	}

	ctx.JSON(200, res)
}
