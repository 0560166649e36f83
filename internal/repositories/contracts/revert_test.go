package contracts

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
)

type dataError struct {
	msg  string
	data interface{}
}

func (e *dataError) Error() string          { return e.msg }
func (e *dataError) ErrorData() interface{} { return e.data }

func encodeRevert(t *testing.T, reason string) string {
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	// Error(string) selector
	return hexutil.Encode(append([]byte{0x08, 0xc3, 0x79, 0xa0}, packed...))
}

func TestDecodeRevertReason(t *testing.T) {
	err := decodeRevert(&dataError{msg: "execution reverted", data: encodeRevert(t, "Only owner can withdraw")})

	var revertErr *RevertError
	require.ErrorAs(t, err, &revertErr)
	require.Equal(t, "Only owner can withdraw", revertErr.Reason)
}

func TestDecodeRevertKeepsOtherErrors(t *testing.T) {
	plain := errors.New("connection refused")
	require.Equal(t, plain, decodeRevert(plain))

	garbage := &dataError{msg: "execution reverted", data: "0x1234"}
	require.Equal(t, error(garbage), decodeRevert(garbage))
}

func TestSubmitSurfacesRevertReason(t *testing.T) {
	sender := &txSenderMock{err: &dataError{msg: "execution reverted", data: encodeRevert(t, "Project is expired")}}
	g := newTestGateway(NewEthClientMock(), sender)

	_, err := g.SubmitRefund(context.Background(), backerAddr, 1)

	var remoteErr *lib.RemoteCallError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, "execution reverted: Project is expired", remoteErr.Message())
}
