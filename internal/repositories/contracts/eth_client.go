package contracts

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
)

// EthClient is the node connection used for view calls and receipt lookups
type EthClient struct {
	*ethclient.Client
	url string
}

func DialContext(ctx context.Context, nodeURL string) (*EthClient, error) {
	client, err := ethclient.DialContext(ctx, nodeURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", nodeURL, err)
	}
	return &EthClient{Client: client, url: nodeURL}, nil
}

// URL is the node endpoint the client was dialed with
func (c *EthClient) URL() string {
	return c.url
}

var _ EthereumClient = (*EthClient)(nil)
