package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/TitanInd/crowdfund-client/internal/config"
	"gitlab.com/TitanInd/crowdfund-client/internal/handlers/httphandlers"
	"gitlab.com/TitanInd/crowdfund-client/internal/interfaces"
	"gitlab.com/TitanInd/crowdfund-client/internal/lib"
	"gitlab.com/TitanInd/crowdfund-client/internal/notify"
	"gitlab.com/TitanInd/crowdfund-client/internal/projectmanager"
	"gitlab.com/TitanInd/crowdfund-client/internal/repositories/contracts"
	"gitlab.com/TitanInd/crowdfund-client/internal/repositories/wallet"
	"gitlab.com/TitanInd/crowdfund-client/internal/session"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	var cfg config.Config
	err := config.LoadConfig(&cfg, &os.Args)
	if err != nil {
		panic(err)
	}

	newLogger := func(level string) *lib.Logger {
		l, err := lib.NewLogger(lib.LoggerConfig{
			Level:    level,
			Color:    cfg.Log.Color,
			IsProd:   cfg.Log.IsProd,
			JSON:     cfg.Log.JSON,
			FilePath: cfg.LogFilePath(),
		})
		if err != nil {
			panic(err)
		}
		return l
	}

	log := newLogger(cfg.Log.LevelApp)
	rpcLog := newLogger(cfg.Log.LevelRPC)
	sessionLog := newLogger(cfg.Log.LevelSession)

	defer func() {
		_ = log.Sync()
		_ = rpcLog.Sync()
		_ = sessionLog.Sync()
	}()

	log.Infof("crowdfund client %s, contract %s", config.BuildVersion, cfg.Blockchain.ContractAddress)
	log.Debugf("config: %+v", cfg.GetSanitized())

	ctx, cancel := context.WithCancel(context.Background())

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-shutdownChan
		log.Warnf("Received signal: %s", s)
		cancel()

		s = <-shutdownChan
		log.Warnf("Received signal: %s. Forcing exit...", s)
		os.Exit(1)
	}()

	ethClient, err := contracts.DialContext(ctx, cfg.Blockchain.EthNodeAddress)
	if err != nil {
		log.Fatalf("cannot connect to ethereum node: %s", err)
	}
	defer ethClient.Close()
	log.Infof("connected to ethereum node %s", ethClient.URL())

	// the app stays usable read-only when no wallet is reachable
	var sessionWallet session.Wallet
	walletClient, err := wallet.DialContext(ctx, cfg.Wallet.RPCAddress, rpcLog.Named("WALLET"))
	if err != nil {
		log.Warnf("wallet is not available at %s: %s", cfg.Wallet.RPCAddress, err)
	} else {
		defer walletClient.Close()
		sessionWallet = walletClient
	}

	gateway := contracts.NewCrowdfundEthereum(
		common.HexToAddress(cfg.Blockchain.ContractAddress),
		ethClient,
		walletClient,
		rpcLog.Named("CROWDFUND"),
	)
	gateway.SetWaitMined(!cfg.Blockchain.NoWaitMined)

	busy := lib.NewBusy()
	notifier := notify.NewNotifier(cfg.Alerts.DismissDelay, cfg.Alerts.Max, log.Named("ALERTS"))

	sessions := session.NewManager(sessionWallet, notifier, sessionLog.Named("SESSION"))
	projects := projectmanager.NewProjectManager(gateway, sessions, notifier, busy, cfg.Refresh.Concurrency, log.Named("PROJECTS"))
	sessions.SetRefresher(projects)
	dispatcher := projectmanager.NewDispatcher(gateway, sessions, projects, notifier, busy, cfg.Blockchain.CallTimeout, log.Named("DISPATCHER"))

	handl := httphandlers.NewHTTPHandler(projects, dispatcher, sessions, notifier, gateway, &cfg, cfg.Blockchain.ContractAddress, log.Named("HTTP"))
	server := &http.Server{
		Addr:    cfg.Web.Address,
		Handler: handl,
	}

	g, ctx := errgroup.WithContext(ctx)

	runnables := []interfaces.Runnable{dispatcher}

	if walletClient != nil {
		watcher := wallet.NewAccountWatcher(walletClient, cfg.Wallet.PollInterval, sessionLog.Named("WATCHER"))
		runnables = append(runnables, watcher)
		g.Go(func() error {
			return sessions.Run(ctx, watcher.Events())
		})
	}

	for _, r := range runnables {
		r := r
		g.Go(func() error {
			return r.Run(ctx)
		})
	}

	g.Go(func() error {
		log.Infof("http server is listening: %s, public url %s", cfg.Web.Address, cfg.Web.PublicUrl)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	// the first connection attempt logs in silently or loads the public view
	if sessionWallet != nil && sessions.AutoConnect(ctx) == nil {
		log.Infof("restored wallet session %s", sessions.Current().Account.Hex())
	} else {
		_ = projects.Refresh(ctx)
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Infof("App exited due to %v", err)
}
