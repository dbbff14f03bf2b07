package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	itmsclient "github.com/itmsdev/itms-client"
	"github.com/itmsdev/itms-client/apps/server/echoapi"
	"github.com/itmsdev/itms-client/core"
	logsvc "github.com/itmsdev/itms-client/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewZerologLogger(conf)

	// the server persists the simulated tables the same way the mock
	// facade does; with no state path it serves from memory only.
	store, err := itmsclient.OpenStore(conf)
	errAndDie(err)

	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:  conf.Server.Address(),
			Conf:  conf,
			Log:   logger,
			Store: store,
		},
	)
	go app.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Error("server shutdown", err)
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
