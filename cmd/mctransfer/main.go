// Command mctransfer runs the Transfer proxy (spec.md §4.H) standalone: it
// accepts client connections the same way cmd/mcserver's listener does,
// but dispatches every login/transfer intent straight into proxy.Handler
// instead of a local login/config/play chain. The accept-loop and
// signal-shutdown shape again follows meesudzu-jx2-paysys/cmd/paysys's
// main.go.
package main

import (
	"flag"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-mclib/mcserver/proxy"
	"github.com/go-mclib/mcserver/session"
	"go.uber.org/zap"
)

func main() {
	listenAddr := flag.String("listen", ":25566", "address to accept Minecraft clients on")
	target := flag.String("target", "127.0.0.1:25565", "host:port (or SRV-resolvable host) to transfer clients to")
	devLog := flag.Bool("dev", false, "use zap's human-readable development logger instead of the production JSON one")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *devLog {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	handler := proxy.NewHandler(proxy.Config{Target: *target})
	handlers := session.Handlers{Login: handler.Handle}

	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		logger.Fatal("failed to listen", zap.Error(err), zap.String("addr", *listenAddr))
	}
	logger.Info("transfer proxy listening", zap.String("addr", *listenAddr), zap.String("target", *target))

	stopCh := make(chan struct{})
	var wg sync.WaitGroup

	go func() {
		for {
			nc, err := ln.Accept()
			if err != nil {
				select {
				case <-stopCh:
					return
				default:
					logger.Warn("accept error", zap.Error(err))
					continue
				}
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer nc.Close()
				c := session.NewConnection(nc, logger)
				_ = session.Handle(c, handlers)
			}()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	close(stopCh)
	ln.Close()
	wg.Wait()
}
