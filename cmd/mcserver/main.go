// Command mcserver runs the listener, reading server.properties from the
// working directory the way vanilla's own launcher does. Signal handling
// and the load-config/start/wait-for-interrupt/stop shape follow
// meesudzu-jx2-paysys/cmd/paysys's main.go.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-mclib/mcserver/audit"
	"github.com/go-mclib/mcserver/server"
	"go.uber.org/zap"
)

func main() {
	propsPath := flag.String("properties", "server.properties", "path to the server.properties file")
	devLog := flag.Bool("dev", false, "use zap's human-readable development logger instead of the production JSON one")
	auditDSN := flag.Bool("audit", false, "enable the MySQL join/kick audit sink (configured via -audit-host etc.)")
	auditHost := flag.String("audit-host", "127.0.0.1", "audit database host")
	auditPort := flag.Int("audit-port", 3306, "audit database port")
	auditUser := flag.String("audit-user", "mcserver", "audit database user")
	auditPassword := flag.String("audit-password", "", "audit database password")
	auditDatabase := flag.String("audit-database", "mcserver", "audit database name")
	flag.Parse()

	logger, err := newLogger(*devLog)
	if err != nil {
		log.Fatalf("mcserver: build logger: %v", err)
	}
	defer logger.Sync()

	props, err := server.LoadProperties(*propsPath)
	if err != nil {
		logger.Warn("could not load server.properties, using defaults", zap.Error(err))
		props = server.DefaultProperties()
	}

	var sink *audit.Sink
	if *auditDSN {
		sink, err = audit.Open(audit.Config{
			Host:     *auditHost,
			Port:     *auditPort,
			User:     *auditUser,
			Password: *auditPassword,
			Database: *auditDatabase,
		})
		if err != nil {
			logger.Fatal("failed to open audit sink", zap.Error(err))
		}
		defer sink.Close()
	}

	srv, err := server.New(props, logger, sink)
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	if err := srv.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	srv.Stop()
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
