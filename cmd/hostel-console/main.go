package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hostelworks/hostel-console/internal/app"
	"github.com/hostelworks/hostel-console/internal/client"
	"github.com/hostelworks/hostel-console/internal/config"
	"github.com/hostelworks/hostel-console/internal/controllers"
	"github.com/hostelworks/hostel-console/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	serverFlag := flag.String("server", "", "Override the API base URL (e.g. http://localhost:5001/api)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, app.Usage) }
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Logger.Fatal("Failed to load configuration: ", err)
	}
	// LOG_LEVEL may have come from the .env file.
	utils.InitLogger(cfg.AppName)
	if err := cfg.WithServer(*serverFlag); err != nil {
		utils.Logger.Fatal("Invalid --server: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize the console: ", err)
	}

	err = application.Run(ctx, flag.Args(), os.Stdin, os.Stderr)
	if closeErr := application.Close(); closeErr != nil {
		utils.Logger.WithError(closeErr).Warn("Failed to close session storage")
	}
	if err == nil {
		return
	}

	if errors.Is(err, app.ErrUsage) {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, app.Usage)
		os.Exit(2)
	}
	utils.Logger.WithError(err).WithField("code", client.ErrorCode(err)).Debug("Command failed")
	fmt.Fprintln(os.Stderr, "Error:", controllers.Describe(err))
	os.Exit(1)
}
