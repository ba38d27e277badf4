// salonflow-admin runs the administrator API for the booking platform.
//
// Subcommands:
//
//	serve         start the admin API server (default)
//	migrate       run database migrations and exit
//	create-admin  provision the main admin account and print its credential
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/salonflow/salonflow-admin/internal/app"
	"github.com/salonflow/salonflow-admin/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var adminName string
	var adminEmail string

	flagSet := pflag.NewFlagSet("salonflow-admin", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "path to YAML config file")
	flagSet.StringVar(&adminName, "name", "", "admin display name (create-admin)")
	flagSet.StringVar(&adminEmail, "email", "", "admin login email (create-admin)")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: salonflow-admin [serve|migrate|create-admin] [flags]\n\n")
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	command := "serve"
	if args := flagSet.Args(); len(args) > 0 {
		command = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "serve":
		return app.RunServer(ctx, configPath)
	case "migrate":
		return app.Migrate(ctx, configPath)
	case "create-admin":
		return app.CreateMainAdmin(ctx, configPath, app.CreateAdminParams{
			Name:  adminName,
			Email: adminEmail,
		})
	default:
		flagSet.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
