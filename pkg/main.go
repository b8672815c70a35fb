package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkg "github.com/sweepref/guestsource/pkg/internal"
	"github.com/sweepref/guestsource/pkg/internal/cache"
	"github.com/sweepref/guestsource/pkg/internal/database"
	"github.com/sweepref/guestsource/pkg/internal/http"
	"github.com/sweepref/guestsource/pkg/internal/services"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ____                     _\n / ___|_      _____  ___ _ __\n \\___ \\ \\ /\\ / / _ \\/ _ \\ '_ \\\n  ___) \\ V  V /  __/  __/ |_) |\n |____/ \\_/\\_/ \\___|\\___| .__/\n                        |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Sweep.Guestsource"), pkg.AppVersion)
	fmt.Printf("The guest source survey service in Sweep\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Pin the business timezone for calendar bucketing
	if name := viper.GetString("timezone"); len(name) > 0 {
		if location, err := time.LoadLocation(name); err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("An error occurred when loading timezone, keeping UTC.")
		} else {
			services.Location = location
		}
	}

	// Local cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when setting up local cache.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Seed the reference source set and the initial manager login
	if err := services.SeedSources(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when seeding source options.")
	}
	if err := services.SeedAdminAccount(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when seeding the admin account.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer().Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
