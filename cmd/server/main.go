// @title         MicroBridge onboarding API
// @version       1.0
// @description   Онбординг студентов MicroBridge: пошаговый мастер профиля, резюме, настройки и прогресс.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "microbridge",
	Short: "MicroBridge student onboarding service",
	Long: `MicroBridge onboarding serves the student profile wizard over HTTP:
seven steps from basic information to the resume upload, the profile page,
account settings and XP progress.`,
	Version:      "1.0.0",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or env); environment variables override it")
	rootCmd.AddCommand(serveCmd, registryCmd, tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
