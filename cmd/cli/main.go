package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	postgresRepo "github.com/tindi/chamaledger/internal/adapter/repository/postgres"
	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/infrastructure/config"
	"github.com/tindi/chamaledger/internal/infrastructure/logger"
	"github.com/tindi/chamaledger/internal/infrastructure/postgres"
	"github.com/tindi/chamaledger/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

// swappable for tests
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "chamactl",
		Short: "Chamaledger admin tool",
		Long:  `A command line interface for administering a chamaledger deployment.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the chamaledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(healthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
		},
	})

	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User account operations",
	}

	var email, name, password, role string

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account directly in the database",
		Long:  `Creates a user account against the configured database. Use this to bootstrap the first admin before any login exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, 2, 1)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := usecase.NewUserUseCase(
				postgresRepo.NewUserRepository(pool),
				nil,
				postgresRepo.NewULIDGenerator(),
				cfg.SessionTTL,
			)

			user, err := uc.CreateUser(ctx, usecase.CreateUserInput{
				Email:    email,
				Name:     name,
				Password: password,
				Role:     domain.Role(role),
			})
			if err != nil {
				return err
			}

			printJSON(map[string]string{
				"id":    user.ID,
				"email": user.Email,
				"role":  string(user.Role),
			})
			return nil
		},
	}

	createCmd.Flags().StringVar(&email, "email", "", "Login email")
	createCmd.Flags().StringVar(&name, "name", "", "Display name")
	createCmd.Flags().StringVar(&password, "password", "", "Password")
	createCmd.Flags().StringVar(&role, "role", string(domain.RoleTreasurer), "Role: admin, treasurer or member")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	cmd.AddCommand(createCmd)
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check readiness of a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			resp, err := client.Get(baseURL + "/ready")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("readiness check failed (status %d): %s", resp.StatusCode, string(body))
			}

			fmt.Printf("OK: %s\n", string(body))
			return nil
		},
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
