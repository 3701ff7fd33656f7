package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/yourusername/spacesnap-api/internal/config"
	pgRepo "github.com/yourusername/spacesnap-api/internal/repository/postgres"
	"github.com/yourusername/spacesnap-api/internal/service"
	"github.com/yourusername/spacesnap-api/internal/service/stylequiz"
	"github.com/yourusername/spacesnap-api/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не найден, используются переменные окружения: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		log.Printf("Ошибка: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:           "spacesnap-seed",
		Short:         "Миграции и начальные данные SpaceSnap",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", configPath, "путь к YAML конфигурации")

	cmd.AddCommand(newMigrateCmd(&configPath))
	cmd.AddCommand(newForceCmd(&configPath))
	cmd.AddCommand(newSeedCmd(&configPath))
	return cmd
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить SQL-миграции",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return withMigrator(cfg, func(m *migrate.Migrate) error {
				if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return fmt.Errorf("migrate up: %w", err)
				}
				version, dirty, _ := m.Version()
				log.Printf("Миграции применены, версия %d (dirty=%t)", version, dirty)
				return nil
			})
		},
	}
}

// newForceCmd снимает флаг dirty после неудачной миграции
func newForceCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Принудительно установить версию миграций",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return withMigrator(cfg, func(m *migrate.Migrate) error {
				log.Printf("Устанавливаем версию миграций %d...", version)
				if err := m.Force(version); err != nil {
					return fmt.Errorf("force version: %w", err)
				}
				log.Println("Готово: состояние dirty снято.")
				return nil
			})
		},
	}
}

func newSeedCmd(configPath *string) *cobra.Command {
	var (
		overwriteStyles bool
		admin           service.AdminSeed
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Записать встроенные стили, курируемый квиз и администратора",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
			if err != nil {
				return err
			}
			if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
				return err
			}

			seeder := service.NewSeedService(
				pgRepo.NewStyleRepo(db),
				pgRepo.NewQuizRepo(db),
				pgRepo.NewUserRepo(db),
				stylequiz.DefaultCatalog(),
			)
			var adminSeed *service.AdminSeed
			if admin.Email != "" {
				adminSeed = &admin
			}
			report, err := seeder.Seed(cmd.Context(), overwriteStyles, adminSeed)
			if err != nil {
				return err
			}
			log.Printf("Стили: записано %d, пропущено %d; квиз создан: %t; администратор создан: %t",
				report.StylesCreated, report.StylesSkipped, report.QuizCreated, report.AdminCreated)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwriteStyles, "overwrite-styles", false, "перезаписать существующие описания стилей")
	cmd.Flags().StringVar(&admin.Email, "admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "email администратора")
	cmd.Flags().StringVar(&admin.Password, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "пароль администратора")
	cmd.Flags().StringVar(&admin.Name, "admin-name", "", "имя администратора")
	return cmd
}

func withMigrator(cfg *config.Config, fn func(m *migrate.Migrate) error) error {
	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(context.Background()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	migrationsPath := cfg.Database.MigrationsPath
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}
	return fn(m)
}
