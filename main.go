package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/database"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/web"
	"github.com/confetti-cuisine/confetti/web/service"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func loadEnv(envFile string) {
	err := config.LoadEnvFile(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load %s: %v", envFile, err)
	}
}

func initLogger() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("reloading web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func migrateDb() {
	if err := database.InitDB(config.GetDatabaseConfig()); err != nil {
		fmt.Println("migrate failed:", err)
		return
	}
	defer database.CloseDB()
	fmt.Println("migrate success")
}

func setPassword(email, password string) {
	if email == "" || password == "" {
		fmt.Println("both --email and --password are required")
		return
	}
	if err := database.InitDB(config.GetDatabaseConfig()); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	if err := userService.SetPassword(email, password); err != nil {
		fmt.Println("set password failed:", err)
		return
	}
	fmt.Println("set password success")
}

func linkSubscribers() {
	if err := database.InitDB(config.GetDatabaseConfig()); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	n, err := userService.LinkSubscribers()
	if err != nil {
		fmt.Println("link subscribers failed:", err)
		return
	}
	fmt.Printf("linked %d users to their subscriber records\n", n)
}

func main() {
	var envFile string

	var rootCmd = &cobra.Command{
		Use:   config.GetName(),
		Short: "Confetti Cuisine cooking school site",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnv(envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "load environment variables from this file")

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var passwdCmd = &cobra.Command{
		Use:   "passwd",
		Short: "Set the password of a user",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			setPassword(email, password)
		},
	}
	passwdCmd.Flags().String("email", "", "email of the user")
	passwdCmd.Flags().String("password", "", "new password")

	var linkCmd = &cobra.Command{
		Use:   "link",
		Short: "Link users to subscribers with the same email",
		Run: func(cmd *cobra.Command, args []string) {
			linkSubscribers()
		},
	}

	userCmd.AddCommand(passwdCmd, linkCmd)

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	}

	rootCmd.AddCommand(runCmd, migrateCmd, userCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
