package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadp "credit-approval-system/internal/adapter/http"
	appmw "credit-approval-system/internal/adapter/middleware"
	"credit-approval-system/internal/adapter/repository/mysql"
	"credit-approval-system/internal/config"
	"credit-approval-system/internal/infrastructure/cache"
	"credit-approval-system/internal/infrastructure/db"
	"credit-approval-system/internal/infrastructure/logger"
	"credit-approval-system/internal/infrastructure/metrics"
	ucCredit "credit-approval-system/internal/usecase/credit"
	ucCustomer "credit-approval-system/internal/usecase/customer"
	ucLoan "credit-approval-system/internal/usecase/loan"
	"credit-approval-system/pkg/id"
)

func openDB(cfg *config.Config) (*gorm.DB, error) {
	level := db.LogLevel(cfg.LogLevel)
	if cfg.DBDriver == config.DriverSQLite {
		return db.OpenSQLite(cfg.SQLitePath, level)
	}
	return db.OpenGorm(cfg.MySQLDSN(), level)
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New("credit-approval-api", cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := openDB(cfg)
	if err != nil {
		zl.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		zl.Fatal("migrate", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zl.Fatal("open redis", zap.Error(err))
	}
	defer rdb.Close()

	customers := mysql.NewCustomerRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	m := metrics.New(prometheus.DefaultRegisterer)

	h := httpadp.NewHandler(func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	customerH := httpadp.NewCustomerHandler(ucCustomer.NewUsecase(customers, zl), zl)
	creditH := httpadp.NewCreditHandler(ucCredit.NewUsecase(customers, loans, tx, zl, m), zl)
	loanH := httpadp.NewLoanHandler(ucLoan.NewUsecase(loans, customers), zl)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: id.NewID32}),
		middleware.Logger(),
		middleware.Recover(),
	)
	idem := appmw.Idempotency(rdb, cfg.IdempotencyTTL(), zl)

	// routes
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/register", customerH.Register, idem)
	e.POST("/check-eligibility", creditH.CheckEligibility, idem)
	e.POST("/create-loan", creditH.CreateLoan, idem)
	e.GET("/view-loan/:loan_id", loanH.ViewLoan)
	e.GET("/view-loans/:customer_id", loanH.ViewLoans)
	e.GET("/credit-score/:customer_id", creditH.CreditScore)

	addr := ":" + cfg.AppPort
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
