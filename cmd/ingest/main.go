package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"credit-approval-system/internal/adapter/repository/mysql"
	"credit-approval-system/internal/config"
	"credit-approval-system/internal/infrastructure/db"
	"credit-approval-system/internal/infrastructure/logger"
	"credit-approval-system/internal/ingest"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	customersFile := flag.String("customers", cfg.IngestCustomersFile, "customer workbook (.xlsx)")
	loansFile := flag.String("loans", cfg.IngestLoansFile, "loan workbook (.xlsx)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	zl, err := logger.New("credit-approval-ingest", cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	level := db.LogLevel(cfg.LogLevel)
	var gdb *gorm.DB
	if cfg.DBDriver == config.DriverSQLite {
		gdb, err = db.OpenSQLite(cfg.SQLitePath, level)
	} else {
		gdb, err = db.OpenGorm(cfg.MySQLDSN(), level)
	}
	if err != nil {
		zl.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		zl.Fatal("migrate", zap.Error(err))
	}

	tx := mysql.NewGormUoW(gdb)
	customers, loans, err := ingest.New(tx, zl).Files(context.Background(), *customersFile, *loansFile)
	if err != nil {
		zl.Fatal("ingestion failed", zap.Error(err))
	}
	zl.Info("ingestion completed",
		zap.Any("customers", customers),
		zap.Any("loans", loans))
}
