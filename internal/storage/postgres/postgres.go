// Package postgres implements internal/storage.Storage on GORM + Postgres,
// grounded on the teacher's internal/storage/postgres/postgres.go — same
// GORM logger bridge, connection pool tuning, and advisory-lock migration
// guard, re-typed around serialize.GraphData instead of trade/task/pool
// models.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/solgraph/txgraph/internal/serialize"
	"github.com/solgraph/txgraph/internal/storage"
	"github.com/solgraph/txgraph/internal/storage/models"
	"github.com/solgraph/txgraph/internal/utils"
)

type zapGormLogger struct {
	zapLogger *zap.Logger
	logLevel  gormlogger.LogLevel
}

func newGormLogger(zapLogger *zap.Logger) gormlogger.Interface {
	return &zapGormLogger{zapLogger: zapLogger, logLevel: gormlogger.Warn}
}

func (l *zapGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

func (l *zapGormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		l.zapLogger.Sugar().Infof(msg, args...)
	}
}

func (l *zapGormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		l.zapLogger.Sugar().Warnf(msg, args...)
	}
}

func (l *zapGormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		l.zapLogger.Sugar().Errorf(msg, args...)
	}
}

func (l *zapGormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", time.Since(begin)),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
	}
	if err != nil {
		l.zapLogger.Error("trace", append(fields, zap.Error(err))...)
		return
	}
	if l.logLevel >= gormlogger.Info {
		l.zapLogger.Info("trace", fields...)
	}
}

type postgresStorage struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewStorage(dsn string, zapLogger *zap.Logger) (storage.Storage, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(zapLogger.Named("gorm")),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
	})
	if err != nil {
		return nil, utils.WrapError(err, "failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, utils.WrapError(err, "failed to get database instance")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &postgresStorage{db: db, logger: zapLogger}, nil
}

func (p *postgresStorage) RunMigrations() error {
	var lockObtained bool
	if err := p.db.Raw("SELECT pg_try_advisory_lock(101)").Scan(&lockObtained).Error; err != nil {
		return utils.WrapError(err, "failed to acquire migration lock")
	}
	if !lockObtained {
		return fmt.Errorf("another migration is in progress")
	}
	defer p.db.Exec("SELECT pg_advisory_unlock(101)")

	return p.db.AutoMigrate(&models.GraphRecord{}, &models.GraphAccountIndex{})
}

func (p *postgresStorage) SaveGraph(ctx context.Context, requestID string, data *serialize.GraphData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return utils.WrapError(err, "failed to marshal graph data")
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := models.GraphRecord{RequestID: requestID, Data: body}
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		if err := tx.Where("request_id = ?", requestID).Delete(&models.GraphAccountIndex{}).Error; err != nil {
			return err
		}
		seen := make(map[string]bool, len(data.Nodes))
		for _, n := range data.Nodes {
			addr := n.AccountVertex.Address
			if seen[addr] {
				continue
			}
			seen[addr] = true
			if err := tx.Create(&models.GraphAccountIndex{RequestID: requestID, Account: addr}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *postgresStorage) GetGraph(ctx context.Context, requestID string) (*serialize.GraphData, error) {
	var record models.GraphRecord
	if err := p.db.WithContext(ctx).Where("request_id = ?", requestID).First(&record).Error; err != nil {
		return nil, err
	}
	var data serialize.GraphData
	if err := json.Unmarshal(record.Data, &data); err != nil {
		return nil, utils.WrapError(err, "failed to unmarshal graph data")
	}
	return &data, nil
}

func (p *postgresStorage) ListGraphsForAccount(ctx context.Context, account string, limit, offset int) ([]string, error) {
	var rows []models.GraphAccountIndex
	err := p.db.WithContext(ctx).
		Joins("JOIN graph_records ON graph_records.request_id = graph_account_index.request_id").
		Where("graph_account_index.account = ?", account).
		Order("graph_records.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.RequestID
	}
	return ids, nil
}

var _ storage.Storage = (*postgresStorage)(nil)
