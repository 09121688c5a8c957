package db

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/config"
)

type (
	GormForkedModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	StudyTool struct {
		GormForkedModel
		Name       string      `gorm:"not null"`
		Flashcards []Flashcard `gorm:"foreignKey:ToolID;constraint:OnDelete:CASCADE"`
	}

	Flashcard struct {
		GormForkedModel
		Question string `gorm:"not null"`
		Answer   string `gorm:"not null"`
		ToolID   uint64 `gorm:"not null;index"`
	}
)

// zapWriter lets gorm's logger print through zap.
type zapWriter struct {
	l *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.l.Debugf(format, args...)
}

func NewGormClient(lc fx.Lifecycle, cfg *config.Config, l *zap.SugaredLogger) (*gorm.DB, error) {
	db, err := Open(cfg.DBDriver, cfg.DSN(), l)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Info("Closing database.")
			sqlDB, err := db.DB()
			if err != nil {
				return errors.Wrap(err, "get sql db")
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects with the given driver and migrates the schema.
func Open(driver, dsn string, l *zap.SugaredLogger) (*gorm.DB, error) {
	newLogger := logger.New(zapWriter{l: l}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		Colorful:                  false,
		IgnoreRecordNotFoundError: true,
	})

	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.New(fmt.Sprintf("unsupported driver: %s", driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := db.AutoMigrate(&StudyTool{}); err != nil {
		return nil, errors.Wrap(err, "migrate study tool")
	}
	if err := db.AutoMigrate(&Flashcard{}); err != nil {
		return nil, errors.Wrap(err, "migrate flashcard")
	}

	return db, nil
}
