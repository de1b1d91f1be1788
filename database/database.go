// Package database keeps a history of successful resolutions.
package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"github.com/videotools/arte-archiver/arte"
)

// Video is one recorded single-video resolution.
type Video struct {
	ID         uint   `gorm:"primaryKey"`
	ProgramID  string `gorm:"index"`
	Title      string
	URL        string
	UploadDate time.Time
	ResolvedAt time.Time
}

// Collection is one recorded playlist or category resolution.
type Collection struct {
	ID           uint   `gorm:"primaryKey"`
	CollectionID string `gorm:"index"`
	Title        string
	EntryCount   int
	ResolvedAt   time.Time
}

type Database struct {
	db *gorm.DB
}

func Open(path string, logger *zap.Logger) (*Database, error) {
	gormLogger := zapgorm2.New(logger)
	gormLogger.SetAsDefault()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Video{}, &Collection{}); err != nil {
		return nil, err
	}
	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	db, err := d.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// RecordVideo appends a history row for a resolved video.
func (d *Database) RecordVideo(record *arte.VideoRecord, url string) error {
	return d.db.Create(&Video{
		ProgramID:  record.ID,
		Title:      record.Title,
		URL:        url,
		UploadDate: record.UploadDate,
		ResolvedAt: time.Now(),
	}).Error
}

// RecordCollection appends a history row for a resolved collection.
func (d *Database) RecordCollection(result *arte.CollectionResult) error {
	return d.db.Create(&Collection{
		CollectionID: result.ID,
		Title:        result.Title,
		EntryCount:   len(result.Entries),
		ResolvedAt:   time.Now(),
	}).Error
}

// RecentVideos returns up to limit history rows, newest first.
func (d *Database) RecentVideos(limit int) ([]Video, error) {
	var videos []Video
	err := d.db.Order("resolved_at DESC").Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}
