package store

import (
	"context"
	"errors"
	"time"

	"schedule-service/internal/model"
	"schedule-service/internal/scheduling"
	"schedule-service/prometheus"

	"gorm.io/gorm"
)

// GormStore implements scheduling.Store on a gorm/postgres connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var event model.Event
	result := s.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &event, nil
}

func (s *GormStore) ListEvents(ctx context.Context, filter scheduling.EventFilter) ([]model.Event, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	query := s.db.WithContext(ctx)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
		if filter.CreatorID != 0 {
			query = query.Where("creator_id = ?", filter.CreatorID)
		}
	}
	var events []model.Event
	if result := query.Find(&events); result.Error != nil {
		return nil, result.Error
	}
	return events, nil
}

func (s *GormStore) InsertEvent(ctx context.Context, event *model.Event) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *GormStore) PatchEvent(ctx context.Context, id uint, updates map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return s.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Updates(updates).Error
}

func (s *GormStore) DeleteEvent(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return s.db.WithContext(ctx).Delete(&model.Event{}, id).Error
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := s.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *GormStore) GetUserBySubject(ctx context.Context, subject string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := s.db.WithContext(ctx).Where("subject_id = ?", subject).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *GormStore) InsertUser(ctx context.Context, user *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *GormStore) PatchUser(ctx context.Context, id uint, updates map[string]interface{}) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates).Error
}

func (s *GormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var users []model.User
	if result := s.db.WithContext(ctx).Find(&users); result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}
