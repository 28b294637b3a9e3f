package db

import (
	"time"

	"github.com/safewings/api/pkg/models"
)

// MessageStats aggregates a user's dashboard numbers.
type MessageStats struct {
	TotalMessages   int `json:"total_messages"`
	CompletedCount  int `json:"completed_count"`
	PeopleProtected int `json:"people_protected"`
}

// Repository provides database operations for specific models
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *DB {
	return r.db
}

// User repository methods
func (r *Repository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *Repository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *Repository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *Repository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// Message repository methods
func (r *Repository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *Repository) GetMessageByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("BoardingPasses").First(&message, id).Error
	return &message, err
}

// GetMessagesByUserID returns one page of the user's messages newest
// first, with their boarding passes joined in.
func (r *Repository) GetMessagesByUserID(userID uint, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("user_id = ?", userID).
		Preload("BoardingPasses").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *Repository) CountMessagesByUserID(userID uint) (int, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}

func (r *Repository) GetMessageStats(userID uint) (*MessageStats, error) {
	stats := &MessageStats{}

	var total int64
	if err := r.db.Model(&models.Message{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalMessages = int(total)

	var completed int64
	if err := r.db.Model(&models.Message{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Count(&completed).Error; err != nil {
		return nil, err
	}
	stats.CompletedCount = int(completed)

	type recipientSum struct {
		Total int
	}
	var sum recipientSum
	if err := r.db.Model(&models.Message{}).
		Select("COALESCE(SUM(recipient_count), 0) as total").
		Where("user_id = ?", userID).
		Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.PeopleProtected = sum.Total

	return stats, nil
}

// BoardingPass repository methods
func (r *Repository) CreateBoardingPass(pass *models.BoardingPass) error {
	if pass.UploadedAt.IsZero() {
		pass.UploadedAt = time.Now().UTC()
	}
	return r.db.Create(pass).Error
}

func (r *Repository) GetBoardingPassByID(id uint) (*models.BoardingPass, error) {
	var pass models.BoardingPass
	err := r.db.First(&pass, id).Error
	return &pass, err
}

func (r *Repository) DeleteBoardingPass(id uint) error {
	return r.db.Delete(&models.BoardingPass{}, id).Error
}

// GetBoardingPassPage pages through all boarding pass rows, oldest first.
// Used by the janitor's blob reconciliation sweep.
func (r *Repository) GetBoardingPassPage(offset, limit int) ([]models.BoardingPass, error) {
	var passes []models.BoardingPass
	err := r.db.Order("id").
		Offset(offset).
		Limit(limit).
		Find(&passes).Error
	return passes, err
}
