package repository

import (
	"context"
	"time"

	"github.com/Joan074/SellPoint/internal/model"

	"gorm.io/gorm"
)

type TokenRepository interface {
	Guardar(ctx context.Context, t *model.Token) error
	// Validar reports whether the token exists and has not expired.
	Validar(ctx context.Context, token string) (bool, error)
	Eliminar(ctx context.Context, token string) error
	// EliminarExpirados removes every token whose expiracion is in the past
	// and returns how many rows were deleted (for the sweeper's log line).
	EliminarExpirados(ctx context.Context, ahora time.Time) (int64, error)
}

type tokenRepo struct{ db *gorm.DB }

func NewTokenRepository(db *gorm.DB) TokenRepository { return &tokenRepo{db: db} }

func (r *tokenRepo) Guardar(ctx context.Context, t *model.Token) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tokenRepo) Validar(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Token{}).
		Where("token = ? AND expiracion >= ?", token, time.Now()).
		Count(&count).Error
	return count > 0, err
}

func (r *tokenRepo) Eliminar(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Token{}).Error
}

func (r *tokenRepo) EliminarExpirados(ctx context.Context, ahora time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expiracion < ?", ahora).Delete(&model.Token{})
	return res.RowsAffected, res.Error
}
