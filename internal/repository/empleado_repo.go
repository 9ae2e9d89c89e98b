package repository

import (
	"context"

	"github.com/Joan074/SellPoint/internal/model"

	"gorm.io/gorm"
)

type EmpleadoRepository interface {
	Create(ctx context.Context, e *model.Empleado) error
	FindByID(ctx context.Context, id int) (*model.Empleado, error)
	FindByUsuario(ctx context.Context, usuario string) (*model.Empleado, error)
	List(ctx context.Context) ([]model.Empleado, error)
	Update(ctx context.Context, e *model.Empleado) error
	Delete(ctx context.Context, id int) error
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepository(db *gorm.DB) EmpleadoRepository { return &empleadoRepo{db: db} }

func (r *empleadoRepo) Create(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empleadoRepo) FindByID(ctx context.Context, id int) (*model.Empleado, error) {
	var e model.Empleado
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empleadoRepo) FindByUsuario(ctx context.Context, usuario string) (*model.Empleado, error) {
	var e model.Empleado
	if err := r.db.WithContext(ctx).Where("usuario = ?", usuario).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *empleadoRepo) List(ctx context.Context) ([]model.Empleado, error) {
	var empleados []model.Empleado
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&empleados).Error
	return empleados, err
}

func (r *empleadoRepo) Update(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empleadoRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.Empleado{}, id).Error
}
