package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validate"
)

// LocalityUseCase casos de uso de localidades del ubigeo. La eliminación
// física está guardada: mientras una ruta activa use la localidad como
// origen, destino o escala, la baja es rechazada listando las rutas.
type LocalityUseCase struct {
	localities repository.LocalityRepository
	routes     repository.RouteRepository
	now        func() time.Time
}

// NewLocalityUseCase construye el caso de uso.
func NewLocalityUseCase(localities repository.LocalityRepository, routes repository.RouteRepository) *LocalityUseCase {
	return &LocalityUseCase{localities: localities, routes: routes, now: time.Now}
}

// Create registra una localidad; el ubigeo es único entre activas.
func (uc *LocalityUseCase) Create(ctx context.Context, in dto.CreateLocalityRequest) (*entity.Locality, error) {
	now := uc.now().UTC()
	l := &entity.Locality{
		Base:           entity.Base{ID: uuid.New().String(), CreatedAt: now, IsActive: true},
		Ubigeo:         in.Ubigeo,
		Name:           in.Name,
		Level:          in.Level,
		DepartmentName: in.DepartmentName,
		ProvinceName:   in.ProvinceName,
		DistrictName:   in.DistrictName,
	}
	if fs := validate.Locality(l); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	if err := uc.localities.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// GetByID obtiene la localidad por id.
func (uc *LocalityUseCase) GetByID(ctx context.Context, id string) (*entity.Locality, error) {
	return uc.localities.GetByID(ctx, id)
}

// GetByUbigeo obtiene la localidad activa por código.
func (uc *LocalityUseCase) GetByUbigeo(ctx context.Context, ubigeo string) (*entity.Locality, error) {
	return uc.localities.GetByUbigeo(ctx, ubigeo)
}

// Update modifica los campos editables de la localidad. El ubigeo y el nivel
// son inmutables; una corrección pasa por baja y alta.
func (uc *LocalityUseCase) Update(ctx context.Context, id string, in dto.UpdateLocalityRequest) (*entity.Locality, error) {
	l, err := uc.localities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.DepartmentName != nil {
		l.DepartmentName = *in.DepartmentName
	}
	if in.ProvinceName != nil {
		l.ProvinceName = *in.ProvinceName
	}
	if in.DistrictName != nil {
		l.DistrictName = *in.DistrictName
	}
	if fs := validate.Locality(l); domain.HasErrors(fs) {
		return nil, domain.NewValidationError(fs)
	}
	l.Touch(uc.now().UTC())
	if err := uc.localities.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete elimina físicamente la localidad si ninguna ruta activa la usa.
// Con rutas en uso devuelve domain.ErrReferenceInUse nombrando sus códigos.
func (uc *LocalityUseCase) Delete(ctx context.Context, id string) error {
	l, err := uc.localities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	using, err := uc.routes.ListUsingLocality(ctx, l.ID)
	if err != nil {
		return err
	}
	if len(using) > 0 {
		codes := make([]string, 0, len(using))
		for _, r := range using {
			codes = append(codes, r.Code)
		}
		return fmt.Errorf("la localidad %s (%s) es usada por las rutas %s: %w",
			l.Name, l.Ubigeo, strings.Join(codes, ", "), domain.ErrReferenceInUse)
	}
	return uc.localities.HardDelete(ctx, l.ID)
}

// Deactivate aplica la baja lógica de la localidad (sin guarda: los listados
// históricos siguen resolviendo el nombre).
func (uc *LocalityUseCase) Deactivate(ctx context.Context, id string) error {
	l, err := uc.localities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !l.IsActive {
		return nil
	}
	l.IsActive = false
	l.Touch(uc.now().UTC())
	return uc.localities.Update(ctx, l)
}

// List lista localidades con filtros y total.
func (uc *LocalityUseCase) List(ctx context.Context, in dto.ListLocalitiesRequest) ([]*entity.Locality, int64, error) {
	return uc.localities.List(ctx, repository.LocalityFilter{
		Level:           in.Level,
		UbigeoPrefix:    in.UbigeoPrefix,
		Text:            in.Text,
		IncludeInactive: in.IncludeInactive,
	}, repository.Page{Skip: in.Skip, Limit: in.Limit})
}
