package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/income"
	"github.com/jhoicas/cadastro-clientes/internal/domain/period"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
	"github.com/jhoicas/cadastro-clientes/internal/domain/validation"
	"github.com/jhoicas/cadastro-clientes/pkg/metrics"
)

// Clock devuelve la fecha civil de hoy (00:00 UTC).
type Clock func() time.Time

// SystemClock reloj real evaluado en la zona loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return period.TodayIn(time.Now(), loc) }
}

// ClientUseCase casos de uso del cadastro de clientes.
type ClientUseCase struct {
	repo    repository.ClientRepository
	today   Clock
	metrics *metrics.Metrics
}

// NewClientUseCase construye el caso de uso. m puede ser nil.
func NewClientUseCase(repo repository.ClientRepository, today Clock, m *metrics.Metrics) *ClientUseCase {
	return &ClientUseCase{repo: repo, today: today, metrics: m}
}

// List lista clientes filtrando por nombre.
func (uc *ClientUseCase) List(ctx context.Context, query string) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente; domain.ErrNotFound si no existe.
func (uc *ClientUseCase) Get(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Create valida y cadastra un cliente. Los errores de campo vuelven como validation.Errors,
// incluido el CPF repetido.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	today := uc.today()
	res, errs := validation.Validate(validation.Input{
		Name:      in.Name,
		IDNumber:  in.IDNumber,
		BirthDate: in.BirthDate,
		Income:    in.Income,
	}, today)
	registered, msg := validation.ParseRegistrationDate(in.RegistrationDate, today)
	if msg != "" {
		errs.Set(validation.FieldRegistrationDate, msg)
	}
	if !errs.Empty() {
		return nil, uc.invalid(errs)
	}

	client := &entity.Client{
		Name:             res.Name,
		IDNumber:         res.IDNumber,
		BirthDate:        res.BirthDate,
		RegistrationDate: registered,
		HouseholdIncome:  res.Income,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		if errors.Is(err, domain.ErrDuplicateIDNumber) {
			return nil, uc.invalid(duplicateIDNumber())
		}
		return nil, err
	}
	uc.metrics.IncrementCreated()
	return toClientResponse(client), nil
}

// Update valida y actualiza un cliente existente sin tocar su fecha de cadastro.
// domain.ErrNotFound si no existe.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	current, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	res, errs := validation.Validate(validation.Input{
		Name:      in.Name,
		IDNumber:  in.IDNumber,
		BirthDate: in.BirthDate,
		Income:    in.Income,
	}, uc.today())
	if !errs.Empty() {
		return nil, uc.invalid(errs)
	}

	client := &entity.Client{
		ID:               id,
		Name:             res.Name,
		IDNumber:         res.IDNumber,
		BirthDate:        res.BirthDate,
		RegistrationDate: current.RegistrationDate,
		HouseholdIncome:  res.Income,
	}
	if err := uc.repo.Update(ctx, client); err != nil {
		if errors.Is(err, domain.ErrDuplicateIDNumber) {
			return nil, uc.invalid(duplicateIDNumber())
		}
		return nil, err
	}
	uc.metrics.IncrementUpdated()
	return toClientResponse(client), nil
}

// Delete elimina un cliente. Un ID inexistente no es error.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.metrics.IncrementDeleted()
	return nil
}

// NewForm formulario de alta vacío con la fecha de cadastro de hoy.
func (uc *ClientUseCase) NewForm() dto.ClientFormView {
	today := uc.today().Format(period.DateLayout)
	return dto.ClientFormView{RegistrationDate: today, MaxBirthDate: today}
}

// EditForm formulario de edición con los datos guardados.
func (uc *ClientUseCase) EditForm(ctx context.Context, id int64) (dto.ClientFormView, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return dto.ClientFormView{}, err
	}
	v := dto.ClientFormView{
		ID:               c.ID,
		Name:             c.Name,
		IDNumber:         c.IDNumber,
		BirthDate:        c.BirthDate.Format(period.DateLayout),
		RegistrationDate: c.RegistrationDate.Format(period.DateLayout),
		MaxBirthDate:     uc.today().Format(period.DateLayout),
	}
	if c.HouseholdIncome != nil {
		v.Income = c.HouseholdIncome.StringFixed(2)
	}
	return v, nil
}

// CreateFormWithErrors re-arma el formulario de alta con lo que envió el usuario.
func (uc *ClientUseCase) CreateFormWithErrors(in dto.CreateClientRequest, errs validation.Errors) dto.ClientFormView {
	v := uc.NewForm()
	v.Name = in.Name
	v.IDNumber = in.IDNumber
	v.BirthDate = in.BirthDate
	if in.RegistrationDate != "" {
		v.RegistrationDate = in.RegistrationDate
	}
	v.Income = in.Income
	v.Errors = errs.Ordered()
	return v
}

// UpdateFormWithErrors re-arma el formulario de edición con lo que envió el usuario.
// La fecha de cadastro mostrada es la guardada.
func (uc *ClientUseCase) UpdateFormWithErrors(ctx context.Context, id int64, in dto.UpdateClientRequest, errs validation.Errors) (dto.ClientFormView, error) {
	v, err := uc.EditForm(ctx, id)
	if err != nil {
		return dto.ClientFormView{}, err
	}
	v.Name = in.Name
	v.IDNumber = in.IDNumber
	v.BirthDate = in.BirthDate
	v.Income = in.Income
	v.Errors = errs.Ordered()
	return v, nil
}

func (uc *ClientUseCase) find(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *ClientUseCase) invalid(errs validation.Errors) validation.Errors {
	for f := range errs {
		uc.metrics.IncrementValidationFailure(f.Key())
	}
	return errs
}

func duplicateIDNumber() validation.Errors {
	return validation.Errors{validation.FieldIDNumber: validation.MsgIDNumberDuplicate}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:               c.ID,
		Name:             c.Name,
		IDNumber:         c.IDNumber,
		BirthDate:        c.BirthDate.Format(period.DateLayout),
		RegistrationDate: c.RegistrationDate.Format(period.DateLayout),
		Income:           c.HouseholdIncome,
		Band:             income.Classify(c.HouseholdIncome),
	}
}
