package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/income"
)

//go:generate mockgen -source=client_repository.go -destination=mocks/client_repository_mock.go -package=mocks

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	// List devuelve los clientes ordenados por nombre. Si query no es vacío filtra
	// por substring del nombre sin distinguir mayúsculas.
	List(ctx context.Context, query string) ([]*entity.Client, error)
	// GetByID devuelve (nil, nil) si el cliente no existe.
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	// Create persiste el cliente y asigna su ID. CPF repetido: domain.ErrDuplicateIDNumber.
	Create(ctx context.Context, client *entity.Client) error
	// Update actualiza todos los campos excepto RegistrationDate.
	// Errores: domain.ErrNotFound, domain.ErrDuplicateIDNumber.
	Update(ctx context.Context, client *entity.Client) error
	// Delete elimina el cliente; no falla si no existe.
	Delete(ctx context.Context, id int64) error
}

// ReportRepository consultas agregadas de solo lectura sobre la renda de los clientes.
type ReportRepository interface {
	// AverageIncome promedio de la renda de todos los clientes con renda conocida
	// (sin filtro de período). Cero si ninguno tiene renda.
	AverageIncome(ctx context.Context) (decimal.Decimal, error)

	// CountAdultsAboveAverage cuenta los clientes cadastrados desde since, con renda
	// estrictamente mayor que average y 18 años o más cumplidos a la fecha today.
	CountAdultsAboveAverage(ctx context.Context, since time.Time, average decimal.Decimal, today time.Time) (int, error)

	// CountByBand cuenta por clase A/B/C los clientes con renda cadastrados desde since.
	CountByBand(ctx context.Context, since time.Time) (income.Counts, error)
}
