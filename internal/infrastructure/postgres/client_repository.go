package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, id_number, birth_date, registration_date, household_income`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// List lista clientes por nombre; query filtra con ILIKE sobre el nombre.
func (r *ClientRepo) List(ctx context.Context, query string) ([]*entity.Client, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if q := strings.TrimSpace(query); q != "" {
		rows, err = r.q.Query(ctx, `
			SELECT `+clientColumns+`
			FROM clients WHERE name ILIKE $1 ESCAPE '\' ORDER BY name ASC, id ASC`,
			"%"+escapeLike(q)+"%",
		)
	} else {
		rows, err = r.q.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name ASC, id ASC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	row := r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// Create persiste un nuevo cliente y asigna el ID generado.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (name, id_number, birth_date, registration_date, household_income)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		client.Name, client.IDNumber, client.BirthDate, client.RegistrationDate, client.HouseholdIncome,
	).Scan(&client.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIDNumber
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Update actualiza un cliente. registration_date no forma parte del SET.
func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE clients
		   SET name = $2, id_number = $3, birth_date = $4, household_income = $5
		 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		client.ID, client.Name, client.IDNumber, client.BirthDate, client.HouseholdIncome,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIDNumber
		}
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.Name, &c.IDNumber, &c.BirthDate, &c.RegistrationDate, &c.HouseholdIncome); err != nil {
		return nil, err
	}
	return &c, nil
}
