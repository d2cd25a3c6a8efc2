package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, store_id, parent_id, lineage, depth, code, visible, sort_order, version, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx). El lineage se guarda como text[]; los escaneos de
// rango van por depth y por prefijo/contención sobre esa columna.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. Código repetido en la tienda → ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.StoreID, nullIfEmpty(c.ParentID), c.Lineage, c.Depth,
		c.Code, c.Visible, c.SortOrder, c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID dentro de la tienda. (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE store_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, id), "get category")
}

// GetByCode obtiene una categoría por tienda y código.
func (r *CategoryRepo) GetByCode(ctx context.Context, storeID, code string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE store_id = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, storeID, code), "get category by code")
}

// ListByIDs devuelve las categorías del conjunto de IDs (una consulta).
func (r *CategoryRepo) ListByIDs(ctx context.Context, storeID string, ids []string) ([]*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + ` FROM categories
		WHERE store_id = $1 AND id = ANY($2)
		ORDER BY sort_order, code`
	rows, err := r.q.Query(ctx, query, storeID, ids)
	if err != nil {
		return nil, fmt.Errorf("list categories by ids: %w", err)
	}
	return r.scanAll(rows)
}

// ListDescendants devuelve todas las filas cuyo lineage contiene nodeID.
func (r *CategoryRepo) ListDescendants(ctx context.Context, storeID, nodeID string) ([]*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + ` FROM categories
		WHERE store_id = $1 AND $2 = ANY(lineage)
		ORDER BY depth, sort_order, code`
	rows, err := r.q.Query(ctx, query, storeID, nodeID)
	if err != nil {
		return nil, fmt.Errorf("list descendants: %w", err)
	}
	return r.scanAll(rows)
}

// ListWindow devuelve el rango plano para armar la jerarquía: una sola
// consulta acotada por depth y, en consultas de subárbol, por el prefijo
// exacto del lineage del nodo de alcance.
func (r *CategoryRepo) ListWindow(ctx context.Context, storeID string, scopeLineage []string, maxDepth int) ([]*entity.Category, error) {
	var rows pgx.Rows
	var err error
	if scopeLineage == nil {
		query := `
			SELECT ` + categoryColumns + ` FROM categories
			WHERE store_id = $1 AND depth <= $2
			ORDER BY depth, sort_order, code`
		rows, err = r.q.Query(ctx, query, storeID, maxDepth)
	} else {
		query := `
			SELECT ` + categoryColumns + ` FROM categories
			WHERE store_id = $1 AND depth <= $2 AND lineage[1:$3] = $4
			ORDER BY depth, sort_order, code`
		rows, err = r.q.Query(ctx, query, storeID, maxDepth, len(scopeLineage), scopeLineage)
	}
	if err != nil {
		return nil, fmt.Errorf("list hierarchy window: %w", err)
	}
	return r.scanAll(rows)
}

// UpdateLineage reescribe parent_id, lineage y depth verificando version.
func (r *CategoryRepo) UpdateLineage(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories
		SET parent_id = $3, lineage = $4, depth = $5, version = version + 1, updated_at = $6
		WHERE store_id = $1 AND id = $2 AND version = $7`
	cmd, err := r.q.Exec(ctx, query,
		c.StoreID, c.ID, nullIfEmpty(c.ParentID), c.Lineage, c.Depth, c.UpdatedAt, c.Version,
	)
	if err != nil {
		return fmt.Errorf("update lineage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// UpdateVisible cambia el flag del nodo verificando version.
func (r *CategoryRepo) UpdateVisible(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET visible = $3, version = version + 1, updated_at = $4
		WHERE store_id = $1 AND id = $2 AND version = $5`
	cmd, err := r.q.Exec(ctx, query, c.StoreID, c.ID, c.Visible, c.UpdatedAt, c.Version)
	if err != nil {
		return fmt.Errorf("update visible: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// UpdateVisibleSubtree cambia el flag de todos los descendientes en una sola
// sentencia. Incrementa version fila a fila; al ser una escritura ciega dentro
// de la misma tx no necesita comparación de versiones.
func (r *CategoryRepo) UpdateVisibleSubtree(ctx context.Context, storeID, nodeID string, visible bool) error {
	query := `
		UPDATE categories SET visible = $3, version = version + 1, updated_at = now()
		WHERE store_id = $1 AND $2 = ANY(lineage)`
	if _, err := r.q.Exec(ctx, query, storeID, nodeID, visible); err != nil {
		return fmt.Errorf("update visible subtree: %w", err)
	}
	return nil
}

// UpdateSortOrder cambia el orden entre hermanos verificando version.
func (r *CategoryRepo) UpdateSortOrder(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET sort_order = $3, version = version + 1, updated_at = $4
		WHERE store_id = $1 AND id = $2 AND version = $5`
	cmd, err := r.q.Exec(ctx, query, c.StoreID, c.ID, c.SortOrder, c.UpdatedAt, c.Version)
	if err != nil {
		return fmt.Errorf("update sort order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// CountChildren cuenta los hijos directos de un nodo.
func (r *CategoryRepo) CountChildren(ctx context.Context, storeID, parentID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM categories WHERE store_id = $1 AND parent_id = $2`,
		storeID, parentID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return n, nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, storeID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE store_id = $1 AND id = $2`, storeID, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// DeleteSubtree elimina el nodo y todos sus descendientes.
func (r *CategoryRepo) DeleteSubtree(ctx context.Context, storeID, nodeID string) error {
	query := `DELETE FROM categories WHERE store_id = $1 AND (id = $2 OR $2 = ANY(lineage))`
	if _, err := r.q.Exec(ctx, query, storeID, nodeID); err != nil {
		return fmt.Errorf("delete subtree: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row, op string) (*entity.Category, error) {
	var c entity.Category
	var parentID *string
	err := row.Scan(
		&c.ID, &c.StoreID, &parentID, &c.Lineage, &c.Depth,
		&c.Code, &c.Visible, &c.SortOrder, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.ParentID = emptyIfNull(parentID)
	if c.Lineage == nil {
		c.Lineage = []string{}
	}
	return &c, nil
}

func (r *CategoryRepo) scanAll(rows pgx.Rows) ([]*entity.Category, error) {
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parentID *string
		if err := rows.Scan(
			&c.ID, &c.StoreID, &parentID, &c.Lineage, &c.Depth,
			&c.Code, &c.Visible, &c.SortOrder, &c.Version, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ParentID = emptyIfNull(parentID)
		if c.Lineage == nil {
			c.Lineage = []string{}
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
