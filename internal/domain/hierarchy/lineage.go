// Package hierarchy contiene la lógica pura del árbol de categorías:
// cálculo de lineage (ruta materializada), validación de movimientos y
// reescritura de subárboles. No toca persistencia.
package hierarchy

import (
	"fmt"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ComputeLineage calcula lineage y depth para un nodo cuyo padre es parent.
// parent == nil significa raíz: lineage vacío y depth 0.
func ComputeLineage(parent *entity.Category) ([]string, int) {
	if parent == nil {
		return []string{}, 0
	}
	lineage := make([]string, 0, len(parent.Lineage)+1)
	lineage = append(lineage, parent.Lineage...)
	lineage = append(lineage, parent.ID)
	return lineage, len(lineage)
}

// ValidateMove verifica que mover node bajo newParent no rompa el árbol.
// newParent == nil significa mover a la raíz (siempre válido).
// Rechaza con ErrCycleDetected mover un nodo bajo sí mismo o bajo uno de
// sus propios descendientes (el lineage del nuevo padre contiene al nodo).
func ValidateMove(node *entity.Category, newParent *entity.Category) error {
	if newParent == nil {
		return nil
	}
	if newParent.ID == node.ID {
		return domain.ErrCycleDetected
	}
	if newParent.HasAncestor(node.ID) {
		return domain.ErrCycleDetected
	}
	return nil
}

// RewriteSubtree reescribe el lineage de cada descendiente de node tras un
// movimiento: reemplaza el prefijo viejo (oldLineage + [node.ID]) por el
// nuevo (newLineage + [node.ID]) y ajusta depth por el delta resultante.
// Muta los descendientes recibidos. Un descendiente que no lleve el prefijo
// esperado indica lineage corrupto y corta la operación.
func RewriteSubtree(node *entity.Category, oldLineage, newLineage []string, descendants []*entity.Category) error {
	oldPrefix := append(append([]string{}, oldLineage...), node.ID)
	newPrefix := append(append([]string{}, newLineage...), node.ID)
	delta := len(newPrefix) - len(oldPrefix)

	for _, d := range descendants {
		if !hasPrefix(d.Lineage, oldPrefix) {
			return fmt.Errorf("lineage corrupto: %s no desciende de %s", d.ID, node.ID)
		}
		rest := d.Lineage[len(oldPrefix):]
		rewritten := make([]string, 0, len(newPrefix)+len(rest))
		rewritten = append(rewritten, newPrefix...)
		rewritten = append(rewritten, rest...)
		d.Lineage = rewritten
		d.Depth += delta
	}
	return nil
}

func hasPrefix(lineage, prefix []string) bool {
	if len(lineage) < len(prefix) {
		return false
	}
	for i, id := range prefix {
		if lineage[i] != id {
			return false
		}
	}
	return true
}
