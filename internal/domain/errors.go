package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("código de categoría duplicado")
	ErrCycleDetected          = errors.New("el movimiento crearía un ciclo en el árbol")
	ErrHasChildren            = errors.New("la categoría tiene subcategorías")
	ErrSlugConflict           = errors.New("friendly URL ya registrada para este idioma")
	ErrConcurrentModification = errors.New("la categoría fue modificada por otra operación")
)
