package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

const (
	testStore      = "store-1"
	testOtherStore = "store-2"
)

func newTestUseCase(t *testing.T) (*catalog.UseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := catalog.NewUseCase(
		&memCategoryRepo{s: s},
		&memDescriptionRepo{s: s},
		&memProductRepo{s: s},
		&memTxRunner{s: s},
		log,
	)
	return uc, s
}

func mustCreate(t *testing.T, uc *catalog.UseCase, storeID, parentID, code string, descs ...dto.DescriptionInput) *dto.CategoryResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), storeID, dto.CreateCategoryRequest{
		ParentID:     parentID,
		Code:         code,
		Descriptions: descs,
	})
	require.NoError(t, err, "crear %q no debe fallar", code)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RaizYDescendientes(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root")
	b := mustCreate(t, uc, testStore, a.ID, "child-b")
	c := mustCreate(t, uc, testStore, b.ID, "child-c")

	assert.Empty(t, a.Lineage)
	assert.Equal(t, 0, a.Depth)
	assert.Equal(t, []string{a.ID}, b.Lineage)
	assert.Equal(t, 1, b.Depth)
	assert.Equal(t, []string{a.ID, b.ID}, c.Lineage)
	assert.Equal(t, 2, c.Depth)

	// el invariante lineage(padre) + [padre] se sostiene releyendo
	got, err := uc.GetByCode(ctx, testStore, "child-c", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, append(append([]string{}, b.Lineage...), b.ID), got.Lineage)
	assert.Len(t, got.Lineage, got.Depth)
}

func TestCreate_CodigoDuplicadoEnLaMismaTienda(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	mustCreate(t, uc, testStore, "", "hogar")
	_, err := uc.Create(ctx, testStore, dto.CreateCategoryRequest{Code: "hogar"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// el mismo código en otra tienda es válido
	_, err = uc.Create(ctx, testOtherStore, dto.CreateCategoryRequest{Code: "hogar"})
	assert.NoError(t, err)
}

func TestCreate_PadreInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.Create(context.Background(), testStore, dto.CreateCategoryRequest{
		ParentID: "no-existe",
		Code:     "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_PadreDeOtraTiendaNoEsVisible(t *testing.T) {
	uc, _ := newTestUseCase(t)
	otro := mustCreate(t, uc, testOtherStore, "", "raiz-ajena")
	_, err := uc.Create(context.Background(), testStore, dto.CreateCategoryRequest{
		ParentID: otro.ID,
		Code:     "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_DerivaSlugDelNombre(t *testing.T) {
	uc, _ := newTestUseCase(t)
	out := mustCreate(t, uc, testStore, "", "ninos",
		dto.DescriptionInput{Locale: "es", Name: "Ropa de Niños"})
	require.Len(t, out.Descriptions, 1)
	assert.Equal(t, "ropa-de-ninos", out.Descriptions[0].FriendlyURL)
}

func TestCreate_SlugEnConflicto(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	mustCreate(t, uc, testStore, "", "a",
		dto.DescriptionInput{Locale: "es", Name: "Hogar", FriendlyURL: "hogar"})

	_, err := uc.Create(ctx, testStore, dto.CreateCategoryRequest{
		Code:         "b",
		Descriptions: []dto.DescriptionInput{{Locale: "es", Name: "Otro Hogar", FriendlyURL: "hogar"}},
	})
	assert.ErrorIs(t, err, domain.ErrSlugConflict)

	// mismo slug en otro idioma no choca
	_, err = uc.Create(ctx, testStore, dto.CreateCategoryRequest{
		Code:         "c",
		Descriptions: []dto.DescriptionInput{{Locale: "en", Name: "Home", FriendlyURL: "hogar"}},
	})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Move
// ──────────────────────────────────────────────────────────────────────────────

func TestMove_BajoUnDescendienteFalla(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root")
	b := mustCreate(t, uc, testStore, a.ID, "child-b")
	c := mustCreate(t, uc, testStore, b.ID, "child-c")

	err := uc.Move(ctx, testStore, a.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)

	// el árbol queda intacto
	assert.Equal(t, []string{a.ID, b.ID}, s.categories[c.ID].Lineage)
	assert.Equal(t, "", s.categories[a.ID].ParentID)
}

func TestMove_ALaRaizReescribeElSubarbol(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root")
	b := mustCreate(t, uc, testStore, a.ID, "child-b")
	c := mustCreate(t, uc, testStore, b.ID, "child-c")

	require.NoError(t, uc.Move(ctx, testStore, b.ID, ""))

	storedB := s.categories[b.ID]
	assert.Empty(t, storedB.Lineage)
	assert.Equal(t, 0, storedB.Depth)
	assert.Equal(t, "", storedB.ParentID)

	storedC := s.categories[c.ID]
	assert.Equal(t, []string{b.ID}, storedC.Lineage)
	assert.Equal(t, 1, storedC.Depth)
}

func TestMove_DeltaDeProfundidadExacto(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	// A → B → C y raíz X → Y; mover B bajo Y: depth de C pasa de 2 a 3
	a := mustCreate(t, uc, testStore, "", "a")
	b := mustCreate(t, uc, testStore, a.ID, "b")
	c := mustCreate(t, uc, testStore, b.ID, "c")
	x := mustCreate(t, uc, testStore, "", "x")
	y := mustCreate(t, uc, testStore, x.ID, "y")

	require.NoError(t, uc.Move(ctx, testStore, b.ID, y.ID))

	storedC := s.categories[c.ID]
	assert.Equal(t, []string{x.ID, y.ID, b.ID}, storedC.Lineage)
	assert.Equal(t, 3, storedC.Depth)
}

func TestMove_AlPadreActualEsNoOp(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root")
	b := mustCreate(t, uc, testStore, a.ID, "child-b")
	versionAntes := s.categories[b.ID].Version

	require.NoError(t, uc.Move(ctx, testStore, b.ID, a.ID))
	assert.Equal(t, versionAntes, s.categories[b.ID].Version, "un no-op no debe incrementar version")
}

func TestMove_NodoInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	err := uc.Move(context.Background(), testStore, "fantasma", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMove_ConflictoDeVersionSePropaga(t *testing.T) {
	s := newMemStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := catalog.NewUseCase(&memCategoryRepo{s: s}, &memDescriptionRepo{s: s}, &memProductRepo{s: s}, &tamperTxRunner{s: s}, log)

	a := mustCreate(t, uc, testStore, "", "root")
	b := mustCreate(t, uc, testStore, "", "b")
	_ = a

	err := uc.Move(context.Background(), testStore, b.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

// tamperTxRunner simula un escritor concurrente: incrementa la versión
// almacenada de cada fila después de que el caso de uso la leyó.
type tamperTxRunner struct{ s *memStore }

func (t *tamperTxRunner) Run(ctx context.Context, fn func(
	catRepo repository.CategoryRepository,
	descRepo repository.CategoryDescriptionRepository,
) error) error {
	return fn(&tamperCategoryRepo{memCategoryRepo{s: t.s}}, &memDescriptionRepo{s: t.s})
}

type tamperCategoryRepo struct{ memCategoryRepo }

func (r *tamperCategoryRepo) GetByID(ctx context.Context, storeID, id string) (*entity.Category, error) {
	c, err := r.memCategoryRepo.GetByID(ctx, storeID, id)
	if c != nil {
		r.s.categories[id].Version++ // otro escritor tocó la fila
	}
	return c, err
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ConHijosSinCascade(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root")
	mustCreate(t, uc, testStore, a.ID, "child")

	err := uc.Delete(ctx, testStore, a.ID, false)
	assert.ErrorIs(t, err, domain.ErrHasChildren)
	assert.Len(t, s.categories, 2)
}

func TestDelete_HojaSinCascade(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root")
	b := mustCreate(t, uc, testStore, a.ID, "child",
		dto.DescriptionInput{Locale: "es", Name: "Hijo"})

	require.NoError(t, uc.Delete(ctx, testStore, b.ID, false))
	assert.Len(t, s.categories, 1)
	assert.Empty(t, s.descs, "las descripciones de la hoja deben caer con ella")
}

func TestDelete_CascadeEliminaElSubarbol(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root", dto.DescriptionInput{Locale: "es", Name: "Raíz"})
	b := mustCreate(t, uc, testStore, a.ID, "b", dto.DescriptionInput{Locale: "es", Name: "B"})
	mustCreate(t, uc, testStore, b.ID, "c")
	otro := mustCreate(t, uc, testStore, "", "otro")

	require.NoError(t, uc.Delete(ctx, testStore, a.ID, true))

	assert.Len(t, s.categories, 1)
	_, sobrevive := s.categories[otro.ID]
	assert.True(t, sobrevive)
	assert.Empty(t, s.descs)
}

func TestDelete_Inexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	err := uc.Delete(context.Background(), testStore, "fantasma", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetVisible / SetSortOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestSetVisible_SoloElNodo(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root")
	b := mustCreate(t, uc, testStore, a.ID, "child")

	require.NoError(t, uc.SetVisible(ctx, testStore, a.ID, false, false))
	assert.False(t, s.categories[a.ID].Visible)
	assert.True(t, s.categories[b.ID].Visible, "sin cascade el hijo no cambia")
}

func TestSetVisible_Cascade(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root")
	b := mustCreate(t, uc, testStore, a.ID, "child")
	c := mustCreate(t, uc, testStore, b.ID, "nieto")
	otro := mustCreate(t, uc, testStore, "", "otro")

	require.NoError(t, uc.SetVisible(ctx, testStore, a.ID, false, true))
	assert.False(t, s.categories[a.ID].Visible)
	assert.False(t, s.categories[b.ID].Visible)
	assert.False(t, s.categories[c.ID].Visible)
	assert.True(t, s.categories[otro.ID].Visible)
}

func TestSetVisible_Inexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	err := uc.SetVisible(context.Background(), testStore, "fantasma", true, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetSortOrder(t *testing.T) {
	uc, s := newTestUseCase(t)
	a := mustCreate(t, uc, testStore, "", "root")
	require.NoError(t, uc.SetSortOrder(context.Background(), testStore, a.ID, 7))
	assert.Equal(t, 7, s.categories[a.ID].SortOrder)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descripciones
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateDescriptions_UpsertPorIdioma(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root",
		dto.DescriptionInput{Locale: "es", Name: "Hogar"})

	_, err := uc.UpdateDescriptions(ctx, testStore, a.ID, dto.UpdateDescriptionsRequest{
		Descriptions: []dto.DescriptionInput{
			{Locale: "es", Name: "Hogar y Deco", FriendlyURL: "hogar-y-deco"},
			{Locale: "en", Name: "Home"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hogar y Deco", s.descs[descKey(a.ID, "es")].Name)
	assert.Equal(t, "home", s.descs[descKey(a.ID, "en")].FriendlyURL)
}

func TestUpdateDescriptions_ExcluyeLaPropiaCategoriaDelChequeo(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	a := mustCreate(t, uc, testStore, "", "root",
		dto.DescriptionInput{Locale: "es", Name: "Hogar", FriendlyURL: "hogar"})

	// re-guardar el mismo slug sobre la misma categoría no es conflicto
	_, err := uc.UpdateDescriptions(ctx, testStore, a.ID, dto.UpdateDescriptionsRequest{
		Descriptions: []dto.DescriptionInput{{Locale: "es", Name: "Hogar", FriendlyURL: "hogar"}},
	})
	assert.NoError(t, err)

	// pero sí lo es sobre otra
	b := mustCreate(t, uc, testStore, "", "b", dto.DescriptionInput{Locale: "es", Name: "B"})
	_, err = uc.UpdateDescriptions(ctx, testStore, b.ID, dto.UpdateDescriptionsRequest{
		Descriptions: []dto.DescriptionInput{{Locale: "es", Name: "B", FriendlyURL: "hogar"}},
	})
	assert.ErrorIs(t, err, domain.ErrSlugConflict)
}
