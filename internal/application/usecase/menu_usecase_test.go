package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

func menu(id, name, parentID string, order int) *entity.Menu {
	return &entity.Menu{ID: id, Name: name, Path: "/" + id, ParentID: parentID, Order: order, IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests BuildMenuTree
// ──────────────────────────────────────────────────────────────────────────────

// El árbol anida los hijos bajo su padre conservando el orden relativo de la
// lista plana.
func TestBuildMenuTree_AnidaHijos(t *testing.T) {
	tree := usecase.BuildMenuTree([]*entity.Menu{
		menu("m-stock", "Stock", "", 1),
		menu("m-stock-status", "Situación", "m-stock", 1),
		menu("m-stock-low", "Bajo stock", "m-stock", 2),
		menu("m-admin", "Administración", "", 2),
	})

	require.Len(t, tree, 2)
	assert.Equal(t, "m-stock", tree[0].ID)
	assert.Equal(t, "m-admin", tree[1].ID)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "m-stock-status", tree[0].Children[0].ID)
	assert.Equal(t, "m-stock-low", tree[0].Children[1].ID)
	assert.Empty(t, tree[1].Children)
}

// Un nodo cuyo padre no está en la lista se degrada a raíz en vez de perderse.
func TestBuildMenuTree_HuerfanoSubeARaiz(t *testing.T) {
	tree := usecase.BuildMenuTree([]*entity.Menu{
		menu("m-root", "Raíz", "", 1),
		menu("m-huerfano", "Huérfano", "m-desaparecido", 2),
	})

	require.Len(t, tree, 2, "el huérfano debe aparecer como raíz")
	assert.Equal(t, "m-huerfano", tree[1].ID)
	assert.Equal(t, "m-desaparecido", tree[1].ParentID,
		"el parent_id original se conserva en la respuesta")
}

// Anidamiento de más de dos niveles.
func TestBuildMenuTree_TresNiveles(t *testing.T) {
	tree := usecase.BuildMenuTree([]*entity.Menu{
		menu("a", "A", "", 1),
		menu("b", "B", "a", 1),
		menu("c", "C", "b", 1),
	})

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "c", tree[0].Children[0].Children[0].ID)
}

func TestBuildMenuTree_ListaVacia(t *testing.T) {
	assert.Empty(t, usecase.BuildMenuTree(nil))
}
