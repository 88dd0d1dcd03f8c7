package usecase_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/internal/testutil"
)

// Fakes en memoria de los puertos de códigos comunes. El borrado de un grupo
// arrastra sus detalles, igual que la FK en cascada del esquema.
type codeStore struct {
	groups  map[string]*entity.CodeGroup
	details map[string]*entity.CodeDetail
}

func newCodeStore() *codeStore {
	return &codeStore{
		groups:  make(map[string]*entity.CodeGroup),
		details: make(map[string]*entity.CodeDetail),
	}
}

func detailKey(grpCode, code string) string { return grpCode + "/" + code }

type codeGroupRepoFake struct{ s *codeStore }

var _ repository.CodeGroupRepository = (*codeGroupRepoFake)(nil)

func (r *codeGroupRepoFake) Create(group *entity.CodeGroup) error {
	if _, ok := r.s.groups[group.GrpCode]; ok {
		return fmt.Errorf("%w: grupo %s", domain.ErrDuplicate, group.GrpCode)
	}
	cp := *group
	r.s.groups[group.GrpCode] = &cp
	return nil
}

func (r *codeGroupRepoFake) GetByCode(grpCode string) (*entity.CodeGroup, error) {
	group, ok := r.s.groups[grpCode]
	if !ok {
		return nil, nil
	}
	cp := *group
	return &cp, nil
}

func (r *codeGroupRepoFake) Update(group *entity.CodeGroup) error {
	if _, ok := r.s.groups[group.GrpCode]; !ok {
		return fmt.Errorf("%w: grupo %s", domain.ErrNotFound, group.GrpCode)
	}
	cp := *group
	r.s.groups[group.GrpCode] = &cp
	return nil
}

func (r *codeGroupRepoFake) Delete(grpCode string) error {
	if _, ok := r.s.groups[grpCode]; !ok {
		return fmt.Errorf("%w: grupo %s", domain.ErrNotFound, grpCode)
	}
	delete(r.s.groups, grpCode)
	for key, detail := range r.s.details {
		if detail.GrpCode == grpCode {
			delete(r.s.details, key)
		}
	}
	return nil
}

func (r *codeGroupRepoFake) List() ([]*entity.CodeGroup, error) {
	out := make([]*entity.CodeGroup, 0, len(r.s.groups))
	for _, group := range r.s.groups {
		cp := *group
		out = append(out, &cp)
	}
	return out, nil
}

type codeDetailRepoFake struct{ s *codeStore }

var _ repository.CodeDetailRepository = (*codeDetailRepoFake)(nil)

func (r *codeDetailRepoFake) Create(detail *entity.CodeDetail) error {
	key := detailKey(detail.GrpCode, detail.Code)
	if _, ok := r.s.details[key]; ok {
		return fmt.Errorf("%w: código %s", domain.ErrDuplicate, key)
	}
	cp := *detail
	r.s.details[key] = &cp
	return nil
}

func (r *codeDetailRepoFake) Get(grpCode, code string) (*entity.CodeDetail, error) {
	detail, ok := r.s.details[detailKey(grpCode, code)]
	if !ok {
		return nil, nil
	}
	cp := *detail
	return &cp, nil
}

func (r *codeDetailRepoFake) Update(detail *entity.CodeDetail) error {
	key := detailKey(detail.GrpCode, detail.Code)
	if _, ok := r.s.details[key]; !ok {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, key)
	}
	cp := *detail
	r.s.details[key] = &cp
	return nil
}

func (r *codeDetailRepoFake) Delete(grpCode, code string) error {
	key := detailKey(grpCode, code)
	if _, ok := r.s.details[key]; !ok {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, key)
	}
	delete(r.s.details, key)
	return nil
}

func (r *codeDetailRepoFake) List() ([]*entity.CodeDetail, error) {
	out := make([]*entity.CodeDetail, 0, len(r.s.details))
	for _, detail := range r.s.details {
		cp := *detail
		out = append(out, &cp)
	}
	return out, nil
}

func (r *codeDetailRepoFake) ListByGroup(grpCode string) ([]*entity.CodeDetail, error) {
	var out []*entity.CodeDetail
	for _, detail := range r.s.details {
		if detail.GrpCode == grpCode {
			cp := *detail
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newCodeFixture() (*usecase.CodeUseCase, *codeStore, *testutil.RecorderSpy) {
	store := newCodeStore()
	spy := &testutil.RecorderSpy{}
	uc := usecase.NewCodeUseCase(&codeGroupRepoFake{s: store}, &codeDetailRepoFake{s: store}, spy)
	return uc, store, spy
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

var codeActor = audit.Actor{UserID: "u-admin", Username: "admin"}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de grupos
// ──────────────────────────────────────────────────────────────────────────────

// El guardado en lote aplica I/U/D por fila y sigue adelante ante errores.
func TestSaveGroups_MejorEsfuerzo(t *testing.T) {
	uc, store, spy := newCodeFixture()

	results := uc.SaveGroups([]dto.CodeGroupRow{
		{RowStatus: dto.RowInsert, GrpCode: "UNIT", Name: strPtr("Unidades"), Order: intPtr(1)},
		{RowStatus: dto.RowInsert, GrpCode: "CATEGORY", Name: strPtr("Categorías")},
		{RowStatus: dto.RowInsert, GrpCode: "UNIT", Name: strPtr("Duplicado")},
		{RowStatus: dto.RowUpdate, GrpCode: "CATEGORY", Description: strPtr("Categorías de artículos")},
		{RowStatus: dto.RowDelete, GrpCode: "NO-EXISTE"},
	}, codeActor)

	require.Len(t, results, 5)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.False(t, results[2].Success, "el grp_code repetido debe fallar")
	assert.Contains(t, results[2].Message, "duplicado")
	assert.True(t, results[3].Success)
	assert.False(t, results[4].Success)

	require.Len(t, store.groups, 2)
	assert.Equal(t, "Unidades", store.groups["UNIT"].Name,
		"la fila duplicada no pisa el grupo original")
	assert.Equal(t, "Categorías de artículos", store.groups["CATEGORY"].Description)
	assert.True(t, store.groups["UNIT"].IsActive, "is_active por defecto es true")

	// Solo las filas aplicadas generan auditoría.
	require.Len(t, spy.Events, 3)
	assert.Equal(t, "code_groups", spy.Events[0].TableName)
	assert.Equal(t, entity.OpInsert, spy.Events[0].Operation)
	assert.Equal(t, entity.OpUpdate, spy.Events[2].Operation)
}

// Un alta sin nombre o sin código se rechaza como entrada inválida.
func TestCreateGroup_ValidaEntrada(t *testing.T) {
	uc, _, _ := newCodeFixture()

	_, err := uc.CreateGroup(dto.CodeGroupRow{RowStatus: dto.RowInsert, GrpCode: "UNIT"}, codeActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateGroup(dto.CodeGroupRow{RowStatus: dto.RowInsert, Name: strPtr("Sin código")}, codeActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La actualización parcial no toca los campos que llegan en nil y no permite
// vaciar el nombre.
func TestUpdateGroup_Parcial(t *testing.T) {
	uc, store, _ := newCodeFixture()
	_, err := uc.CreateGroup(dto.CodeGroupRow{
		RowStatus: dto.RowInsert, GrpCode: "UNIT", Name: strPtr("Unidades"),
		Description: strPtr("Unidades de medida"), Order: intPtr(3),
	}, codeActor)
	require.NoError(t, err)

	_, err = uc.UpdateGroup(dto.CodeGroupRow{RowStatus: dto.RowUpdate, GrpCode: "UNIT", Order: intPtr(1)}, codeActor)
	require.NoError(t, err)
	assert.Equal(t, "Unidades", store.groups["UNIT"].Name)
	assert.Equal(t, "Unidades de medida", store.groups["UNIT"].Description)
	assert.Equal(t, 1, store.groups["UNIT"].Order)

	_, err = uc.UpdateGroup(dto.CodeGroupRow{RowStatus: dto.RowUpdate, GrpCode: "UNIT", Name: strPtr("")}, codeActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de detalles
// ──────────────────────────────────────────────────────────────────────────────

// Un código solo puede darse de alta dentro de un grupo existente.
func TestCreateDetail_ExigeGrupoExistente(t *testing.T) {
	uc, store, _ := newCodeFixture()

	_, err := uc.CreateDetail(dto.CodeDetailRow{
		RowStatus: dto.RowInsert, GrpCode: "UNIT", Code: "KG", Name: strPtr("Kilogramo"),
	}, codeActor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.details)

	_, err = uc.CreateGroup(dto.CodeGroupRow{RowStatus: dto.RowInsert, GrpCode: "UNIT", Name: strPtr("Unidades")}, codeActor)
	require.NoError(t, err)

	detail, err := uc.CreateDetail(dto.CodeDetailRow{
		RowStatus: dto.RowInsert, GrpCode: "UNIT", Code: "KG",
		Name: strPtr("Kilogramo"), Value: strPtr("kg"),
	}, codeActor)
	require.NoError(t, err)
	assert.Equal(t, "kg", detail.Value)
	require.NotNil(t, store.details["UNIT/KG"])
}

// El guardado en lote de detalles es a mejor esfuerzo y lista por grupo.
func TestSaveDetails_MejorEsfuerzoYListado(t *testing.T) {
	uc, _, spy := newCodeFixture()
	_, err := uc.CreateGroup(dto.CodeGroupRow{RowStatus: dto.RowInsert, GrpCode: "UNIT", Name: strPtr("Unidades")}, codeActor)
	require.NoError(t, err)

	results := uc.SaveDetails([]dto.CodeDetailRow{
		{RowStatus: dto.RowInsert, GrpCode: "UNIT", Code: "KG", Name: strPtr("Kilogramo"), Order: intPtr(1)},
		{RowStatus: dto.RowInsert, GrpCode: "UNIT", Code: "EA", Name: strPtr("Unidad"), Order: intPtr(2)},
		{RowStatus: dto.RowInsert, GrpCode: "STATUS", Code: "OK", Name: strPtr("Huérfano")},
		{RowStatus: dto.RowUpdate, GrpCode: "UNIT", Code: "EA", Value: strPtr("ea")},
		{RowStatus: "X", GrpCode: "UNIT", Code: "KG"},
	}, codeActor)

	require.Len(t, results, 5)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.False(t, results[2].Success, "sin grupo padre la fila falla")
	assert.True(t, results[3].Success)
	assert.False(t, results[4].Success, "row_status desconocido")

	listed, err := uc.ListDetails("UNIT")
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	all, err := uc.ListDetails("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Auditoría de detalles con clave compuesta grp_code/code.
	var detailEvents []audit.Event
	for _, ev := range spy.Events {
		if ev.TableName == "code_details" {
			detailEvents = append(detailEvents, ev)
		}
	}
	require.Len(t, detailEvents, 3)
	assert.Equal(t, "UNIT/KG", detailEvents[0].RecordID)
}

// Borrar el grupo arrastra sus códigos, como la FK en cascada.
func TestDeleteGroup_ArrastraDetalles(t *testing.T) {
	uc, store, _ := newCodeFixture()
	_, err := uc.CreateGroup(dto.CodeGroupRow{RowStatus: dto.RowInsert, GrpCode: "UNIT", Name: strPtr("Unidades")}, codeActor)
	require.NoError(t, err)
	_, err = uc.CreateDetail(dto.CodeDetailRow{RowStatus: dto.RowInsert, GrpCode: "UNIT", Code: "KG", Name: strPtr("Kilogramo")}, codeActor)
	require.NoError(t, err)

	require.NoError(t, uc.DeleteGroup("UNIT", codeActor))
	assert.Empty(t, store.groups)
	assert.Empty(t, store.details)

	_, err = uc.GetDetail("UNIT", "KG")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
