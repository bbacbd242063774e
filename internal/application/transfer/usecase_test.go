package transfer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/ngtrphuong/ioe/internal/application/transfer"
	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
	"github.com/ngtrphuong/ioe/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type csvStore struct {
	products   map[string]*entity.Product // por barcode
	categories map[string]*entity.Category
	stock      map[string]*entity.Inventory
	members    map[string]*entity.Member // por teléfono
	levels     map[string]*entity.MemberLevel
}

func newCSVStore() *csvStore {
	return &csvStore{
		products:   map[string]*entity.Product{},
		categories: map[string]*entity.Category{},
		stock:      map[string]*entity.Inventory{},
		members:    map[string]*entity.Member{},
		levels:     map[string]*entity.MemberLevel{},
	}
}

type csvProductRepo struct{ s *csvStore }

func (r *csvProductRepo) Create(p *entity.Product) error { r.s.products[p.Barcode] = p; return nil }
func (r *csvProductRepo) Update(p *entity.Product) error { r.s.products[p.Barcode] = p; return nil }

func (r *csvProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *csvProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	return r.s.products[barcode], nil
}

func (r *csvProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

type csvCategoryRepo struct{ s *csvStore }

func (r *csvCategoryRepo) Create(c *entity.Category) error { r.s.categories[c.ID] = c; return nil }
func (r *csvCategoryRepo) Update(c *entity.Category) error { r.s.categories[c.ID] = c; return nil }
func (r *csvCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.s.categories[id], nil
}

func (r *csvCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *csvCategoryRepo) List(bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	return out, nil
}

type csvInvRepo struct{ s *csvStore }

func (r *csvInvRepo) GetByProduct(productID string) (*entity.Inventory, error) {
	if inv, ok := r.s.stock[productID]; ok {
		return inv, nil
	}
	return &entity.Inventory{ProductID: productID}, nil
}

func (r *csvInvRepo) GetByProductForUpdate(productID string) (*entity.Inventory, error) {
	return r.GetByProduct(productID)
}

func (r *csvInvRepo) Upsert(inv *entity.Inventory) error { r.s.stock[inv.ProductID] = inv; return nil }
func (r *csvInvRepo) ListLowStock() ([]*entity.Inventory, error) {
	return nil, nil
}

type csvMemberRepo struct{ s *csvStore }

func (r *csvMemberRepo) Create(m *entity.Member) error { r.s.members[m.Phone] = m; return nil }
func (r *csvMemberRepo) Update(m *entity.Member) error { r.s.members[m.Phone] = m; return nil }
func (r *csvMemberRepo) GetByID(string) (*entity.Member, error) {
	return nil, nil
}

func (r *csvMemberRepo) GetByIDForUpdate(string) (*entity.Member, error) { return nil, nil }
func (r *csvMemberRepo) GetByPhone(phone string) (*entity.Member, error) {
	return r.s.members[phone], nil
}
func (r *csvMemberRepo) Search(string, int, int) ([]*entity.Member, error) { return nil, nil }

func (r *csvMemberRepo) List(int, int) ([]*entity.Member, error) {
	var out []*entity.Member
	for _, m := range r.s.members {
		out = append(out, m)
	}
	return out, nil
}

type csvLevelRepo struct{ s *csvStore }

func (r *csvLevelRepo) Create(lv *entity.MemberLevel) error { r.s.levels[lv.ID] = lv; return nil }
func (r *csvLevelRepo) Update(lv *entity.MemberLevel) error { r.s.levels[lv.ID] = lv; return nil }
func (r *csvLevelRepo) GetByID(id string) (*entity.MemberLevel, error) {
	return r.s.levels[id], nil
}
func (r *csvLevelRepo) GetByName(string) (*entity.MemberLevel, error) { return nil, nil }

func (r *csvLevelRepo) ListActive() ([]*entity.MemberLevel, error) {
	var out []*entity.MemberLevel
	for _, lv := range r.s.levels {
		out = append(out, lv)
	}
	return out, nil
}

func newTransferUC(s *csvStore) *transfer.TransferUseCase {
	return transfer.NewTransferUseCase(
		&csvProductRepo{s}, &csvCategoryRepo{s}, &csvInvRepo{s},
		&csvMemberRepo{s}, &csvLevelRepo{s}, logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación de productos
// ──────────────────────────────────────────────────────────────────────────────

const productCSV = `barcode,name,price,cost,category,specification,manufacturer,warning_level
6901234567890,Cola 500ml,3.50,2.00,Bebidas,500ml,Acme,10
6901234567891,Agua 600ml,2.00,1.00,Bebidas,600ml,Acme,20
`

func TestImportProducts_CreaProductosConInventario(t *testing.T) {
	s := newCSVStore()
	uc := newTransferUC(s)

	result, err := uc.ImportProducts(context.Background(), strings.NewReader(productCSV), "op-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	p := s.products["6901234567890"]
	require.NotNil(t, p)
	assert.Equal(t, "Cola 500ml", p.Name)
	assert.True(t, decimal.RequireFromString("3.50").Equal(p.Price))

	// La categoría se crea bajo demanda y ambos productos la comparten.
	require.Len(t, s.categories, 1)
	// Cada producto recibe su fila de inventario en 0 con el umbral del CSV.
	inv := s.stock[p.ID]
	require.NotNil(t, inv)
	assert.Equal(t, int64(0), inv.Quantity)
	assert.Equal(t, int64(10), inv.WarningLevel)
}

// Los duplicados se saltan y las filas malas se reportan sin abortar el archivo.
func TestImportProducts_DuplicadosYFilasInvalidas(t *testing.T) {
	s := newCSVStore()
	uc := newTransferUC(s)

	_, err := uc.ImportProducts(context.Background(), strings.NewReader(productCSV), "op-1")
	require.NoError(t, err)

	mixed := `barcode,name,price,cost
6901234567890,Cola 500ml,3.50,2.00
6901234567892,Nueva,precio-malo,1.00
6901234567893,Valida,5.00,2.50
,SinBarcode,1.00,0.50
`
	result, err := uc.ImportProducts(context.Background(), strings.NewReader(mixed), "op-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created, "solo la fila válida nueva")
	assert.Equal(t, 1, result.Skipped, "el barcode repetido se salta")
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Message, "precio")
	assert.Equal(t, 5, result.Errors[1].Line)
}

func TestImportProducts_CabeceraIncompleta(t *testing.T) {
	uc := newTransferUC(newCSVStore())
	_, err := uc.ImportProducts(context.Background(), strings.NewReader("barcode,name\n1,Cola\n"), "op-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Archivos con BOM UTF-8 se aceptan tal cual.
func TestImportProducts_ConBOM(t *testing.T) {
	s := newCSVStore()
	uc := newTransferUC(s)

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(productCSV)...)
	result, err := uc.ImportProducts(context.Background(), bytes.NewReader(withBOM), "op-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
}

// Archivos exportados en GB18030 (hojas de cálculo chinas) se decodifican antes
// de parsear; los nombres no ASCII sobreviven.
func TestImportProducts_GB18030(t *testing.T) {
	s := newCSVStore()
	uc := newTransferUC(s)

	utf8CSV := "barcode,name,price,cost\n6901234567890,可口可乐,3.50,2.00\n"
	encoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewEncoder(), []byte(utf8CSV))
	require.NoError(t, err)
	require.False(t, bytes.Equal(encoded, []byte(utf8CSV)), "el fixture debe estar realmente codificado")

	result, err := uc.ImportProducts(context.Background(), bytes.NewReader(encoded), "op-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	p := s.products["6901234567890"]
	require.NotNil(t, p)
	assert.Equal(t, "可口可乐", p.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Miembros y round-trip
// ──────────────────────────────────────────────────────────────────────────────

func TestImportMembers_NivelPorNombreYDefault(t *testing.T) {
	s := newCSVStore()
	s.levels["bronce"] = &entity.MemberLevel{ID: "bronce", Name: "Bronce", IsDefault: true, IsActive: true}
	s.levels["oro"] = &entity.MemberLevel{ID: "oro", Name: "Oro", IsActive: true}
	uc := newTransferUC(s)

	csvData := `name,phone,level,email,gender,birthday
Ana,3001112233,Oro,ana@example.com,F,1990-05-20
Luis,3004445566,,,M,
Mala,3007778899,Platino,,,
`
	result, err := uc.ImportMembers(context.Background(), strings.NewReader(csvData), "op-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "Platino")

	assert.Equal(t, "oro", s.members["3001112233"].LevelID)
	assert.Equal(t, "bronce", s.members["3004445566"].LevelID, "sin nivel se usa el default")
	require.NotNil(t, s.members["3001112233"].Birthday)
}

func TestImportMembers_SinNivelPorDefecto(t *testing.T) {
	s := newCSVStore() // sin niveles
	uc := newTransferUC(s)

	_, err := uc.ImportMembers(context.Background(), strings.NewReader("name,phone\nAna,300111\n"), "op-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Exportar e importar reproduce las filas (módulo formato).
func TestRoundTrip_Productos(t *testing.T) {
	s := newCSVStore()
	uc := newTransferUC(s)
	ctx := context.Background()

	_, err := uc.ImportProducts(ctx, strings.NewReader(productCSV), "op-1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportProducts(ctx, &buf))

	// Reimportar en un store limpio reproduce los productos.
	s2 := newCSVStore()
	uc2 := newTransferUC(s2)
	result, err := uc2.ImportProducts(ctx, bytes.NewReader(buf.Bytes()), "op-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Errors)

	orig := s.products["6901234567890"]
	copied := s2.products["6901234567890"]
	require.NotNil(t, copied)
	assert.Equal(t, orig.Name, copied.Name)
	assert.True(t, orig.Price.Equal(copied.Price))
	assert.Equal(t, orig.Manufacturer, copied.Manufacturer)
	assert.Equal(t, s2.stock[copied.ID].WarningLevel, s.stock[orig.ID].WarningLevel)
}

func TestRoundTrip_Miembros(t *testing.T) {
	s := newCSVStore()
	s.levels["bronce"] = &entity.MemberLevel{ID: "bronce", Name: "Bronce", IsDefault: true, IsActive: true}
	uc := newTransferUC(s)
	ctx := context.Background()

	csvData := "name,phone,level,email,gender,birthday\nAna,3001112233,Bronce,ana@example.com,F,1990-05-20\n"
	_, err := uc.ImportMembers(ctx, strings.NewReader(csvData), "op-1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportMembers(ctx, &buf))
	assert.Contains(t, buf.String(), "Ana,3001112233,Bronce,ana@example.com,F,1990-05-20")
}
